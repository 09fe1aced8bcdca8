// Package cli implements the boxopt command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hapkiduki/boxopt/internal/application/port"
	"github.com/hapkiduki/boxopt/internal/application/presenter"
	"github.com/hapkiduki/boxopt/internal/application/service"
	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
	"github.com/hapkiduki/boxopt/internal/infrastructure/config"
	"github.com/hapkiduki/boxopt/internal/infrastructure/logging"
	"github.com/hapkiduki/boxopt/internal/infrastructure/render"
	"github.com/hapkiduki/boxopt/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries what every command needs once configuration is loaded.
type app struct {
	version string
	v       *viper.Viper
	cfgFile string

	cfg       *config.Config
	log       *logger.Logger
	presenter *presenter.Presenter
}

// setup loads configuration and builds the logger and presenter.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadViper(a.v, a.cfgFile)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.App.Debug,
		Output:      cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	p, err := presenter.New(cfg.Render.Precision)
	if err != nil {
		return err
	}

	a.cfg, a.log, a.presenter = cfg, log.Named("cli"), p
	return nil
}

// portLogger returns the logger as a port.Logger.
func (a *app) portLogger() port.Logger {
	return logging.NewAdapter(a.log)
}

// service builds a BoxService drawing with rcfg.
func (a *app) service(rcfg render.Config) (*service.BoxService, error) {
	r, err := render.New(rcfg)
	if err != nil {
		return nil, err
	}
	return service.NewBoxService(a.portLogger(), render.NewAdapter(r)), nil
}

// NewRootCommand builds the boxopt command tree.
//
// Parameters:
//   - version: the version reported by --version and the HTTP API
//
// Returns:
//   - *cobra.Command: the root command
func NewRootCommand(version string) *cobra.Command {
	a := &app{version: version, v: viper.New()}

	root := &cobra.Command{
		Use:   "boxopt",
		Short: "Optimal open-top box calculator",
		Long: `Compute the open-top rectangular box that holds a given volume
with the least material.

For a volume V the optimal box has a square base of side ∛(2V) and a
height of half that side.

Commands:
  compute  - optimal dimensions and minimal area
  derive   - step by step derivation of the optimum
  render   - draw the box as a PNG or animated GIF
  serve    - run the HTTP API
  session  - interactive session keeping the most recent box`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: boxopt.yaml in ., ./configs or /etc/boxopt)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: json or console")
	mustBindFlags(a.v, flags, map[string]string{
		"log.level":  "log-level",
		"log.format": "log-format",
	})

	root.AddCommand(
		newComputeCmd(a),
		newDeriveCmd(a),
		newRenderCmd(a),
		newServeCmd(a),
		newSessionCmd(a),
	)
	return root
}

// Execute runs the root command with os.Args and returns the exit code.
// SIGINT and SIGTERM cancel the command context.
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCommand(version)
	if err := root.ExecuteContext(ctx); err != nil {
		reportError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

// mustBindFlags binds configuration keys to flags of fs.
// It panics on a missing flag, which is a programming error.
func mustBindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		f := fs.Lookup(name)
		if f == nil {
			panic(fmt.Sprintf("cli: flag --%s not defined", name))
		}
		if err := v.BindPFlag(key, f); err != nil {
			panic(fmt.Sprintf("cli: bind %s: %v", key, err))
		}
	}
}

// volumeFlagError reports a negative number given as the volume argument,
// which the flag parser sees as an unknown shorthand, as invalid input.
func volumeFlagError(_ *cobra.Command, err error) error {
	var nf *pflag.NotExistError
	if !errors.As(err, &nf) {
		return err
	}
	tok := "-" + nf.GetSpecifiedShortnames()
	if _, perr := strconv.ParseFloat(tok, 64); perr != nil {
		return err
	}
	if _, verr := valueobject.ParseVolume(tok); verr != nil {
		return verr
	}
	return err
}

func reportError(w io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintln(w, "Error:", err)
}
