package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hapkiduki/boxopt/internal/application/presenter"
	"github.com/hapkiduki/boxopt/internal/application/service"
	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
	"github.com/spf13/cobra"
)

const sessionHelp = `Enter a volume to compute its optimal box. Other commands:
  summary        show the most recent box again
  derive         step by step derivation for the most recent box
  faces          list the five faces of the most recent box
  render [file]  draw the most recent box (default box.png)
  help           show this help
  quit, exit     leave the session
`

// Session is an interactive loop that keeps the most recently computed box.
// An invalid volume leaves the previous box in place.
type Session struct {
	svc       *service.BoxService
	presenter *presenter.Presenter
	out       io.Writer

	current valueobject.BoxSpec
	has     bool
}

// NewSession creates a Session writing to out.
func NewSession(svc *service.BoxService, p *presenter.Presenter, out io.Writer) *Session {
	return &Session{svc: svc, presenter: p, out: out}
}

// Current returns the most recent box and whether one was computed.
func (s *Session) Current() (valueobject.BoxSpec, bool) {
	return s.current, s.has
}

// Run reads commands from in until quit, EOF or ctx is canceled.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprint(s.out, sessionHelp)

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(s.out)
			return sc.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if quit := s.Handle(ctx, sc.Text()); quit {
			return nil
		}
	}
}

// Handle executes one line and reports whether the session should end.
func (s *Session) Handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprint(s.out, sessionHelp)
	case "summary":
		s.withCurrent(func(spec valueobject.BoxSpec) error {
			return s.presenter.WriteSummary(s.out, spec)
		})
	case "derive":
		s.withCurrent(func(spec valueobject.BoxSpec) error {
			return s.presenter.WriteDerivation(s.out, spec)
		})
	case "faces":
		s.withCurrent(func(spec valueobject.BoxSpec) error {
			return s.presenter.WriteFaces(s.out, spec)
		})
	case "render":
		path := arg
		if path == "" {
			path = "box.png"
		}
		s.withCurrent(func(spec valueobject.BoxSpec) error {
			n, err := renderFile(ctx, s.svc, spec, formatFromPath(path), path)
			if err == nil {
				fmt.Fprintf(s.out, "Wrote %s (%s)\n", path, humanize.Bytes(uint64(n)))
			}
			return err
		})
	default:
		s.compute(ctx, line)
	}
	return false
}

func (s *Session) compute(ctx context.Context, raw string) {
	c, err := s.svc.Compute(ctx, raw)
	if err != nil {
		if valueobject.IsInvalidInput(err) {
			fmt.Fprintf(s.out, "Invalid input: %v\n", err)
		} else {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
		return
	}

	s.current, s.has = c.Spec, true
	if err := s.presenter.WriteSummary(s.out, c.Spec); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func (s *Session) withCurrent(fn func(valueobject.BoxSpec) error) {
	if !s.has {
		fmt.Fprintln(s.out, "No box yet. Enter a volume first.")
		return
	}
	if err := fn(s.current); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func newSessionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Interactive session keeping the most recent box",
		Long: `Read volumes and commands from standard input, one per line.

Each valid volume replaces the most recent box; summary, derive, faces
and render act on it. An invalid volume is reported and the previous
box is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(a.cfg.Render.Renderer())
			if err != nil {
				return err
			}
			return NewSession(svc, a.presenter, cmd.OutOrStdout()).Run(cmd.Context(), cmd.InOrStdin())
		},
	}
}
