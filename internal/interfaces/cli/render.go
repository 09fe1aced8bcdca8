package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hapkiduki/boxopt/internal/application/service"
	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
	"github.com/hapkiduki/boxopt/internal/infrastructure/render"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	out    string
	format string
	elev   float64
	azim   float64
	width  int
	height int
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render <volume>",
		Short: "Draw the optimal box as a PNG or animated GIF",
		Long: `Draw the five faces of the optimal open-top box.

The format follows the extension of --out unless --format is given.
A GIF turns the box around its vertical axis. Use --out - to write
the image to standard output.

Example:
  boxopt render 2 --out box.png
  boxopt render 2 --out box.gif --elev 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rcfg := a.cfg.Render.Renderer()
			flags := cmd.Flags()
			if flags.Changed("elev") {
				rcfg.Elevation = opts.elev
			}
			if flags.Changed("azim") {
				rcfg.Azimuth = opts.azim
			}
			if flags.Changed("width") {
				rcfg.Width = opts.width
			}
			if flags.Changed("height") {
				rcfg.Height = opts.height
			}

			format := opts.format
			if format == "" {
				format = formatFromPath(opts.out)
			}

			svc, err := a.service(rcfg)
			if err != nil {
				return err
			}
			c, err := svc.Compute(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if opts.out == "-" {
				return svc.Render(cmd.Context(), cmd.OutOrStdout(), c.Spec, format, nil)
			}

			n, err := renderFile(cmd.Context(), svc, c.Spec, format, opts.out)
			if err != nil {
				return err
			}
			a.log.Info("Image written", "path", opts.out, "bytes", n, "format", format)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s, %dx%d)\n", opts.out, humanize.Bytes(uint64(n)), rcfg.Width, rcfg.Height)
			return nil
		},
	}

	d := render.DefaultConfig()
	flags := cmd.Flags()
	flags.StringVarP(&opts.out, "out", "o", "box.png", "output file, or - for standard output")
	flags.StringVar(&opts.format, "format", "", "image format: png or gif")
	flags.Float64Var(&opts.elev, "elev", d.Elevation, "view elevation in degrees")
	flags.Float64Var(&opts.azim, "azim", d.Azimuth, "view azimuth in degrees")
	flags.IntVar(&opts.width, "width", d.Width, "image width in pixels")
	flags.IntVar(&opts.height, "height", d.Height, "image height in pixels")
	cmd.SetFlagErrorFunc(volumeFlagError)
	return cmd
}

// formatFromPath guesses the image format from a file extension.
func formatFromPath(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return string(render.FormatPNG)
	}
	return ext
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// renderFile renders spec into a new file at path and returns its size.
// A partially written file is removed on failure.
func renderFile(ctx context.Context, svc *service.BoxService, spec valueobject.BoxSpec, format, path string) (int64, error) {
	// Validate the format before creating the file.
	if _, err := render.ParseFormat(format); err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	cw := &countingWriter{w: bw}
	err = svc.Render(ctx, cw, spec, format, nil)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return cw.n, nil
}
