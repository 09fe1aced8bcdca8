package cli

import (
	"encoding/json"
	"fmt"

	"github.com/hapkiduki/boxopt/internal/application/dto"
	"github.com/spf13/cobra"
)

// Output formats of the compute command.
const (
	formatText   = "text"
	formatJSON   = "json"
	formatPretty = "pretty"
)

func newComputeCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "compute <volume>",
		Short: "Optimal dimensions and minimal area for a volume",
		Long: `Compute the optimal open-top box for a volume in cubic units.

Output formats:
  text    - labelled summary (default)
  json    - the full result on one line, including vertices and faces
  pretty  - the same JSON, indented

Example:
  boxopt compute 2
  boxopt compute 1e3 --format pretty`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(a.cfg.Render.Renderer())
			if err != nil {
				return err
			}
			c, err := svc.Compute(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatText:
				return a.presenter.WriteSummary(out, c.Spec)
			case formatJSON, formatPretty:
				enc := json.NewEncoder(out)
				if format == formatPretty {
					enc.SetIndent("", "  ")
				}
				return enc.Encode(dto.NewBoxResponse(c))
			default:
				return fmt.Errorf("unknown output format %q (want text, json or pretty)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json or pretty")
	cmd.SetFlagErrorFunc(volumeFlagError)
	return cmd
}

func newDeriveCmd(a *app) *cobra.Command {
	var faces bool

	cmd := &cobra.Command{
		Use:   "derive <volume>",
		Short: "Step by step derivation of the optimal box",
		Long: `Walk through the minimization of A = xy + 2xh + 2yh under the
constraint V = xyh, substituting the given volume.

Example:
  boxopt derive 2
  boxopt derive 2 --faces`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(a.cfg.Render.Renderer())
			if err != nil {
				return err
			}
			c, err := svc.Compute(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := a.presenter.WriteDerivation(out, c.Spec); err != nil {
				return err
			}
			if faces {
				fmt.Fprintln(out)
				return a.presenter.WriteFaces(out, c.Spec)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&faces, "faces", false, "also list the five faces and their corners")
	cmd.SetFlagErrorFunc(volumeFlagError)
	return cmd
}
