package cli

import (
	"time"

	"github.com/hapkiduki/boxopt/internal/interfaces/http/handler"
	"github.com/hapkiduki/boxopt/internal/interfaces/http/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve the box API until SIGINT or SIGTERM.

Endpoints:
  GET  /health
  POST /api/v1/boxes                  {"volume": "2"}
  GET  /api/v1/boxes?volume=2
  GET  /api/v1/boxes/summary?volume=2
  GET  /api/v1/boxes/derivation?volume=2[&format=text]
  GET  /api/v1/boxes/render.png?volume=2[&elev=30&azim=30]
  GET  /api/v1/boxes/render.gif?volume=2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, a)
		},
	}

	cmd.Flags().Int("port", 0, "listen port (overrides server.port)")
	mustBindFlags(a.v, cmd.Flags(), map[string]string{"server.port": "port"})
	return cmd
}

// serve runs the HTTP API until the command context is canceled.
func serve(cmd *cobra.Command, a *app) error {
	defer func() { _ = a.log.Sync() }()

	svc, err := a.service(a.cfg.Render.Renderer())
	if err != nil {
		return err
	}

	a.log.Info("Starting boxopt API",
		"version", a.version,
		"environment", a.cfg.App.Environment,
	)

	log := a.portLogger()
	router := server.NewRouter(server.Deps{
		Config:  a.cfg.Server,
		Log:     log,
		Boxes:   handler.NewBoxHandler(svc, a.presenter, a.version),
		Version: a.version,
		Started: time.Now(),
	})
	return server.Run(cmd.Context(), a.cfg.Server, router, log)
}
