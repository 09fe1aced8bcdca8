// Package main is the entry point of the boxopt HTTP API.
// It is the container entry point; the boxopt CLI serves the same API
// through "boxopt serve".
//
// 12-Factor App compliance:
//   - I. Codebase: Single codebase tracked in version control
//   - II. Dependencies: Managed via go.mod
//   - III. Config: Configuration via environment variables
//   - VI. Processes: Stateless processes
//   - VII. Port Binding: Self-contained HTTP server
//   - IX. Disposability: Graceful shutdown
//   - XI. Logs: Structured logging to stdout
//
// Usage:
//
//	go run ./cmd/api-gateway
//
// Environment Variables:
//
//	BOXOPT_ENVIRONMENT - Deployment environment (development, staging, production)
//	BOXOPT_SERVER_PORT - HTTP server port (default: 8080, PORT also accepted)
//	BOXOPT_LOG_LEVEL   - debug, info, warn, error
//	BOXOPT_RENDER_*    - image defaults (width, height, elevation, azimuth, ...)
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hapkiduki/boxopt/internal/application/presenter"
	"github.com/hapkiduki/boxopt/internal/application/service"
	"github.com/hapkiduki/boxopt/internal/infrastructure/config"
	"github.com/hapkiduki/boxopt/internal/infrastructure/logging"
	"github.com/hapkiduki/boxopt/internal/infrastructure/render"
	"github.com/hapkiduki/boxopt/internal/interfaces/http/handler"
	"github.com/hapkiduki/boxopt/internal/interfaces/http/server"
	"github.com/hapkiduki/boxopt/pkg/logger"
)

// version is set at build time via ldflags
var version = "dev"

// startTime tracks when the server started for uptime calculations
var startTime = time.Now()

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log := logger.MustNew(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.App.Environment == "development",
	})
	defer func() { _ = log.Sync() }()

	log.Info("Starting boxopt API",
		"version", version,
		"environment", cfg.App.Environment,
	)

	// Create context that listens for shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Create a logger adapter that implements port.Logger
	logAdapter := logging.NewAdapter(log)

	renderer, err := render.New(cfg.Render.Renderer())
	if err != nil {
		log.Fatal("Invalid render configuration", "error", err)
	}
	p, err := presenter.New(cfg.Render.Precision)
	if err != nil {
		log.Fatal("Invalid precision", "error", err)
	}

	svc := service.NewBoxService(logAdapter, render.NewAdapter(renderer))

	router := server.NewRouter(server.Deps{
		Config:  cfg.Server,
		Log:     logAdapter,
		Boxes:   handler.NewBoxHandler(svc, p, version),
		Version: version,
		Started: startTime,
	})

	if err := server.Run(ctx, cfg.Server, router, logAdapter); err != nil {
		log.Fatal("HTTP server failed", "error", err)
	}
}
