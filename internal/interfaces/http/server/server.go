// Package server assembles the chi router and runs the HTTP server.
//
// 12-Factor App compliance:
//   - VII. Port Binding: Self-contained HTTP server
//   - IX. Disposability: Graceful shutdown
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/hapkiduki/boxopt/internal/application/port"
	"github.com/hapkiduki/boxopt/internal/infrastructure/config"
	"github.com/hapkiduki/boxopt/internal/interfaces/http/handler"
	"github.com/hapkiduki/boxopt/internal/interfaces/http/middleware"
)

// Deps are the collaborators of the router.
type Deps struct {
	Config  config.ServerConfig
	Log     port.Logger
	Boxes   *handler.BoxHandler
	Version string
	Started time.Time
}

// NewRouter builds the router with the full middleware stack.
//
// Parameters:
//   - d: router dependencies
//
// Returns:
//   - http.Handler: the root handler
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// ============================================================================
	// Middleware stack
	// ============================================================================
	// Order matters! Middleware is executed in the order added.

	// 1. Real IP extraction (for rate limiting and logging)
	r.Use(middleware.RealIP)

	// 2. Request ID generation/propagation
	r.Use(middleware.RequestID)

	// 3. Logging (after Request ID so it's included in logs)
	r.Use(middleware.Logger(d.Log))

	// 4. Panic recovery
	r.Use(middleware.Recoverer(d.Log))

	// 5. Request timeout
	r.Use(middleware.Timeout(d.Config.RequestTimeout))

	// 6. CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Config.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "X-API-Version"},
		MaxAge:         300,
	}))

	// 7. Rate limiting
	limits := middleware.DefaultRateLimiterConfig()
	limits.RequestsPerSecond = d.Config.RateLimitRPS
	limits.Burst = d.Config.RateLimitBurst
	r.Use(middleware.RateLimiter(limits))

	// 8. Security headers
	r.Use(middleware.SecureHeaders)

	// 9. API version header
	r.Use(middleware.APIVersion(d.Version))

	// 10. Body size and Content-Type enforcement
	r.Use(middleware.MaxBodySize(d.Config.MaxRequestSize))
	r.Use(middleware.ContentTypeJSON)

	// ============================================================================
	// Routes
	// ============================================================================

	r.Get("/health", handler.Health(d.Version, d.Started))
	r.Mount("/api/v1/boxes", d.Boxes.Routes())

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

// Run serves h on cfg.Address() until ctx is canceled, then shuts down
// gracefully within cfg.ShutdownTimeout.
//
// Parameters:
//   - ctx: canceled on shutdown signals
//   - cfg: server configuration
//   - h: the root handler
//   - log: the logger
//
// Returns:
//   - error: a listen error, or a shutdown error
func Run(ctx context.Context, cfg config.ServerConfig, h http.Handler, log port.Logger) error {
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		return err
	}
	log.Info("Server shutdown complete")
	return nil
}
