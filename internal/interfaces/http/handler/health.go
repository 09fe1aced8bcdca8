package handler

import (
	"net/http"
	"time"

	"github.com/hapkiduki/boxopt/internal/application/dto"
	"github.com/hapkiduki/boxopt/internal/interfaces/http/middleware"
)

// Health returns the health check handler.
//
// Parameters:
//   - version: the application version
//   - started: when the process started, for the uptime
//
// Returns:
//   - http.HandlerFunc: the handler
func Health(version string, started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusOK, version, dto.HealthResponse{
			Status:  "healthy",
			Version: version,
			Uptime:  time.Since(started).Round(time.Second).String(),
		})
	}
}

// NotFound handles 404 responses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	middleware.WriteError(w, r, http.StatusNotFound, dto.CodeNotFound, "The requested resource was not found")
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	middleware.WriteError(w, r, http.StatusMethodNotAllowed, dto.CodeMethodNotAllowed, "The requested method is not allowed for this resource")
}
