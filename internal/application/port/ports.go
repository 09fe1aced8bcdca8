// Package port contains the port interfaces (driven ports) for the application layer.
// Ports define what the application needs from the outside world; adapters in
// infrastructure and cmd implement them.
//
// In Hexagonal Architecture (ports & adapters):
//   - Ports are interfaces that define what the application needs.
//   - Adapters are implementations of these interfaces
//   - This enables loose coupling and easy testing/swapping of implementations.
package port

import (
	"context"
	"errors"
	"io"

	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
)

// Logger defines the interface for structured logging.
//
// Example usage:
//
//	logger.Info("Box computed", "volume", spec.Volume, "area", spec.Area)
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)

	// With returns a logger with additional context fields.
	With(keysAndValues ...any) Logger

	// WithContext returns a logger with context information (e.g., request ID).
	WithContext(ctx context.Context) Logger
}

// ErrUnsupportedFormat is returned by a BoxRenderer asked for an unknown image format.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// BoxRenderer draws a BoxSpec as an image.
type BoxRenderer interface {
	// Encode writes spec to w in the named format ("png" or "gif").
	//
	// Parameters:
	//   - ctx: canceling it stops encoding early
	//   - w: destination of the encoded image
	//   - spec: the box to draw
	//   - format: image format name
	//   - view: optional camera override
	//
	// Returns:
	//   - error: ErrUnsupportedFormat, ctx.Err() or any error encountered while encoding
	Encode(ctx context.Context, w io.Writer, spec valueobject.BoxSpec, format string, view *View) error

	// ContentType returns the MIME type of the named format.
	ContentType(format string) string
}

// View is a camera angle in degrees. A NaN angle keeps the configured one.
type View struct {
	Elevation float64
	Azimuth   float64
}
