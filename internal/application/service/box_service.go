// Package service contains the application use cases.
package service

import (
	"context"
	"fmt"
	"io"

	"github.com/hapkiduki/boxopt/internal/application/port"
	"github.com/hapkiduki/boxopt/internal/domain/entity"
	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
)

// BoxService computes optimal boxes and renders them.
// It holds no state between calls.
type BoxService struct {
	log      port.Logger
	renderer port.BoxRenderer
}

// NewBoxService creates a BoxService.
//
// Parameters:
//   - log: the logger
//   - renderer: the image renderer
//
// Returns:
//   - *BoxService: the service
func NewBoxService(log port.Logger, renderer port.BoxRenderer) *BoxService {
	return &BoxService{log: log, renderer: renderer}
}

// Compute parses the raw textual volume and returns the optimal box.
//
// Parameters:
//   - ctx: request context (used for log correlation)
//   - raw: the volume as typed by the user
//
// Returns:
//   - *entity.Computation: the result
//   - error: valueobject.ErrInvalidInput if raw is not a positive number
func (s *BoxService) Compute(ctx context.Context, raw string) (*entity.Computation, error) {
	c, err := entity.NewComputation(raw)
	return s.logResult(ctx, raw, c, err)
}

// ComputeVolume returns the optimal box for an already numeric volume.
//
// Parameters:
//   - ctx: request context (used for log correlation)
//   - volume: volume in cubic units
//
// Returns:
//   - *entity.Computation: the result
//   - error: valueobject.ErrInvalidInput if volume is not a positive finite number
func (s *BoxService) ComputeVolume(ctx context.Context, volume float64) (*entity.Computation, error) {
	c, err := entity.NewComputationFromVolume(volume)
	return s.logResult(ctx, fmt.Sprint(volume), c, err)
}

func (s *BoxService) logResult(ctx context.Context, raw string, c *entity.Computation, err error) (*entity.Computation, error) {
	log := s.log.WithContext(ctx)
	if err != nil {
		if valueobject.IsInvalidInput(err) {
			log.Warn("Invalid volume", "input", raw, "error", err)
		} else {
			log.Error("Box computation failed", "input", raw, "error", err)
		}
		return nil, err
	}

	log.Debug("Box computed",
		"computation_id", c.ID.String(),
		"volume", c.Spec.Volume,
		"width", c.Spec.Width,
		"height", c.Spec.Height,
		"area", c.Spec.Area,
	)
	return c, nil
}

// Render encodes spec as an image.
//
// Parameters:
//   - ctx: request context
//   - w: destination of the image
//   - spec: the box to draw
//   - format: "png" or "gif"
//   - view: optional camera override, nil for the configured view
//
// Returns:
//   - error: port.ErrUnsupportedFormat for unknown formats, or an encoding error
func (s *BoxService) Render(ctx context.Context, w io.Writer, spec valueobject.BoxSpec, format string, view *port.View) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.renderer.Encode(ctx, w, spec, format, view); err != nil {
		s.log.WithContext(ctx).Error("Box rendering failed", "format", format, "error", err)
		return err
	}
	return nil
}

// ContentType returns the MIME type of an image format.
func (s *BoxService) ContentType(format string) string {
	return s.renderer.ContentType(format)
}
