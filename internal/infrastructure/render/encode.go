package render

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/hapkiduki/boxopt/internal/application/port"
	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
)

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatGIF Format = "gif"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatGIF:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q", port.ErrUnsupportedFormat, s)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	return "image/" + string(f)
}

// Encode writes spec in the given format.
func (r *Renderer) Encode(ctx context.Context, w io.Writer, spec valueobject.BoxSpec, format Format) error {
	switch format {
	case FormatPNG:
		return r.EncodePNG(ctx, w, spec)
	case FormatGIF:
		return r.EncodeGIF(ctx, w, spec)
	default:
		return fmt.Errorf("%w %q", port.ErrUnsupportedFormat, format)
	}
}

// EncodePNG writes a single view of spec as PNG.
func (r *Renderer) EncodePNG(ctx context.Context, w io.Writer, spec valueobject.BoxSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, r.Draw(spec)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// EncodeGIF writes a looping animation turning the box once around its
// vertical axis, starting at the configured azimuth.
// It stops between frames once ctx is done.
func (r *Renderer) EncodeGIF(ctx context.Context, w io.Writer, spec valueobject.BoxSpec) error {
	n := r.cfg.Frames
	out := &gif.GIF{
		Image:     make([]*image.Paletted, 0, n),
		Delay:     make([]int, 0, n),
		LoopCount: 0,
	}

	step := 360.0 / float64(n)
	for k := 0; k < n; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rgba := r.draw(spec, r.cfg.Elevation, r.cfg.Azimuth+float64(k)*step)

		pimg := image.NewPaletted(rgba.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(pimg, pimg.Bounds(), rgba, image.Point{})

		out.Image = append(out.Image, pimg)
		out.Delay = append(out.Delay, r.cfg.Delay)
	}

	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// Adapter exposes a Renderer as a port.BoxRenderer.
type Adapter struct {
	renderer *Renderer
}

// NewAdapter creates an Adapter.
func NewAdapter(r *Renderer) *Adapter {
	return &Adapter{renderer: r}
}

// Encode implements port.BoxRenderer.
func (a *Adapter) Encode(ctx context.Context, w io.Writer, spec valueobject.BoxSpec, format string, view *port.View) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	r := a.renderer
	if view != nil {
		elev, azim := r.cfg.Elevation, r.cfg.Azimuth
		if !math.IsNaN(view.Elevation) {
			elev = view.Elevation
		}
		if !math.IsNaN(view.Azimuth) {
			azim = view.Azimuth
		}
		r = r.WithView(elev, azim)
	}
	return r.Encode(ctx, w, spec, f)
}

// ContentType implements port.BoxRenderer.
func (a *Adapter) ContentType(format string) string {
	f, err := ParseFormat(format)
	if err != nil {
		return "application/octet-stream"
	}
	return f.ContentType()
}
