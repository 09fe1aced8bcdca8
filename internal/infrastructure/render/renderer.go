// Package render draws the open-top box as a shaded 3D picture and encodes it
// as PNG or as an animated GIF that spins the box around its vertical axis.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// margin is the fraction of the canvas left empty on each side.
const margin = 0.1

const edgeWidth = 1.5

// MinCanvas is the smallest canvas side; smaller canvases cannot hold the margin.
const MinCanvas = 32

var (
	baseColor  = color.NRGBA{R: 0x81, G: 0xc7, B: 0x84, A: 0xff}
	wallColor  = color.NRGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	edgeColor  = color.NRGBA{A: 0xff}
	background = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Config errors.
var (
	ErrInvalidCanvas  = errors.New("canvas width and height must be at least 32 pixels")
	ErrInvalidOpacity = errors.New("opacity must be in (0, 1]")
	ErrInvalidFrames  = errors.New("frames must be positive")
)

// Config contains renderer configuration.
type Config struct {
	// Width and Height are the canvas size in pixels.
	Width  int
	Height int

	// Elevation is the view angle above the base plane, in degrees.
	Elevation float64

	// Azimuth is the view angle around the vertical axis, in degrees.
	Azimuth float64

	// Opacity of the faces in (0, 1].
	Opacity float64

	// Labels draws the dimension labels and the title.
	Labels bool

	// Frames is the number of frames of a full GIF turn.
	Frames int

	// Delay between GIF frames in 100ths of a second.
	Delay int
}

// DefaultConfig returns the default renderer configuration.
func DefaultConfig() Config {
	return Config{
		Width:     800,
		Height:    600,
		Elevation: 30,
		Azimuth:   30,
		Opacity:   0.7,
		Labels:    true,
		Frames:    36,
		Delay:     8,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Width < MinCanvas || c.Height < MinCanvas {
		return ErrInvalidCanvas
	}
	if c.Opacity <= 0 || c.Opacity > 1 || math.IsNaN(c.Opacity) {
		return ErrInvalidOpacity
	}
	if c.Frames <= 0 {
		return ErrInvalidFrames
	}
	return nil
}

// Renderer draws BoxSpec values.
type Renderer struct {
	cfg Config
}

// New creates a Renderer.
//
// Parameters:
//   - cfg: renderer configuration
//
// Returns:
//   - *Renderer: the renderer
//   - error: a validation error if cfg is invalid
func New(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{cfg: cfg}, nil
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// WithView returns a copy of the renderer looking from another angle.
func (r *Renderer) WithView(elevation, azimuth float64) *Renderer {
	cfg := r.cfg
	cfg.Elevation = elevation
	cfg.Azimuth = azimuth
	return &Renderer{cfg: cfg}
}

// Draw paints the five faces of spec seen from the configured angle.
func (r *Renderer) Draw(spec valueobject.BoxSpec) *image.RGBA {
	return r.draw(spec, r.cfg.Elevation, r.cfg.Azimuth)
}

func (r *Renderer) draw(spec valueobject.BoxSpec, elevation, azimuth float64) *image.RGBA {
	w, h := r.cfg.Width, r.cfg.Height
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	cam := newCamera(spec, elevation, azimuth, w, h)

	faces := spec.Faces()
	projected := make([]projectedFace, 0, len(faces))
	for _, f := range faces {
		projected = append(projected, cam.projectFace(f))
	}
	// painter's algorithm: far faces first
	sort.SliceStable(projected, func(i, j int) bool {
		return projected[i].depth < projected[j].depth
	})

	alpha := uint8(math.Round(r.cfg.Opacity * 255))
	for _, pf := range projected {
		fill := wallColor
		if !pf.face.IsWall() {
			fill = baseColor
		}
		fill.A = alpha
		fillPolygon(dst, pf.corners[:], fill)
		for i := range pf.corners {
			strokeLine(dst, pf.corners[i], pf.corners[(i+1)%len(pf.corners)], edgeWidth, edgeColor)
		}
	}

	if r.cfg.Labels {
		drawLabels(dst, cam, spec)
	}
	return dst
}

// fillPolygon rasterizes pts over their bounding box.
func fillPolygon(dst draw.Image, pts []point2, c color.Color) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	r := image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX))+1, int(math.Ceil(maxY))+1,
	)
	// the rasterizer does not clip, fall back to the whole canvas
	if !r.In(dst.Bounds()) {
		r = dst.Bounds()
	}

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}

// strokeLine draws the segment p-q as a thin quadrilateral.
func strokeLine(dst draw.Image, p, q point2, width float64, c color.Color) {
	dx, dy := q.X-p.X, q.Y-p.Y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	ox, oy := -dy/n*width/2, dx/n*width/2
	fillPolygon(dst, []point2{
		{X: p.X + ox, Y: p.Y + oy},
		{X: q.X + ox, Y: q.Y + oy},
		{X: q.X - ox, Y: q.Y - oy},
		{X: p.X - ox, Y: p.Y - oy},
	}, c)
}

func drawLabels(dst draw.Image, cam camera, spec valueobject.BoxSpec) {
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: basicfont.Face7x13}
	text := func(s string, x, y float64) {
		d.Dot = fixed.P(int(math.Round(x)), int(math.Round(y)))
		d.DrawString(s)
	}

	text(fmt.Sprintf("Optimal open-top box (V=%.2f u³)", spec.Volume), 10, 20)

	at := func(v valueobject.Vertex) point2 { return cam.project(v) }
	x := at(valueobject.Vertex{X: spec.Width / 2})
	y := at(valueobject.Vertex{X: spec.Width, Y: spec.Length / 2})
	h := at(valueobject.Vertex{Z: spec.Height / 2})
	text(fmt.Sprintf("x=%.2f", spec.Width), x.X, x.Y+15)
	text(fmt.Sprintf("y=%.2f", spec.Length), y.X+5, y.Y+15)
	text(fmt.Sprintf("h=%.2f", spec.Height), h.X+5, h.Y)
}
