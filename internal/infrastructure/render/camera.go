package render

import (
	"math"

	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
)

// point2 is a projected point in canvas pixels; depth grows towards the viewer.
type point2 struct {
	X, Y  float64
	Depth float64
}

// camera is an orthographic view defined by elevation above the xy plane and
// azimuth around the z axis, both in degrees.
type camera struct {
	right, up, eye [3]float64
	center         [3]float64
	scale          float64
	cx, cy         float64
}

func newCamera(spec valueobject.BoxSpec, elevation, azimuth float64, width, height int) camera {
	el := elevation * math.Pi / 180
	az := azimuth * math.Pi / 180
	se, ce := math.Sin(el), math.Cos(el)
	sa, ca := math.Sin(az), math.Cos(az)

	// The bounding sphere keeps the scale independent of the view angle so
	// frames of an animation line up.
	radius := 0.5 * math.Sqrt(spec.Width*spec.Width+spec.Length*spec.Length+spec.Height*spec.Height)
	if radius == 0 {
		radius = 1
	}
	fit := float64(min(width, height)) * (1 - 2*margin)

	return camera{
		right:  [3]float64{-sa, ca, 0},
		up:     [3]float64{-se * ca, -se * sa, ce},
		eye:    [3]float64{ce * ca, ce * sa, se},
		center: [3]float64{spec.Width / 2, spec.Length / 2, spec.Height / 2},
		scale:  fit / (2 * radius),
		cx:     float64(width) / 2,
		cy:     float64(height) / 2,
	}
}

func (c camera) project(v valueobject.Vertex) point2 {
	p := [3]float64{v.X - c.center[0], v.Y - c.center[1], v.Z - c.center[2]}
	dot := func(a [3]float64) float64 { return a[0]*p[0] + a[1]*p[1] + a[2]*p[2] }

	return point2{
		X:     c.cx + dot(c.right)*c.scale,
		Y:     c.cy - dot(c.up)*c.scale,
		Depth: dot(c.eye),
	}
}

// projectedFace is a face ready to be painted.
type projectedFace struct {
	face    valueobject.Face
	corners [4]point2
	depth   float64
}

func (c camera) projectFace(f valueobject.Face) projectedFace {
	pf := projectedFace{face: f}
	for i, v := range f.Corners {
		pf.corners[i] = c.project(v)
	}
	pf.depth = c.project(f.Centroid()).Depth
	return pf
}
