// Package optimizer computes the open-top box with a square base that holds
// a fixed volume using the least material.
//
// The problem is to minimize A(x,y,h) = xy + 2xh + 2yh subject to V = xyh.
// Substituting h = V/(xy) gives A(x,y) = xy + 2V/y + 2V/x, whose only
// positive stationary point is x = y = cbrt(2V). Since A grows without bound
// towards the edges of the domain x,y > 0, that point is the global minimum
// for every V > 0, so the result is computed directly from the closed form.
package optimizer

import (
	"math"

	"github.com/hapkiduki/boxopt/internal/domain/valueobject"
)

// Optimize returns the optimal BoxSpec for an already validated volume.
//
// Parameters:
//   - volume: the fixed capacity
//
// Returns:
//   - valueobject.BoxSpec: the minimal-area box
func Optimize(volume valueobject.Volume) valueobject.BoxSpec {
	v := volume.Float64()

	x := math.Cbrt(2 * v)
	y := x
	h := v / (x * y)

	return valueobject.BoxSpec{
		Volume: v,
		Width:  x,
		Length: y,
		Height: h,
		Area:   SurfaceArea(x, y, h),
	}
}

// Compute validates volume and returns the optimal BoxSpec.
//
// Parameters:
//   - volume: the fixed capacity in cubic units
//
// Returns:
//   - valueobject.BoxSpec: the minimal-area box
//   - error: valueobject.ErrInvalidInput if volume is not a positive finite number
func Compute(volume float64) (valueobject.BoxSpec, error) {
	v, err := valueobject.NewVolume(volume)
	if err != nil {
		return valueobject.BoxSpec{}, err
	}
	return Optimize(v), nil
}

// ComputeRaw parses the raw textual volume and returns the optimal BoxSpec.
//
// Parameters:
//   - raw: the volume as typed by the user
//
// Returns:
//   - valueobject.BoxSpec: the minimal-area box
//   - error: valueobject.ErrInvalidInput if raw is not a positive number
func ComputeRaw(raw string) (valueobject.BoxSpec, error) {
	v, err := valueobject.ParseVolume(raw)
	if err != nil {
		return valueobject.BoxSpec{}, err
	}
	return Optimize(v), nil
}

// SurfaceArea is the objective: base plus four walls, no top.
func SurfaceArea(x, y, h float64) float64 {
	return x*y + 2*x*h + 2*y*h
}

// ReducedArea is SurfaceArea with h eliminated through the volume constraint.
func ReducedArea(x, y, volume float64) float64 {
	return x*y + 2*volume/y + 2*volume/x
}

// Gradient returns the partial derivatives of ReducedArea with respect to x and y.
// Both vanish at the optimum.
func Gradient(x, y, volume float64) (dx, dy float64) {
	return y - 2*volume/(x*x), x - 2*volume/(y*y)
}
