package valueobject

import "fmt"

// BoxSpec is the result of one optimization: the dimensions of the open-top
// box with a square base that holds Volume with the least material.
//
// All measurements share the unit of the input volume (u, u², u³).
type BoxSpec struct {
	// Volume is the requested capacity in u³.
	Volume float64 `json:"volume"`

	// Width is the base side along x, in u.
	Width float64 `json:"width"`

	// Length is the base side along y, in u. Always equal to Width.
	Length float64 `json:"length"`

	// Height is the vertical side along z, in u.
	Height float64 `json:"height"`

	// Area is the total surface area of base plus four walls, in u².
	Area float64 `json:"area"`
}

// BaseArea returns the area of the base (Width × Length).
func (b BoxSpec) BaseArea() float64 {
	return b.Width * b.Length
}

// WallArea returns the combined area of the four walls.
func (b BoxSpec) WallArea() float64 {
	return 2*b.Width*b.Height + 2*b.Length*b.Height
}

// EnclosedVolume returns Width × Length × Height.
// For a BoxSpec produced by the optimizer it equals Volume up to rounding.
func (b BoxSpec) EnclosedVolume() float64 {
	return b.Width * b.Length * b.Height
}

// IsZero checks if the BoxSpec holds no result.
func (b BoxSpec) IsZero() bool {
	return b == BoxSpec{}
}

// String returns a compact representation (e.g., "1.5874x1.5874x0.7937 (A=7.5595)").
func (b BoxSpec) String() string {
	return fmt.Sprintf("%.4fx%.4fx%.4f (A=%.4f)", b.Width, b.Length, b.Height, b.Area)
}
