package valueobject

import "fmt"

// Vertex is a corner of the box in 3D space.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// String returns a formatted representation (e.g., "(1.59, 0.00, 0.79)").
func (v Vertex) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// FaceName identifies one of the five visible faces of the open box.
type FaceName string

const (
	FaceBase  FaceName = "base"  // z = 0
	FaceFront FaceName = "front" // y = 0
	FaceRight FaceName = "right" // x = width
	FaceBack  FaceName = "back"  // y = length
	FaceLeft  FaceName = "left"  // x = 0
)

// Face is a planar quadrilateral given by its four corners in drawing order.
type Face struct {
	Name    FaceName  `json:"name"`
	Corners [4]Vertex `json:"corners"`
}

// IsWall reports whether the face is one of the four vertical walls.
func (f Face) IsWall() bool {
	return f.Name != FaceBase
}

// Centroid returns the mean of the four corners.
func (f Face) Centroid() Vertex {
	var c Vertex
	for _, v := range f.Corners {
		c.X += v.X
		c.Y += v.Y
		c.Z += v.Z
	}
	return Vertex{X: c.X / 4, Y: c.Y / 4, Z: c.Z / 4}
}

// Vertices returns the eight corners of the box with one corner at the origin:
//
//	v0 (0,0,0)  v1 (w,0,0)  v2 (w,l,0)  v3 (0,l,0)
//	v4 (0,0,h)  v5 (w,0,h)  v6 (w,l,h)  v7 (0,l,h)
func (b BoxSpec) Vertices() [8]Vertex {
	w, l, h := b.Width, b.Length, b.Height
	return [8]Vertex{
		{0, 0, 0},
		{w, 0, 0},
		{w, l, 0},
		{0, l, 0},
		{0, 0, h},
		{w, 0, h},
		{w, l, h},
		{0, l, h},
	}
}

// Faces returns the base and the four walls. The top is open and never returned.
func (b BoxSpec) Faces() [5]Face {
	v := b.Vertices()
	return [5]Face{
		{Name: FaceBase, Corners: [4]Vertex{v[0], v[1], v[2], v[3]}},
		{Name: FaceFront, Corners: [4]Vertex{v[0], v[1], v[5], v[4]}},
		{Name: FaceRight, Corners: [4]Vertex{v[1], v[2], v[6], v[5]}},
		{Name: FaceBack, Corners: [4]Vertex{v[2], v[3], v[7], v[6]}},
		{Name: FaceLeft, Corners: [4]Vertex{v[3], v[0], v[4], v[7]}},
	}
}
