// Package workspace defines the world coordinate frame and the safety
// boundaries the arm may be commanded into.
package workspace

import "math"

// Point is a position in the arm base frame, in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Dist returns the 3D Euclidean distance to other.
func (p Point) Dist(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	dz := p.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Radial returns the planar distance from the arm origin.
func (p Point) Radial() float64 {
	return math.Hypot(p.X, p.Y)
}
