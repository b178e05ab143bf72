// Package core defines domain models for UAV-assisted mobile-edge computing.
package core

import "math"

// Pos represents a 3D position (Z=0 for ground devices).
type Pos struct {
	X, Y, Z float64
}

// Pos2 is a planar position used for per-slot UAV waypoints.
type Pos2 struct {
	X, Y float64
}

// HorizDist returns the planar (X, Y) distance between two positions.
func HorizDist(a, b Pos) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Dist returns the distance between a planar waypoint and a ground position.
func (p Pos2) Dist(q Pos) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// DistSq returns the squared planar distance to a ground position.
func (p Pos2) DistSq(q Pos) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Sub returns the displacement vector p - q.
func (p Pos2) Sub(q Pos2) Pos2 {
	return Pos2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Norm returns the Euclidean length of the vector.
func (p Pos2) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}
