// Package geom provides 2D vector math and the rounded-rectangle
// distance primitives used by the physics core.
package geom

import "math"

// Vec2 is a 2D vector. All operations are value operations.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Splat returns a vector with both components set to s.
func Splat(s float64) Vec2 {
	return Vec2{X: s, Y: s}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 {
	return Vec2{X: v.X * o.X, Y: v.Y * o.Y}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LenSq returns the squared length of v.
// Use this when comparing lengths to avoid the sqrt cost.
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Abs returns the component-wise absolute value of v.
func (v Vec2) Abs() Vec2 {
	return Vec2{X: math.Abs(v.X), Y: math.Abs(v.Y)}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	inv := 1.0 / l
	return Vec2{X: v.X * inv, Y: v.Y * inv}
}

// ClampLen returns v shortened to max length if it is longer, unchanged otherwise.
func (v Vec2) ClampLen(max float64) Vec2 {
	lsq := v.LenSq()
	if lsq <= max*max {
		return v
	}
	return v.Scale(max / math.Sqrt(lsq))
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
