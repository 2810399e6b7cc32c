// Package physics implements a real-time collision engine for axis-aligned
// rounded rectangles: broad-phase candidate generation on a spatial hash
// grid, a narrow phase built on the signed-distance primitive in geom, and
// an iterative solver that turns penetrations into position corrections and
// velocity impulses. A World owns the bodies and drives the per-tick
// pipeline; see World.Step.
package physics

import (
	"errors"

	"github.com/tomz197/roundbox/internal/geom"
)

// BodyID is a stable handle to a live body. It stays unique for the body's
// lifetime and is recycled only after the body is destroyed.
type BodyID uint32

// Construction errors returned by World.Spawn.
var (
	ErrHalfExtent = errors.New("physics: half extent must be positive")
	ErrRadius     = errors.New("physics: corner radius out of range")
	ErrInvMass    = errors.New("physics: inverse mass must be non-negative")
)

// BodySpec describes a body to spawn. Half extents are for the rectangle
// core; Radius rounds all four corners and must not exceed either half
// extent. InvMass 0 makes the body immovable. Damping controls drag in two
// forms: velocity is scaled by 1 - Damping*dt each tick (0 leaves it
// untouched), while inactive forces are scaled by Damping*dt (0 drops them
// immediately, larger values give a longer glide).
type BodySpec struct {
	Pos     geom.Vec2
	Half    geom.Vec2
	Radius  float64
	Vel     geom.Vec2
	InvMass float64
	Sensor  bool
	Damping float64
}

func (s BodySpec) validate() error {
	if s.Half.X <= 0 || s.Half.Y <= 0 {
		return ErrHalfExtent
	}
	if s.Radius < 0 || s.Radius > s.Half.X || s.Radius > s.Half.Y {
		return ErrRadius
	}
	if s.InvMass < 0 {
		return ErrInvMass
	}
	return nil
}

// Body is the unit of simulation. Half extent and corner radius are fixed
// for the body's lifetime; position and velocity change every tick.
type Body struct {
	id      BodyID
	Pos     geom.Vec2
	Vel     geom.Vec2
	Half    geom.Vec2
	Radius  float64
	InvMass float64
	Sensor  bool
	Damping float64
	forces  []namedForce
}

func newBody(id BodyID, s BodySpec) *Body {
	return &Body{
		id:      id,
		Pos:     s.Pos,
		Vel:     s.Vel,
		Half:    s.Half,
		Radius:  s.Radius,
		InvMass: s.InvMass,
		Sensor:  s.Sensor,
		Damping: s.Damping,
	}
}

// ID returns the body's handle.
func (b *Body) ID() BodyID {
	return b.id
}

// Immovable reports whether the body has infinite mass (inverse mass zero).
func (b *Body) Immovable() bool {
	return b.InvMass == 0
}

// Shape returns the body's collision shape at its current position.
func (b *Body) Shape() geom.RoundedRect {
	return geom.RoundedRect{Center: b.Pos, Half: b.Half, Radius: b.Radius}
}

// Bounds returns the body's axis-aligned bounding box.
func (b *Body) Bounds() (min, max geom.Vec2) {
	return b.Shape().Bounds()
}
