package physics

import (
	"sort"

	"github.com/tomz197/roundbox/internal/geom"
)

// Solver defaults. A handful of iterations is enough for contact chains to
// propagate; exact convergence for N-body stacks is not guaranteed in any
// finite count, so the cap also bounds per-tick cost.
const (
	DefaultIterations  = 6
	DefaultRestitution = 0.0
	DefaultEpsilon     = 1e-4
)

// sortContacts orders contacts by ascending (A, B) id so resolution is
// deterministic and replayable.
func sortContacts(contacts []Contact) {
	sort.Slice(contacts, func(i, j int) bool {
		if contacts[i].A != contacts[j].A {
			return contacts[i].A < contacts[j].A
		}
		return contacts[i].B < contacts[j].B
	})
}

// resolve runs up to w.iterations passes over the contacts. Each pass
// re-evaluates the pair geometry (earlier corrections in the same pass move
// bodies), removes the remaining penetration split by inverse-mass share,
// then cancels any still-closing velocity along the normal. Passes stop
// early once the deepest remaining penetration falls under epsilon.
//
// Position first, velocity second: the correction removes the geometric
// overlap this tick, the impulse keeps it from reappearing next tick.
func (w *World) resolve(contacts []Contact) {
	for it := 0; it < w.iterations; it++ {
		maxDepth := 0.0

		for i := range contacts {
			c := &contacts[i]
			if c.Sensor {
				continue
			}
			a := w.bodies[c.A]
			b := w.bodies[c.B]

			invSum := a.InvMass + b.InvMass
			if invSum == 0 {
				continue
			}

			dist, n := geom.SignedDistance(a.Shape(), b.Shape())
			if dist >= 0 {
				continue
			}
			depth := -dist
			if depth > maxDepth {
				maxDepth = depth
			}

			// Split the separation by inverse-mass share: an immovable
			// body has share 0 and the other absorbs the full depth.
			a.Pos = a.Pos.Sub(n.Scale(depth * (a.InvMass / invSum)))
			b.Pos = b.Pos.Add(n.Scale(depth * (b.InvMass / invSum)))

			// Relative velocity of b toward a along the normal. A
			// host-set velocity on an immovable body is inert and must
			// not feed momentum into the impulse.
			va, vb := a.Vel, b.Vel
			if a.InvMass == 0 {
				va = geom.Vec2{}
			}
			if b.InvMass == 0 {
				vb = geom.Vec2{}
			}
			vn := vb.Sub(va).Dot(n)
			if vn >= 0 {
				continue
			}
			j := -(1 + w.restitution) * vn / invSum
			a.Vel = a.Vel.Sub(n.Scale(j * a.InvMass))
			b.Vel = b.Vel.Add(n.Scale(j * b.InvMass))
		}

		if maxDepth < w.epsilon {
			break
		}
	}
}
