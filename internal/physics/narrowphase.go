package physics

import "github.com/tomz197/roundbox/internal/geom"

// Contact records one overlapping pair for the current tick. Normal is a
// unit vector pointing from A toward B; Depth is the penetration along it.
// Point is an approximate contact location for inspection and debug draw.
// Contacts are produced fresh by the narrow phase each tick and never
// persist across ticks.
type Contact struct {
	A, B   BodyID
	Normal geom.Vec2
	Depth  float64
	Point  geom.Vec2
	Sensor bool
}

// findContacts filters broad-phase candidates down to true overlaps.
// Pairs where both bodies are immovable are dropped unless one is a sensor:
// nothing would move, but sensors still want the notification.
func (w *World) findContacts(pairs []Pair, out []Contact) []Contact {
	for _, p := range pairs {
		a := w.bodies[p.A]
		b := w.bodies[p.B]
		if a == nil || b == nil {
			continue
		}
		sensor := a.Sensor || b.Sensor
		if a.InvMass == 0 && b.InvMass == 0 && !sensor {
			continue
		}

		dist, n := geom.SignedDistance(a.Shape(), b.Shape())
		if dist >= 0 {
			continue
		}

		out = append(out, Contact{
			A:      p.A,
			B:      p.B,
			Normal: n,
			Depth:  -dist,
			Point:  contactPoint(a, b, n),
			Sensor: sensor,
		})
	}
	return out
}

// contactPoint estimates the contact location as the midpoint between the
// two shapes' support points along the contact normal. Exact for touching
// shapes, close enough for gizmos when penetrating.
func contactPoint(a, b *Body, n geom.Vec2) geom.Vec2 {
	pa := a.Pos.Add(n.Scale(support(a, n)))
	pb := b.Pos.Sub(n.Scale(support(b, n)))
	return pa.Add(pb).Scale(0.5)
}

// support returns the extent of the body's shape along the unit direction:
// the inner rectangle's support plus the corner radius.
func support(b *Body, n geom.Vec2) float64 {
	an := n.Abs()
	return (b.Half.X-b.Radius)*an.X + (b.Half.Y-b.Radius)*an.Y + b.Radius
}
