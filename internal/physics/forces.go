package physics

import (
	"sort"

	"github.com/tomz197/roundbox/internal/geom"
)

// Force is a named push acting on a body. Active forces persist at full
// strength until changed or removed; inactive forces decay each tick by the
// body's damping factor, giving a short glide after the push stops.
type Force struct {
	Vec    geom.Vec2
	Active bool
}

// DefaultMaxSpeed caps body speed after force accumulation.
const DefaultMaxSpeed = 256.0

// namedForce pairs a force with its name. Bodies keep forces in a slice
// sorted by name so per-tick accumulation is allocation-free and the float
// sum is reproducible across runs.
type namedForce struct {
	name string
	Force
}

func (b *Body) forceIndex(name string) int {
	return sort.Search(len(b.forces), func(i int) bool {
		return b.forces[i].name >= name
	})
}

func (b *Body) applyForce(name string, f Force) {
	i := b.forceIndex(name)
	if i < len(b.forces) && b.forces[i].name == name {
		b.forces[i].Force = f
		return
	}
	b.forces = append(b.forces, namedForce{})
	copy(b.forces[i+1:], b.forces[i:])
	b.forces[i] = namedForce{name: name, Force: f}
}

func (b *Body) removeForce(name string) {
	i := b.forceIndex(name)
	if i < len(b.forces) && b.forces[i].name == name {
		b.forces = append(b.forces[:i], b.forces[i+1:]...)
	}
}

// accumulateForces damps inactive forces and returns the summed force.
func (b *Body) accumulateForces(dt float64) geom.Vec2 {
	var sum geom.Vec2
	for i := range b.forces {
		f := &b.forces[i]
		if !f.Active {
			f.Vec = f.Vec.Scale(b.Damping * dt)
		}
		sum = sum.Add(f.Vec)
	}
	return sum
}
