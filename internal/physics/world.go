package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/tomz197/roundbox/internal/geom"
)

// Params tunes a World. Zero values fall back to the package defaults.
type Params struct {
	CellSize           float64 // broad-phase grid cell size
	DenseCellThreshold int     // occupancy at which a cell switches to sweep
	Iterations         int     // solver iteration cap
	Restitution        float64 // bounce coefficient, 0 = pushable boxes
	Epsilon            float64 // solver early-out penetration threshold
	MaxSpeed           float64 // speed clamp applied after force accumulation
}

// DefaultParams returns the package defaults.
func DefaultParams() Params {
	return Params{
		CellSize:           DefaultCellSize,
		DenseCellThreshold: DefaultDenseCellThreshold,
		Iterations:         DefaultIterations,
		Restitution:        DefaultRestitution,
		Epsilon:            DefaultEpsilon,
		MaxSpeed:           DefaultMaxSpeed,
	}
}

// State is the kinematic state a host reads back after a step.
type State struct {
	Pos geom.Vec2
	Vel geom.Vec2
}

// Info is the full inspection view of a body, for debug draw.
type Info struct {
	Shape   geom.RoundedRect
	Vel     geom.Vec2
	InvMass float64
	Sensor  bool
}

// CollisionFunc is invoked once per contact pair per tick, after solving.
// Spawning or destroying bodies from inside the callback is deferred to the
// tick boundary like any mid-step mutation.
type CollisionFunc func(a, b BodyID)

// World owns the live bodies and drives the per-tick pipeline:
// integrate → broad phase → narrow phase → solve → commit.
//
// A World is single-threaded: Step blocks until the tick resolves and the
// caller must serialize Spawn/Destroy/Step. Independent Worlds are fully
// isolated and may run on separate goroutines.
type World struct {
	bodies map[BodyID]*Body
	order  []BodyID // live ids, ascending, drives all iteration
	nextID BodyID
	freeID []BodyID

	grid        *Grid
	iterations  int
	restitution float64
	epsilon     float64
	maxSpeed    float64

	pairBuf  []Pair
	bodyBuf  []*Body
	contacts []Contact

	tick     uint64
	stepping bool

	pendingSpawn []*Body
	pendingKill  []BodyID

	onCollision CollisionFunc
}

// NewWorld creates an empty world. Zero fields of p take defaults.
func NewWorld(p Params) *World {
	d := DefaultParams()
	if p.CellSize <= 0 {
		p.CellSize = d.CellSize
	}
	if p.DenseCellThreshold <= 0 {
		p.DenseCellThreshold = d.DenseCellThreshold
	}
	if p.Iterations <= 0 {
		p.Iterations = d.Iterations
	}
	if p.Epsilon <= 0 {
		p.Epsilon = d.Epsilon
	}
	if p.MaxSpeed <= 0 {
		p.MaxSpeed = d.MaxSpeed
	}

	return &World{
		bodies:      make(map[BodyID]*Body),
		nextID:      1,
		grid:        NewGrid(p.CellSize, p.DenseCellThreshold),
		iterations:  p.Iterations,
		restitution: p.Restitution,
		epsilon:     p.Epsilon,
		maxSpeed:    p.MaxSpeed,
	}
}

// Spawn validates the spec and creates a body, returning its handle. During
// a Step the body is buffered and joins the world at the tick boundary; its
// id is valid immediately either way.
func (w *World) Spawn(spec BodySpec) (BodyID, error) {
	if err := spec.validate(); err != nil {
		return 0, fmt.Errorf("spawn: %w", err)
	}

	id := w.allocID()
	b := newBody(id, spec)
	if w.stepping {
		w.pendingSpawn = append(w.pendingSpawn, b)
		return id, nil
	}
	w.insert(b)
	return id, nil
}

// Destroy removes a body. Unknown or already-destroyed ids are a no-op.
// During a Step the removal is deferred to the tick boundary.
func (w *World) Destroy(id BodyID) {
	if w.stepping {
		w.pendingKill = append(w.pendingKill, id)
		return
	}
	w.remove(id)
}

// SetVelocity sets a body's velocity. No-op for unknown ids. Setting a
// velocity on an immovable body stores it but never moves the body.
func (w *World) SetVelocity(id BodyID, v geom.Vec2) {
	if b := w.bodies[id]; b != nil {
		b.Vel = v
	}
}

// ApplyForce adds or replaces a named force on a body. No-op for unknown
// ids. Active forces push every tick until changed; inactive ones decay by
// the body's damping factor.
func (w *World) ApplyForce(id BodyID, name string, f Force) {
	if b := w.bodies[id]; b != nil {
		b.applyForce(name, f)
	}
}

// RemoveForce drops a named force. No-op for unknown ids or names.
func (w *World) RemoveForce(id BodyID, name string) {
	if b := w.bodies[id]; b != nil {
		b.removeForce(name)
	}
}

// GetState returns a body's position and velocity. ok is false for unknown ids.
func (w *World) GetState(id BodyID) (s State, ok bool) {
	b := w.bodies[id]
	if b == nil {
		return State{}, false
	}
	return State{Pos: b.Pos, Vel: b.Vel}, true
}

// Inspect returns the full debug view of a body. ok is false for unknown ids.
func (w *World) Inspect(id BodyID) (info Info, ok bool) {
	b := w.bodies[id]
	if b == nil {
		return Info{}, false
	}
	return Info{Shape: b.Shape(), Vel: b.Vel, InvMass: b.InvMass, Sensor: b.Sensor}, true
}

// Bodies returns the live body ids in ascending order. The slice is a copy.
func (w *World) Bodies() []BodyID {
	ids := make([]BodyID, len(w.order))
	copy(ids, w.order)
	return ids
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.order)
}

// Contacts returns the contacts found on the most recent tick, ordered by
// ascending (A, B). The slice is valid until the next Step.
func (w *World) Contacts() []Contact {
	return w.contacts
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// OnCollision registers a callback fired once per contact pair per tick.
// Pass nil to clear it.
func (w *World) OnCollision(fn CollisionFunc) {
	w.onCollision = fn
}

// Step advances the simulation by dt seconds: free-motion integration for
// movable bodies, broad-phase candidate generation, narrow-phase contact
// detection, solver resolution, then the tick counter. Bodies spawned or
// destroyed while stepping (from the collision callback) are committed at
// the end, so the whole tick runs on a frozen body set.
func (w *World) Step(dt float64) {
	w.stepping = true

	w.integrate(dt)

	w.grid.Rebuild(w.liveBodies())
	w.pairBuf = w.grid.Pairs(w.pairBuf[:0])
	w.contacts = w.findContacts(w.pairBuf, w.contacts[:0])
	sortContacts(w.contacts)
	w.resolve(w.contacts)

	w.tick++
	if w.onCollision != nil {
		for i := range w.contacts {
			w.onCollision(w.contacts[i].A, w.contacts[i].B)
		}
	}

	w.stepping = false
	w.commitPending()
}

// integrate applies forces and free motion. Immovable bodies are never
// integrated, even with a host-set velocity.
func (w *World) integrate(dt float64) {
	for _, id := range w.order {
		b := w.bodies[id]
		if b.InvMass == 0 {
			continue
		}
		if len(b.forces) > 0 {
			b.Vel = b.Vel.Add(b.accumulateForces(dt).Scale(dt))
		}
		if b.Damping > 0 {
			b.Vel = b.Vel.Scale(math.Max(0, 1-b.Damping*dt))
		}
		b.Vel = b.Vel.ClampLen(w.maxSpeed)
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
	}
}

// liveBodies returns the bodies in id order, backing the grid rebuild.
// The slice is reused between ticks to avoid allocations.
func (w *World) liveBodies() []*Body {
	w.bodyBuf = w.bodyBuf[:0]
	for _, id := range w.order {
		w.bodyBuf = append(w.bodyBuf, w.bodies[id])
	}
	return w.bodyBuf
}

func (w *World) allocID() BodyID {
	if n := len(w.freeID); n > 0 {
		id := w.freeID[n-1]
		w.freeID = w.freeID[:n-1]
		return id
	}
	id := w.nextID
	w.nextID++
	return id
}

func (w *World) insert(b *Body) {
	w.bodies[b.id] = b
	i := sort.Search(len(w.order), func(i int) bool { return w.order[i] >= b.id })
	w.order = append(w.order, 0)
	copy(w.order[i+1:], w.order[i:])
	w.order[i] = b.id
}

func (w *World) remove(id BodyID) {
	if _, live := w.bodies[id]; !live {
		return
	}
	delete(w.bodies, id)
	i := sort.Search(len(w.order), func(i int) bool { return w.order[i] >= id })
	w.order = append(w.order[:i], w.order[i+1:]...)
	w.freeID = append(w.freeID, id)
}

// commitPending applies deferred mutations. Spawns go first so a body
// spawned and destroyed within the same tick resolves to "gone".
func (w *World) commitPending() {
	for _, b := range w.pendingSpawn {
		w.insert(b)
	}
	w.pendingSpawn = w.pendingSpawn[:0]

	for _, id := range w.pendingKill {
		w.remove(id)
	}
	w.pendingKill = w.pendingKill[:0]
}
