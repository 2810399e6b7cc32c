package physics

import (
	"errors"
	"testing"

	"github.com/tomz197/roundbox/internal/geom"
)

func TestSpawnValidation(t *testing.T) {
	tests := []struct {
		name    string
		spec    BodySpec
		wantErr error
	}{
		{"valid", BodySpec{Half: geom.V(1, 1), Radius: 0.5, InvMass: 1}, nil},
		{"valid immovable", BodySpec{Half: geom.V(1, 1)}, nil},
		{"zero radius", BodySpec{Half: geom.V(1, 1), InvMass: 1}, nil},
		{"zero width", BodySpec{Half: geom.V(0, 1), InvMass: 1}, ErrHalfExtent},
		{"negative height", BodySpec{Half: geom.V(1, -1), InvMass: 1}, ErrHalfExtent},
		{"negative radius", BodySpec{Half: geom.V(1, 1), Radius: -0.1, InvMass: 1}, ErrRadius},
		{"radius exceeds half extent", BodySpec{Half: geom.V(2, 0.5), Radius: 0.75, InvMass: 1}, ErrRadius},
		{"negative inverse mass", BodySpec{Half: geom.V(1, 1), InvMass: -1}, ErrInvMass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld(Params{})
			id, err := w.Spawn(tt.spec)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if id != 0 {
					t.Errorf("failed spawn returned id %d", id)
				}
				if w.Len() != 0 {
					t.Errorf("failed spawn left %d bodies in the world", w.Len())
				}
			}
		})
	}
}

func TestUnknownIDsAreNoOps(t *testing.T) {
	w := NewWorld(Params{})
	id := mustSpawn(t, w, BodySpec{Half: geom.V(1, 1), InvMass: 1})
	w.Destroy(id)

	// All of these reference a destroyed id and must not panic or act.
	w.Destroy(id)
	w.SetVelocity(id, geom.V(1, 1))
	w.ApplyForce(id, "push", Force{Vec: geom.V(1, 0), Active: true})
	w.RemoveForce(id, "push")

	if _, ok := w.GetState(id); ok {
		t.Error("GetState on destroyed id reported ok")
	}
	if _, ok := w.Inspect(id); ok {
		t.Error("Inspect on destroyed id reported ok")
	}
	if w.Len() != 0 {
		t.Errorf("world has %d bodies, want 0", w.Len())
	}
}

func TestIDRecycling(t *testing.T) {
	w := NewWorld(Params{})
	first := mustSpawn(t, w, BodySpec{Half: geom.V(1, 1), InvMass: 1})
	second := mustSpawn(t, w, BodySpec{Half: geom.V(1, 1), InvMass: 1})
	if first == second {
		t.Fatalf("live ids collide: %d", first)
	}

	w.Destroy(first)
	third := mustSpawn(t, w, BodySpec{Half: geom.V(1, 1), InvMass: 1})
	if third != first {
		t.Errorf("expected recycled id %d, got %d", first, third)
	}
}

func TestStepFreeMotionOnly(t *testing.T) {
	w := NewWorld(Params{})
	mover := mustSpawn(t, w, BodySpec{Pos: geom.V(0, 0), Half: geom.V(1, 1), InvMass: 1, Vel: geom.V(6, -3)})
	idle := mustSpawn(t, w, BodySpec{Pos: geom.V(10, 10), Half: geom.V(1, 1), InvMass: 1})

	w.Step(0.5)

	ms, _ := w.GetState(mover)
	is, _ := w.GetState(idle)
	if !approx(ms.Pos.X, 3) || !approx(ms.Pos.Y, -1.5) {
		t.Errorf("mover at %+v, want (3, -1.5)", ms.Pos)
	}
	if !is.Pos.Sub(geom.V(10, 10)).IsZero() {
		t.Errorf("idle body moved to %+v", is.Pos)
	}
	if len(w.Contacts()) != 0 {
		t.Errorf("no-overlap world produced %d contacts", len(w.Contacts()))
	}
}

func TestImmovableNeverMoves(t *testing.T) {
	w := NewWorld(Params{})
	wall := mustSpawn(t, w, BodySpec{Pos: geom.V(0, 0), Half: geom.V(1, 1)})
	w.SetVelocity(wall, geom.V(100, 100))
	// A movable body starts overlapping it so the solver has work to do.
	mustSpawn(t, w, BodySpec{Pos: geom.V(0.5, 0), Half: geom.V(1, 1), InvMass: 1})

	for i := 0; i < 20; i++ {
		w.Step(1.0 / 60)
	}

	s, _ := w.GetState(wall)
	if !s.Pos.IsZero() {
		t.Errorf("immovable body drifted to %+v", s.Pos)
	}
}

// A settled world is a fixed point of Step: nothing but the tick counter
// changes.
func TestStepIdempotentWhenSettled(t *testing.T) {
	w := NewWorld(Params{})
	a := mustSpawn(t, w, BodySpec{Pos: geom.V(0, 0), Half: geom.V(1, 1), Radius: 0.25})
	b := mustSpawn(t, w, BodySpec{Pos: geom.V(5, 0), Half: geom.V(1, 1), InvMass: 1})

	before := map[BodyID]State{}
	for _, id := range []BodyID{a, b} {
		before[id], _ = w.GetState(id)
	}
	tick := w.Tick()

	w.Step(1.0 / 60)

	for id, want := range before {
		got, _ := w.GetState(id)
		if got != want {
			t.Errorf("body %d changed: %+v -> %+v", id, want, got)
		}
	}
	if w.Tick() != tick+1 {
		t.Errorf("tick = %d, want %d", w.Tick(), tick+1)
	}
}

func TestContactsInspection(t *testing.T) {
	w := NewWorld(Params{})
	a := mustSpawn(t, w, BodySpec{Pos: geom.V(0, 0), Half: geom.V(1, 1)})
	b := mustSpawn(t, w, BodySpec{Pos: geom.V(1.5, 0), Half: geom.V(1, 1), InvMass: 1})

	w.Step(1.0 / 60)

	contacts := w.Contacts()
	if len(contacts) != 1 {
		t.Fatalf("got %d contacts, want 1", len(contacts))
	}
	c := contacts[0]
	if c.A != a || c.B != b {
		t.Errorf("contact pair (%d, %d), want (%d, %d)", c.A, c.B, a, b)
	}
	if !approx(c.Normal.X, 1) || !approx(c.Normal.Y, 0) {
		t.Errorf("contact normal %+v, want +x", c.Normal)
	}
	if !approx(c.Depth, 0.5) {
		t.Errorf("contact depth %v, want 0.5", c.Depth)
	}
}

func TestBothImmovablePairIgnored(t *testing.T) {
	w := NewWorld(Params{})
	mustSpawn(t, w, BodySpec{Pos: geom.V(0, 0), Half: geom.V(1, 1)})
	mustSpawn(t, w, BodySpec{Pos: geom.V(0.5, 0), Half: geom.V(1, 1)})

	w.Step(1.0 / 60)

	if n := len(w.Contacts()); n != 0 {
		t.Errorf("two immovable bodies produced %d contacts", n)
	}
}

func TestSensorDetectsWithoutResolving(t *testing.T) {
	w := NewWorld(Params{})
	sensor := mustSpawn(t, w, BodySpec{Pos: geom.V(0, 0), Half: geom.V(1, 1), Sensor: true})
	box := mustSpawn(t, w, BodySpec{Pos: geom.V(0.5, 0), Half: geom.V(1, 1), InvMass: 1})

	var hits int
	w.OnCollision(func(a, b BodyID) { hits++ })

	w.Step(1.0 / 60)

	if hits != 1 {
		t.Errorf("collision callback fired %d times, want 1", hits)
	}
	contacts := w.Contacts()
	if len(contacts) != 1 || !contacts[0].Sensor {
		t.Fatalf("expected one sensor contact, got %+v", contacts)
	}
	ss, _ := w.GetState(sensor)
	bs, _ := w.GetState(box)
	if !ss.Pos.IsZero() || !bs.Pos.Sub(geom.V(0.5, 0)).IsZero() {
		t.Errorf("sensor contact moved bodies: sensor %+v box %+v", ss.Pos, bs.Pos)
	}
}

// Mutations from the collision callback land at the tick boundary, not
// mid-pipeline.
func TestMutationsDuringStepAreDeferred(t *testing.T) {
	w := NewWorld(Params{})
	a := mustSpawn(t, w, BodySpec{Pos: geom.V(0, 0), Half: geom.V(1, 1), InvMass: 1})
	mustSpawn(t, w, BodySpec{Pos: geom.V(1, 0), Half: geom.V(1, 1), InvMass: 1})

	var spawned BodyID
	w.OnCollision(func(_, _ BodyID) {
		var err error
		spawned, err = w.Spawn(BodySpec{Pos: geom.V(20, 20), Half: geom.V(1, 1), InvMass: 1})
		if err != nil {
			t.Fatalf("spawn in callback: %v", err)
		}
		w.Destroy(a)
	})

	w.Step(1.0 / 60)

	if _, ok := w.GetState(a); ok {
		t.Error("destroyed body still present after step")
	}
	if _, ok := w.GetState(spawned); !ok {
		t.Error("body spawned during step missing after step")
	}
	if w.Len() != 2 {
		t.Errorf("world has %d bodies, want 2", w.Len())
	}
}

func TestBodiesEnumeration(t *testing.T) {
	w := NewWorld(Params{})
	var want []BodyID
	for i := 0; i < 5; i++ {
		want = append(want, mustSpawn(t, w, BodySpec{Half: geom.V(1, 1), InvMass: 1, Pos: geom.V(float64(i)*10, 0)}))
	}
	w.Destroy(want[2])
	want = append(want[:2], want[3:]...)

	got := w.Bodies()
	if len(got) != len(want) {
		t.Fatalf("got %d ids, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ids[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
