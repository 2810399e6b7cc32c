package physics

import (
	"testing"

	"github.com/tomz197/roundbox/internal/geom"
)

func TestActiveForceAccelerates(t *testing.T) {
	w := NewWorld(Params{})
	id := mustSpawn(t, w, BodySpec{Half: geom.V(1, 1), InvMass: 1})
	w.ApplyForce(id, "drive", Force{Vec: geom.V(60, 0), Active: true})

	dt := 1.0 / 60
	w.Step(dt)
	s1, _ := w.GetState(id)
	if !approx(s1.Vel.X, 1) {
		t.Errorf("velocity after one tick = %v, want 1", s1.Vel.X)
	}

	w.Step(dt)
	s2, _ := w.GetState(id)
	if !approx(s2.Vel.X, 2) {
		t.Errorf("active force stopped accumulating: velocity = %v, want 2", s2.Vel.X)
	}
}

func TestInactiveForceDecays(t *testing.T) {
	w := NewWorld(Params{})
	id := mustSpawn(t, w, BodySpec{Half: geom.V(1, 1), InvMass: 1, Damping: 0.5})
	w.ApplyForce(id, "kick", Force{Vec: geom.V(60, 0), Active: false})

	dt := 1.0 / 60
	w.Step(dt)
	s1, _ := w.GetState(id)

	w.Step(dt)
	s2, _ := w.GetState(id)

	gain1 := s1.Vel.X
	gain2 := s2.Vel.X - s1.Vel.X
	if gain2 <= 0 || gain2 >= gain1 {
		t.Errorf("inactive force gain did not decay: first %v, second %v", gain1, gain2)
	}
}

// Damping 0 means no velocity drag but also no glide: an inactive force is
// scaled by Damping*dt and vanishes on the first tick.
func TestZeroDampingDropsInactiveForce(t *testing.T) {
	w := NewWorld(Params{})
	id := mustSpawn(t, w, BodySpec{Half: geom.V(1, 1), InvMass: 1, Vel: geom.V(5, 0)})
	w.ApplyForce(id, "kick", Force{Vec: geom.V(60, 0), Active: false})

	w.Step(1.0 / 60)
	s, _ := w.GetState(id)
	if !approx(s.Vel.X, 5) {
		t.Errorf("velocity = %v, want 5 (no drag, no force gain)", s.Vel.X)
	}
}

func TestRemoveForceStopsPush(t *testing.T) {
	w := NewWorld(Params{})
	id := mustSpawn(t, w, BodySpec{Half: geom.V(1, 1), InvMass: 1})
	w.ApplyForce(id, "drive", Force{Vec: geom.V(60, 0), Active: true})

	dt := 1.0 / 60
	w.Step(dt)
	w.RemoveForce(id, "drive")
	s1, _ := w.GetState(id)

	w.Step(dt)
	s2, _ := w.GetState(id)
	if !approx(s2.Vel.X, s1.Vel.X) {
		t.Errorf("velocity kept changing after force removal: %v -> %v", s1.Vel.X, s2.Vel.X)
	}
}

func TestForceUpsertReplaces(t *testing.T) {
	w := NewWorld(Params{})
	id := mustSpawn(t, w, BodySpec{Half: geom.V(1, 1), InvMass: 1})
	w.ApplyForce(id, "drive", Force{Vec: geom.V(600, 0), Active: true})
	w.ApplyForce(id, "drive", Force{Vec: geom.V(60, 0), Active: true})

	w.Step(1.0 / 60)
	s, _ := w.GetState(id)
	if !approx(s.Vel.X, 1) {
		t.Errorf("velocity = %v, want 1 (second apply should replace the first)", s.Vel.X)
	}
}

func TestSpeedClamp(t *testing.T) {
	w := NewWorld(Params{MaxSpeed: 10})
	id := mustSpawn(t, w, BodySpec{Half: geom.V(1, 1), InvMass: 1, Vel: geom.V(100, 0)})

	w.Step(1.0 / 60)
	s, _ := w.GetState(id)
	if !approx(s.Vel.X, 10) {
		t.Errorf("velocity = %v, want clamped to 10", s.Vel.X)
	}
}
