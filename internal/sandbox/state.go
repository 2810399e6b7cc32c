// Package sandbox is the interactive demo: a walled arena with a steerable
// player body, boxes of varying mass spawned at a cursor, and a toggleable
// hitbox/contact overlay, rendered to a terminal.
package sandbox

import (
	"math/rand"

	"github.com/tomz197/roundbox/internal/config"
	"github.com/tomz197/roundbox/internal/geom"
	"github.com/tomz197/roundbox/internal/input"
	"github.com/tomz197/roundbox/internal/physics"
)

// State holds everything the sandbox loop mutates between frames.
type State struct {
	World  *physics.World
	Player physics.BodyID
	Cursor geom.Vec2

	Gizmos  bool
	Paused  bool
	Running bool

	// Contacts seen on the last stepped tick, fed by the collision callback.
	TickCollisions int

	cfg  config.Config
	rng  *rand.Rand
	prev input.Input
}

// NewState builds a fresh world with the demo scene.
func NewState(cfg config.Config) *State {
	s := &State{
		Gizmos:  true,
		Running: true,
		cfg:     cfg,
		rng:     rand.New(rand.NewSource(1)),
		Cursor:  geom.V(cfg.Sandbox.Width/2, cfg.Sandbox.Height/2),
	}
	s.buildScene()
	return s
}

// Reset rebuilds the scene from scratch, keeping cursor and toggles.
func (s *State) Reset() {
	s.buildScene()
}

// arena returns the sandbox dimensions in world units.
func (s *State) arena() (w, h float64) {
	return s.cfg.Sandbox.Width, s.cfg.Sandbox.Height
}
