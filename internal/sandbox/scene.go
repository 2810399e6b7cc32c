package sandbox

import (
	"github.com/tomz197/roundbox/internal/geom"
	"github.com/tomz197/roundbox/internal/physics"
)

// Scene tuning. World units match the logical canvas, so an arena of
// 120x80 fills the default render area.
const (
	wallThickness = 2.0
	playerAccel   = 220.0
	playerDamping = 3.0
	spawnKick     = 25.0 // max random speed for spawned boxes
	burstCount    = 10
)

// buildScene replaces the world with the demo setup: four immovable walls,
// a steerable player, one heavy and one light box, and a sensor pad that
// counts what slides over it.
func (s *State) buildScene() {
	w, h := s.arena()
	world := physics.NewWorld(s.cfg.Params())
	world.OnCollision(func(a, b physics.BodyID) {
		s.TickCollisions++
	})
	s.World = world

	wall := func(pos, half geom.Vec2) {
		// Walls are immovable; spawn only fails on bad dimensions, which
		// are constants here.
		_, _ = world.Spawn(physics.BodySpec{Pos: pos, Half: half})
	}
	wall(geom.V(w/2, wallThickness/2), geom.V(w/2, wallThickness/2))   // top
	wall(geom.V(w/2, h-wallThickness/2), geom.V(w/2, wallThickness/2)) // bottom
	wall(geom.V(wallThickness/2, h/2), geom.V(wallThickness/2, h/2))   // left
	wall(geom.V(w-wallThickness/2, h/2), geom.V(wallThickness/2, h/2)) // right

	s.Player, _ = world.Spawn(physics.BodySpec{
		Pos:     geom.V(w*0.25, h*0.5),
		Half:    geom.V(2, 2),
		Radius:  0.75,
		InvMass: 1,
		Damping: playerDamping,
	})

	// Heavy box: large inverse-mass asymmetry against the player.
	world.Spawn(physics.BodySpec{
		Pos:     geom.V(w*0.6, h*0.5),
		Half:    geom.V(4, 4),
		Radius:  1,
		InvMass: 0.25,
		Damping: playerDamping,
	})

	// Light box: pushed around easily.
	world.Spawn(physics.BodySpec{
		Pos:     geom.V(w*0.45, h*0.3),
		Half:    geom.V(2, 2),
		Radius:  0.5,
		InvMass: 2,
		Damping: playerDamping,
	})

	// Sensor pad in the corner: detects overlap, never pushes back.
	world.Spawn(physics.BodySpec{
		Pos:    geom.V(w*0.82, h*0.78),
		Half:   geom.V(6, 4),
		Radius: 1,
		Sensor: true,
	})
}

// spawnBox drops a dynamic box at the cursor with randomized size, mass and
// initial velocity, like the stress demo's click spawning.
func (s *State) spawnBox(at geom.Vec2) {
	half := 1.0 + s.rng.Float64()*1.5
	radius := half * (0.2 + s.rng.Float64()*0.6)
	mass := 1.0 + s.rng.Float64()*19.0

	_, _ = s.World.Spawn(physics.BodySpec{
		Pos:     at,
		Half:    geom.V(half, half),
		Radius:  radius,
		InvMass: 1 / mass,
		Vel: geom.V(
			(s.rng.Float64()*2-1)*spawnKick,
			(s.rng.Float64()*2-1)*spawnKick,
		),
		Damping: 0.5,
	})
}

// spawnBurst drops several boxes with a little jitter so they do not start
// perfectly coincident.
func (s *State) spawnBurst(at geom.Vec2) {
	for i := 0; i < burstCount; i++ {
		jitter := geom.V(
			(s.rng.Float64()*2-1)*1.5,
			(s.rng.Float64()*2-1)*1.5,
		)
		s.spawnBox(at.Add(jitter))
	}
}
