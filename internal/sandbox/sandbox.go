package sandbox

import (
	"bufio"
	"io"
	"time"

	"github.com/tomz197/roundbox/internal/config"
	"github.com/tomz197/roundbox/internal/draw"
	"github.com/tomz197/roundbox/internal/geom"
	"github.com/tomz197/roundbox/internal/input"
	"github.com/tomz197/roundbox/internal/physics"
)

const cursorSpeed = 60.0 // world units per second

// Options configures a sandbox session.
type Options struct {
	// TermSize reports the terminal dimensions each frame. Defaults to
	// the local terminal; SSH sessions supply their own tracker.
	TermSize draw.TermSizeFunc
}

// Run drives the sandbox loop over the given reader/writer until the user
// quits or the reader closes. The standard input → update → draw cycle at
// the configured tick rate.
func Run(r *bufio.Reader, w io.Writer, cfg config.Config, opts Options) error {
	termSize := opts.TermSize
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}

	state := NewState(cfg)
	stream := input.StartStream(r)

	fps := cfg.Sandbox.FPS
	if fps <= 0 {
		fps = 60
	}
	frameTime := time.Second / time.Duration(fps)
	dt := 1.0 / float64(fps)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	termW, termH, err := termSize()
	if err != nil {
		return err
	}
	canvas := draw.NewCanvas(1, 1, cfg.Sandbox.Width, cfg.Sandbox.Height)
	cw := draw.NewChunkWriter(w, 0, 0)

	// The render area keeps the arena's aspect ratio and is centered in
	// whatever is left after the HUD row.
	fit := func() {
		cols, rows, offCol, offRow := draw.FitTerminal(
			termW, termH-1, cfg.Sandbox.Width, cfg.Sandbox.Height)
		canvas.Resize(cols, rows)
		canvas.SetOffset(offCol, offRow)
		cw.SetOffset(offCol, offRow)
	}
	fit()

	for state.Running {
		frameStart := time.Now()

		tw, th, err := termSize()
		if err != nil {
			return err
		}
		if tw != termW || th != termH {
			termW, termH = tw, th
			fit()
			draw.ClearScreen(w)
		}

		inp := input.ReadInput(stream)
		state.apply(inp, dt)

		if !state.Paused {
			state.TickCollisions = 0
			state.World.Step(dt)
		}

		renderFrame(state, canvas, cw)
		if err := cw.Flush(); err != nil {
			return err
		}

		if elapsed := time.Since(frameStart); elapsed < frameTime {
			time.Sleep(frameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// apply processes one frame of input: steering is level-triggered, the
// rest edge-triggered against the previous frame.
func (s *State) apply(inp input.Input, dt float64) {
	if inp.Quit {
		s.Running = false
	}

	pressed := func(cur, was bool) bool { return cur && !was }

	if pressed(inp.Gizmos, s.prev.Gizmos) {
		s.Gizmos = !s.Gizmos
	}
	if pressed(inp.Pause, s.prev.Pause) {
		s.Paused = !s.Paused
	}
	if pressed(inp.Reset, s.prev.Reset) {
		s.Reset()
	}
	if pressed(inp.Spawn, s.prev.Spawn) {
		s.spawnBox(s.Cursor)
	}
	if pressed(inp.Burst, s.prev.Burst) {
		s.spawnBurst(s.Cursor)
	}

	s.moveCursor(inp, dt)
	s.steerPlayer(inp)

	s.prev = inp
}

func (s *State) moveCursor(inp input.Input, dt float64) {
	var dir geom.Vec2
	if inp.CursorLeft {
		dir.X -= 1
	}
	if inp.CursorRight {
		dir.X += 1
	}
	if inp.CursorUp {
		dir.Y -= 1
	}
	if inp.CursorDown {
		dir.Y += 1
	}
	s.Cursor = s.Cursor.Add(dir.Scale(cursorSpeed * dt))

	w, h := s.arena()
	s.Cursor.X = clamp(s.Cursor.X, wallThickness, w-wallThickness)
	s.Cursor.Y = clamp(s.Cursor.Y, wallThickness, h-wallThickness)
}

// steerPlayer keeps a single named force on the player body pointed along
// the held keys; drag brings it to rest when released.
func (s *State) steerPlayer(inp input.Input) {
	var dir geom.Vec2
	if inp.PlayerLeft {
		dir.X -= 1
	}
	if inp.PlayerRight {
		dir.X += 1
	}
	if inp.PlayerUp {
		dir.Y -= 1
	}
	if inp.PlayerDown {
		dir.Y += 1
	}
	s.World.ApplyForce(s.Player, "steer", physics.Force{
		Vec:    dir.Normalize().Scale(playerAccel),
		Active: true,
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
