// Package input provides non-blocking keyboard input for the sandbox.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last
// press. Terminals deliver repeats, not press/release, so holds are
// reconstructed from repeat timing.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state. WASD steers the player
// body, the arrow keys move the spawn cursor.
type Input struct {
	Quit        bool
	PlayerLeft  bool
	PlayerRight bool
	PlayerUp    bool
	PlayerDown  bool
	CursorLeft  bool
	CursorRight bool
	CursorUp    bool
	CursorDown  bool
	Spawn       bool // space: one box at the cursor
	Burst       bool // b: ten boxes at the cursor
	Gizmos      bool // g: toggle hitbox/contact overlay
	Reset       bool // r: rebuild the scene
	Pause       bool // p: freeze the simulation
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit        time.Time
	playerLeft  time.Time
	playerRight time.Time
	playerUp    time.Time
	playerDown  time.Time
	cursorLeft  time.Time
	cursorRight time.Time
	cursorUp    time.Time
	cursorDown  time.Time
	spawn       time.Time
	burst       time.Time
	gizmos      time.Time
	reset       time.Time
	pause       time.Time
}

// Stream delivers input bytes via a channel and tracks key state so
// simultaneous holds (steering while spawning) are detected.
type Stream struct {
	ch    chan byte
	state keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The goroutine exits when the reader fails (session closed).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking),
// handling CSI escape sequences for the arrow keys, and reports which keys
// are currently held.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte

	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				goto parse
			}
			buf = append(buf, b)
		default:
			goto parse
		}
	}

parse:
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.cursorUp = now
				i += 2
				continue
			case 'B':
				s.state.cursorDown = now
				i += 2
				continue
			case 'C':
				s.state.cursorRight = now
				i += 2
				continue
			case 'D':
				s.state.cursorLeft = now
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool { return now.Sub(t) < keyHoldDuration }
	return Input{
		Quit:        held(s.state.quit),
		PlayerLeft:  held(s.state.playerLeft),
		PlayerRight: held(s.state.playerRight),
		PlayerUp:    held(s.state.playerUp),
		PlayerDown:  held(s.state.playerDown),
		CursorLeft:  held(s.state.cursorLeft),
		CursorRight: held(s.state.cursorRight),
		CursorUp:    held(s.state.cursorUp),
		CursorDown:  held(s.state.cursorDown),
		Spawn:       held(s.state.spawn),
		Burst:       held(s.state.burst),
		Gizmos:      held(s.state.gizmos),
		Reset:       held(s.state.reset),
		Pause:       held(s.state.pause),
	}
}

func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03': // ctrl-c
		state.quit = now
	case 'a', 'A':
		state.playerLeft = now
	case 'd', 'D':
		state.playerRight = now
	case 'w', 'W':
		state.playerUp = now
	case 's', 'S':
		state.playerDown = now
	case ' ':
		state.spawn = now
	case 'b', 'B':
		state.burst = now
	case 'g', 'G':
		state.gizmos = now
	case 'r', 'R':
		state.reset = now
	case 'p', 'P':
		state.pause = now
	}
}
