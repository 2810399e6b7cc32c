package sandbox

import (
	"github.com/tomz197/roundbox/internal/draw"
)

const (
	cursorSize   = 1.0
	contactSize  = 0.8
	normalLength = 3.0
)

// renderFrame draws one frame: body outlines, optional contact gizmos, the
// spawn cursor, and the HUD line below the canvas. The whole frame goes
// through the chunk writer so output stays in MTU-sized pieces.
func renderFrame(s *State, canvas *draw.Canvas, cw *draw.ChunkWriter) {
	cw.WriteString("\033[2J")
	canvas.Clear()

	for _, id := range s.World.Bodies() {
		info, ok := s.World.Inspect(id)
		if !ok {
			continue
		}
		sh := info.Shape
		canvas.RoundedRectOutline(sh.Center.X, sh.Center.Y, sh.Half.X, sh.Half.Y, sh.Radius)
	}

	if s.Gizmos {
		for _, c := range s.World.Contacts() {
			canvas.Marker(draw.Point{X: c.Point.X, Y: c.Point.Y}, contactSize)
			canvas.Ray(draw.Point{X: c.Point.X, Y: c.Point.Y}, c.Normal.X, c.Normal.Y, normalLength)
		}
	}

	canvas.Marker(draw.Point{X: s.Cursor.X, Y: s.Cursor.Y}, cursorSize)

	canvas.Render(cw)

	// The HUD sits under the centered render area and may spill into the
	// terminal's right margin, which is as wide as the left offset.
	hudWidth := canvas.TerminalWidth() + canvas.OffsetCol()
	cw.WriteAt(1, canvas.TerminalHeight()+1, renderHUD(s, hudWidth))
}
