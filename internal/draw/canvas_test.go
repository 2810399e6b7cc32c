package draw

import (
	"strings"
	"testing"
)

func TestFitTerminal(t *testing.T) {
	tests := []struct {
		name                     string
		termW, termH             int
		logicalW, logicalH       float64
		cols, rows, offC, offR   int
	}{
		// Height-limited: 40 rows hold 80 sub-pixels, scale 1, the spare
		// 80 columns split evenly.
		{"wide terminal", 200, 40, 120, 80, 120, 40, 40, 0},
		// Width-limited: 120 columns at scale 1 need only 40 of 80 rows.
		{"tall terminal", 120, 80, 120, 80, 120, 40, 0, 20},
		{"exact fit", 120, 40, 120, 80, 120, 40, 0, 0},
		// Degenerate terminals still yield a drawable cell.
		{"tiny terminal", 0, 0, 120, 80, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, offC, offR := FitTerminal(tt.termW, tt.termH, tt.logicalW, tt.logicalH)
			if cols != tt.cols || rows != tt.rows || offC != tt.offC || offR != tt.offR {
				t.Errorf("got cols=%d rows=%d off=(%d,%d), want cols=%d rows=%d off=(%d,%d)",
					cols, rows, offC, offR, tt.cols, tt.rows, tt.offC, tt.offR)
			}
		})
	}
}

func TestFitTerminalKeepsAspect(t *testing.T) {
	cols, rows, _, _ := FitTerminal(500, 300, 120, 80)
	// Half-block pixels: rows count double. Integer truncation allows a
	// small deviation from the exact 120:80 ratio.
	got := float64(cols) / float64(2*rows)
	want := 120.0 / 80.0
	if got < want*0.95 || got > want*1.05 {
		t.Errorf("aspect ratio %v, want close to %v", got, want)
	}
}

func TestRenderAppliesOffset(t *testing.T) {
	c := NewCanvas(4, 2, 4, 4)
	c.SetOffset(10, 5)
	c.Set(Point{X: 0, Y: 0})

	var out strings.Builder
	c.Render(&out)

	// Pixel (0,0) lands in terminal cell (1,1), shifted by the offset.
	if !strings.Contains(out.String(), "\033[6;11H") {
		t.Errorf("offset cursor move missing from render output: %q", out.String())
	}
}
