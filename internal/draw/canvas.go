// Package draw renders the sandbox to a terminal: a half-block pixel canvas
// with logical-to-terminal scaling, plus hitbox and contact gizmo shapes.
package draw

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Point is a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Half-block characters used by the canvas. Each terminal row holds two
// vertically stacked pixels.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block
// characters. Logical coordinates are scaled to the current terminal size,
// so the arena keeps its aspect regardless of window dimensions.
type Canvas struct {
	termWidth      int    // terminal columns
	termHeight     int    // terminal rows
	subPixelHeight int    // termHeight * 2
	pixels         []bool // flat: [y*termWidth + x]

	logicalWidth  float64
	logicalHeight float64 // in sub-pixels
	scaleX        float64
	scaleY        float64

	// Centering offsets when the terminal exceeds the render area,
	// 0-based terminal columns/rows to skip.
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
}

// NewCanvas creates a canvas mapping the logical space onto the given
// terminal dimensions.
func NewCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{logicalWidth: logicalWidth, logicalHeight: logicalHeight}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions, keeping the
// logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]bool, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset used to center the render area.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the centering column offset.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the centering row offset.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the terminal column count the canvas renders into.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the terminal row count the canvas renders into.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all pixels.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// setPixel sets a pixel at terminal sub-pixel coordinates.
func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// Set sets a pixel at logical coordinates.
func (c *Canvas) Set(p Point) {
	c.setPixel(int(math.Round(p.X*c.scaleX)), int(math.Round(p.Y*c.scaleY)))
}

// DrawLine draws a line between two logical points using Bresenham's
// algorithm in pixel space.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawArc plots a circular arc centered at (cx, cy) with the given logical
// radius from angle a0 to a1 (radians, counterclockwise). Sampling density
// follows the pixel scale so the arc stays gap-free.
func (c *Canvas) DrawArc(cx, cy, r, a0, a1 float64) {
	if r <= 0 {
		c.Set(Point{X: cx, Y: cy})
		return
	}
	// Arc length in pixels along the denser axis decides the step count.
	steps := int(math.Ceil((a1 - a0) * r * math.Max(c.scaleX, c.scaleY) * 2))
	if steps < 3 {
		steps = 3
	}
	for i := 0; i <= steps; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(steps)
		c.Set(Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
}

// maxChunkSize is the maximum bytes written at once, sized near typical MTU
// for smooth flow over SSH.
const maxChunkSize = 1400

// Render writes the canvas to w using half-block characters. Empty cells
// are skipped, so the caller should clear the screen region first.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 12)

	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			var ch rune
			switch {
			case top && bottom:
				ch = BlockFull
			case top:
				ch = BlockUpperHalf
			case bottom:
				ch = BlockLowerHalf
			default:
				continue
			}

			fmt.Fprintf(&c.renderBuf, "\033[%d;%dH%c", row+1+c.offsetRow, col+1+c.offsetCol, ch)
		}
	}

	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

// FitTerminal sizes a render area for a terminal of the given dimensions,
// keeping the logical aspect ratio in half-block pixels (one column is one
// pixel wide, one row two pixels tall) and centering the area when the
// terminal is larger than needed. Returns the canvas dimensions and the
// column/row offsets of its top-left corner, for Canvas.SetOffset and
// ChunkWriter.SetOffset.
func FitTerminal(termWidth, termHeight int, logicalWidth, logicalHeight float64) (cols, rows, offsetCol, offsetRow int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}

	scale := float64(termWidth) / logicalWidth
	if s := float64(2*termHeight) / logicalHeight; s < scale {
		scale = s
	}

	cols = int(logicalWidth * scale)
	rows = int(logicalHeight * scale / 2)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols > termWidth {
		cols = termWidth
	}
	if rows > termHeight {
		rows = termHeight
	}
	return cols, rows, (termWidth - cols) / 2, (termHeight - rows) / 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
