package draw

import "math"

// RoundedRectOutline draws the outline of an axis-aligned rounded rectangle:
// four straight edges joined by quarter arcs. center and half extents are in
// logical coordinates; radius 0 degenerates to a plain rectangle.
func (c *Canvas) RoundedRectOutline(cx, cy, halfW, halfH, radius float64) {
	if radius > halfW {
		radius = halfW
	}
	if radius > halfH {
		radius = halfH
	}

	left := cx - halfW
	right := cx + halfW
	top := cy - halfH
	bottom := cy + halfH

	// Edges, shortened by the corner radius.
	c.DrawLine(Point{X: left + radius, Y: top}, Point{X: right - radius, Y: top})
	c.DrawLine(Point{X: left + radius, Y: bottom}, Point{X: right - radius, Y: bottom})
	c.DrawLine(Point{X: left, Y: top + radius}, Point{X: left, Y: bottom - radius})
	c.DrawLine(Point{X: right, Y: top + radius}, Point{X: right, Y: bottom - radius})

	if radius <= 0 {
		return
	}

	// Quarter arcs. Y grows downward on the canvas, so angles follow that.
	c.DrawArc(right-radius, top+radius, radius, -math.Pi/2, 0)    // top right
	c.DrawArc(right-radius, bottom-radius, radius, 0, math.Pi/2)  // bottom right
	c.DrawArc(left+radius, bottom-radius, radius, math.Pi/2, math.Pi) // bottom left
	c.DrawArc(left+radius, top+radius, radius, math.Pi, 3*math.Pi/2)  // top left
}

// Marker draws a small cross at a logical point, used for contact points.
func (c *Canvas) Marker(p Point, size float64) {
	c.DrawLine(Point{X: p.X - size, Y: p.Y}, Point{X: p.X + size, Y: p.Y})
	c.DrawLine(Point{X: p.X, Y: p.Y - size}, Point{X: p.X, Y: p.Y + size})
}

// Ray draws a line of the given length from origin along a unit direction,
// used for contact normals.
func (c *Canvas) Ray(origin Point, dirX, dirY, length float64) {
	c.DrawLine(origin, Point{X: origin.X + dirX*length, Y: origin.Y + dirY*length})
}
