package geom

// RoundedRect is an axis-aligned rectangle whose four corners are replaced
// by circular arcs of Radius. Equivalently, the Minkowski sum of the inner
// rectangle (Half shrunk by Radius per axis) and a disc of Radius.
// Half is the half extent of the full rectangle, so the shape's outer
// bounding box is Center ± Half regardless of Radius.
type RoundedRect struct {
	Center Vec2
	Half   Vec2
	Radius float64
}

// Bounds returns the axis-aligned bounding box of the shape.
func (r RoundedRect) Bounds() (min, max Vec2) {
	return r.Center.Sub(r.Half), r.Center.Add(r.Half)
}

// SignedDistance returns the signed distance between two rounded rectangles
// and the unit separation normal pointing from a toward b. A negative
// distance means the shapes overlap by that depth along the normal.
//
// The shapes are treated as inner rectangles inflated by their corner radii:
// the center offset is clamped against the summed inner half extents, and
// the summed radii are subtracted from the remaining distance. One formula
// covers edge-edge, edge-corner and corner-corner configurations.
func SignedDistance(a, b RoundedRect) (float64, Vec2) {
	offset := b.Center.Sub(a.Center)
	absOff := offset.Abs()
	half := a.Half.Add(b.Half)
	radii := a.Radius + b.Radius

	// Center distance beyond the summed inner rectangles, per axis.
	d := absOff.Sub(half.Sub(Splat(radii)))

	if d.X > 0 || d.Y > 0 {
		// Outside the inner rectangle sum on at least one axis: the
		// closest features are an edge or a rounded corner.
		clamped := Vec2{X: maxf(d.X, 0), Y: maxf(d.Y, 0)}
		sep := clamped.Len()
		n := clamped.Scale(1 / sep)
		n = n.Mul(V(signOf(offset.X), signOf(offset.Y)))
		return sep - radii, n
	}

	// Inner rectangles overlap: separate along the axis of least overlap
	// of the full shapes. Ties (including exactly coincident centers)
	// resolve to the x axis, pushing b toward +x when the offset is zero.
	overlap := half.Sub(absOff)
	if overlap.X <= overlap.Y {
		return -overlap.X, Vec2{X: signOf(offset.X)}
	}
	return -overlap.Y, Vec2{Y: signOf(offset.Y)}
}

// signOf returns -1 for negative values and +1 otherwise. The zero case
// maps to +1 so degenerate configurations resolve deterministically.
func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
