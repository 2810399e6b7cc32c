package physics

import (
	"math"
	"sort"

	"github.com/tomz197/roundbox/internal/geom"
)

// DefaultCellSize suits bodies a few units across; tune it to the median
// body size via Params.
const DefaultCellSize = 8.0

// DefaultDenseCellThreshold is the cell occupancy above which pair
// generation switches from all-pairs to sort-and-sweep inside the cell.
const DefaultDenseCellThreshold = 16

// Pair is a broad-phase candidate: two bodies whose bounding boxes overlap.
// A is always the smaller id.
type Pair struct {
	A, B BodyID
}

type cellCoord struct {
	X, Y int32
}

// gridEntry caches a body's bounding box so pair filtering does not chase
// body pointers.
type gridEntry struct {
	id       BodyID
	min, max geom.Vec2
}

// Grid is a sparse uniform hash grid over an unbounded plane. Bodies are
// re-inserted every tick into every cell their bounding box overlaps, and
// candidate pairs are collected from cell cohabitants, deduplicated across
// cells.
//
// A uniform grid degrades toward all-pairs when many bodies share one cell.
// To bound that, cells whose occupancy exceeds denseThresh are swept along
// x instead of checked pairwise, so a crowded cell costs
// O(k log k + output) rather than O(k²) when its bodies are spread out.
type Grid struct {
	cellSize    float64
	invCellSize float64
	denseThresh int
	cells       map[cellCoord][]gridEntry
	seen        map[uint64]struct{}
}

// NewGrid creates a grid with the given cell size and dense-cell threshold.
// Non-positive arguments fall back to the defaults.
func NewGrid(cellSize float64, denseThreshold int) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	if denseThreshold <= 0 {
		denseThreshold = DefaultDenseCellThreshold
	}
	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		denseThresh: denseThreshold,
		cells:       make(map[cellCoord][]gridEntry),
		seen:        make(map[uint64]struct{}),
	}
}

// Rebuild clears the grid and re-inserts every body. Cell slices are kept
// and truncated so steady-state rebuilds do not allocate.
func (g *Grid) Rebuild(bodies []*Body) {
	for key, entries := range g.cells {
		if len(entries) == 0 {
			// Cells that stayed empty a full tick are released so the
			// map does not grow forever as bodies roam.
			delete(g.cells, key)
			continue
		}
		g.cells[key] = entries[:0]
	}

	for _, b := range bodies {
		min, max := b.Bounds()
		entry := gridEntry{id: b.id, min: min, max: max}

		minX := int32(math.Floor(min.X * g.invCellSize))
		maxX := int32(math.Floor(max.X * g.invCellSize))
		minY := int32(math.Floor(min.Y * g.invCellSize))
		maxY := int32(math.Floor(max.Y * g.invCellSize))

		for cy := minY; cy <= maxY; cy++ {
			for cx := minX; cx <= maxX; cx++ {
				key := cellCoord{X: cx, Y: cy}
				g.cells[key] = append(g.cells[key], entry)
			}
		}
	}
}

// Pairs appends every candidate pair to out and returns it. The result
// contains each pair at most once with the smaller id first, and is a
// superset of the truly colliding pairs: bounding boxes overlapping in a
// shared cell, nothing missed, false positives left to the narrow phase.
// The order of the returned pairs is unspecified.
func (g *Grid) Pairs(out []Pair) []Pair {
	clear(g.seen)

	for _, entries := range g.cells {
		if len(entries) < 2 {
			continue
		}
		if len(entries) > g.denseThresh {
			out = g.sweepCell(entries, out)
			continue
		}
		for i := 0; i < len(entries); i++ {
			for j := i + 1; j < len(entries); j++ {
				out = g.emit(entries[i], entries[j], out)
			}
		}
	}
	return out
}

// sweepCell sorts a crowded cell's entries by min x and only tests pairs
// whose x extents overlap.
func (g *Grid) sweepCell(entries []gridEntry, out []Pair) []Pair {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].min.X != entries[j].min.X {
			return entries[i].min.X < entries[j].min.X
		}
		return entries[i].id < entries[j].id
	})

	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[j].min.X > entries[i].max.X {
				break
			}
			out = g.emit(entries[i], entries[j], out)
		}
	}
	return out
}

// emit appends the pair if the bounding boxes overlap and it has not been
// reported from another shared cell.
func (g *Grid) emit(a, b gridEntry, out []Pair) []Pair {
	if a.min.X > b.max.X || b.min.X > a.max.X ||
		a.min.Y > b.max.Y || b.min.Y > a.max.Y {
		return out
	}

	lo, hi := a.id, b.id
	if lo > hi {
		lo, hi = hi, lo
	}
	key := uint64(lo)<<32 | uint64(hi)
	if _, dup := g.seen[key]; dup {
		return out
	}
	g.seen[key] = struct{}{}
	return append(out, Pair{A: lo, B: hi})
}
