package grid

import "sort"

// MaxRegionHexes bounds the size of a region that will be outlined
const MaxRegionHexes = 1 << 16

// HexRegion is a set of hexes whose outline can be traced
type HexRegion struct {
	cells map[TileIndex]struct{}
}

// NewHexRegion creates a region holding the given hexes
func NewHexRegion(hexes ...TileIndex) *HexRegion {
	r := &HexRegion{cells: make(map[TileIndex]struct{}, len(hexes))}
	for _, h := range hexes {
		r.Add(h)
	}
	return r
}

// RegionFromRange fills a region with every hex of an axial rectangle. It
// returns false when the range holds more than MaxRegionHexes hexes.
func RegionFromRange(rng HexRange) (*HexRegion, bool) {
	rng = rng.Normalize()
	w := rng.MaxQ - rng.MinQ + 1
	h := rng.MaxR - rng.MinR + 1
	if w <= 0 || h <= 0 || w > MaxRegionHexes || h > MaxRegionHexes/w {
		return nil, false
	}
	r := &HexRegion{cells: make(map[TileIndex]struct{}, w*h)}
	for q := rng.MinQ; q <= rng.MaxQ; q++ {
		for rr := rng.MinR; rr <= rng.MaxR; rr++ {
			r.cells[TileIndex{X: q, Y: rr}] = struct{}{}
		}
	}
	return r, true
}

// Add puts a hex into the region
func (r *HexRegion) Add(h TileIndex) {
	r.cells[h] = struct{}{}
}

// Contains reports region membership
func (r *HexRegion) Contains(h TileIndex) bool {
	_, ok := r.cells[h]
	return ok
}

// Len returns the number of hexes in the region
func (r *HexRegion) Len() int {
	return len(r.cells)
}

// sorted lists the hexes by row then column
func (r *HexRegion) sorted() []TileIndex {
	out := make([]TileIndex, 0, len(r.cells))
	for h := range r.cells {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// BoundaryEdges returns every side separating a region hex from a hex outside
// the region, oriented clockwise around the region hex.
func (r *HexRegion) BoundaryEdges(l HexLayout) []HexEdge {
	sides := r.boundarySides()
	edges := make([]HexEdge, len(sides))
	for i, sd := range sides {
		edges[i] = sd.edge(l)
	}
	return edges
}

// boundarySide is one side of a region hex, named by the hex and the clockwise
// corner pair it runs between.
type boundarySide struct {
	hex        TileIndex
	start, end int
}

func (sd boundarySide) edge(l HexLayout) HexEdge {
	c := l.Corners(sd.hex)
	return newHexEdge(c[sd.start], c[sd.end])
}

func (r *HexRegion) boundarySides() []boundarySide {
	var sides []boundarySide
	for _, h := range r.sorted() {
		for k, n := range HexNeighbors(h) {
			if r.Contains(n) {
				continue
			}
			pair := hexEdgeCorners[k]
			sides = append(sides, boundarySide{hex: h, start: pair[0], end: pair[1]})
		}
	}
	return sides
}

// latticeCorner names a hex corner exactly: x counts half hex widths and y
// counts half radii from the layout origin.
type latticeCorner struct{ x, y int }

// cornerSteps are the offsets of the six corners of HexCorners in lattice units
var cornerSteps = [6]latticeCorner{{0, -2}, {1, -1}, {1, 1}, {0, 2}, {-1, 1}, {-1, -1}}

func cornerKey(h TileIndex, corner int) latticeCorner {
	d := cornerSteps[corner]
	return latticeCorner{x: 2*h.X + h.Y + d.x, y: 3*h.Y + d.y}
}

// Outlines walks the boundary edges end to start and returns one closed
// polygon (first point repeated) per loop. The outer boundary runs clockwise
// on screen; holes run the other way.
func (r *HexRegion) Outlines(l HexLayout) [][]WorldPoint {
	if r == nil || len(r.cells) == 0 || len(r.cells) > MaxRegionHexes {
		return nil
	}
	sides := r.boundarySides()

	byStart := make(map[latticeCorner][]int, len(sides))
	for i, sd := range sides {
		k := cornerKey(sd.hex, sd.start)
		byStart[k] = append(byStart[k], i)
	}

	used := make([]bool, len(sides))
	var loops [][]WorldPoint
	for i := range sides {
		if used[i] {
			continue
		}
		used[i] = true
		origin := cornerKey(sides[i].hex, sides[i].start)
		first := sides[i].edge(l)
		loop := []WorldPoint{first.Start}
		cur := i
		for {
			at := cornerKey(sides[cur].hex, sides[cur].end)
			if at == origin {
				break
			}
			loop = append(loop, sides[cur].edge(l).End)
			next := -1
			for _, j := range byStart[at] {
				if !used[j] {
					next = j
					break
				}
			}
			// every corner has as many boundary sides leaving as arriving
			if next < 0 {
				break
			}
			used[next] = true
			cur = next
		}
		loops = append(loops, append(loop, loop[0]))
	}
	return loops
}

// Outline returns the longest loop, which for a connected region without holes
// is its whole boundary.
func (r *HexRegion) Outline(l HexLayout) []WorldPoint {
	var best []WorldPoint
	for _, loop := range r.Outlines(l) {
		if len(loop) > len(best) {
			best = loop
		}
	}
	return best
}

// HexDistance returns the step distance between two hexes
func (e *Engine) HexDistance(a, b TileIndex) int {
	e.mustBeReady()
	return HexDistance(a, b)
}

// HexNeighbors returns the six hexes adjacent to h
func (e *Engine) HexNeighbors(h TileIndex) [6]TileIndex {
	e.mustBeReady()
	return HexNeighbors(h)
}

// HexEdge returns the side of a facing b; ok is false when the hexes are not
// adjacent and the edge is the nearest-side approximation.
func (e *Engine) HexEdge(a, b TileIndex) (HexEdge, bool) {
	return e.HexLayout().Edge(a, b)
}

// HexBoundary outlines an axial rectangle of hexes as a closed polygon in world
// space. Ranges larger than MaxRegionHexes produce nil.
func (e *Engine) HexBoundary(rng HexRange) []WorldPoint {
	l := e.HexLayout()
	region, ok := RegionFromRange(rng)
	if !ok {
		return nil
	}
	return region.Outline(l)
}
