package grid

import (
	"math"

	"tilegrid/internal/mathutil"
)

var sqrt3 = math.Sqrt(3)

// HexLayout places axial hexes on the world plane. Width is the distance
// between the two vertical flat sides; corners point straight up and down.
type HexLayout struct {
	Width   float64
	OffsetX float64
	OffsetY float64
}

// Radius is the centre-to-corner distance
func (l HexLayout) Radius() float64 {
	return l.Width / sqrt3
}

// Height is the corner-to-corner vertical extent
func (l HexLayout) Height() float64 {
	return 2 * l.Radius()
}

// ToWorld returns the centre of hex (q, r)
func (l HexLayout) ToWorld(h TileIndex) WorldPoint {
	r := l.Radius()
	q, rr := float64(h.X), float64(h.Y)
	return WorldPoint{
		X: r*(sqrt3*q+sqrt3/2*rr) + l.OffsetX,
		Y: r*(1.5*rr) + l.OffsetY,
	}
}

// Fractional inverts ToWorld without rounding
func (l HexLayout) Fractional(p WorldPoint) (q, r float64) {
	rad := l.Radius()
	x := p.X - l.OffsetX
	y := p.Y - l.OffsetY
	q = (sqrt3/3*x - y/3) / rad
	r = (2.0 / 3 * y) / rad
	return q, r
}

// FromWorld returns the hex containing p
func (l HexLayout) FromWorld(p WorldPoint) TileIndex {
	return HexRound(l.Fractional(p))
}

// Box returns the axis-aligned bounding box of a hex
func (l HexLayout) Box(h TileIndex) BoundingBox {
	c := l.ToWorld(h)
	return BoundingBox{
		X:      c.X - l.Width/2,
		Y:      c.Y - l.Radius(),
		Width:  l.Width,
		Height: l.Height(),
	}
}

// Corners returns the six corners of hex h
func (l HexLayout) Corners(h TileIndex) [6]WorldPoint {
	return HexCorners(l.ToWorld(h), l.Radius())
}

// CubeRound rounds fractional cube coordinates to the nearest hex. The
// component with the largest rounding error is recomputed from the other two so
// that q+r+s == 0 holds exactly.
func CubeRound(q, r, s float64) (int, int, int) {
	rq, rr, rs := math.Round(q), math.Round(r), math.Round(s)
	dq, dr, ds := math.Abs(rq-q), math.Abs(rr-r), math.Abs(rs-s)

	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	default:
		rs = -rq - rr
	}
	return int(rq), int(rr), int(rs)
}

// HexRound rounds fractional axial coordinates
func HexRound(q, r float64) TileIndex {
	rq, rr, _ := CubeRound(q, r, -q-r)
	return TileIndex{X: rq, Y: rr}
}

// HexDistance is the number of steps between two hexes
func HexDistance(a, b TileIndex) int {
	dq := a.X - b.X
	dr := a.Y - b.Y
	ds := -dq - dr
	return (mathutil.IntAbs(dq) + mathutil.IntAbs(dr) + mathutil.IntAbs(ds)) / 2
}

// hexDirections are the six axial neighbour offsets
var hexDirections = [6]TileIndex{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 1, Y: -1},
	{X: -1, Y: 1},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// HexNeighbors returns the six adjacent hexes
func HexNeighbors(h TileIndex) [6]TileIndex {
	var out [6]TileIndex
	for i, d := range hexDirections {
		out[i] = h.Add(d)
	}
	return out
}

// HexCorners returns corners at -90°+60°*i, starting with the top corner and
// running clockwise on screen.
func HexCorners(center WorldPoint, radius float64) [6]WorldPoint {
	var out [6]WorldPoint
	for i := range out {
		angle := (-90 + 60*float64(i)) * math.Pi / 180
		out[i] = WorldPoint{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		}
	}
	return out
}

// hexEdgeCorners maps each entry of hexDirections to the pair of corner
// indices (clockwise order) forming the side shared with that neighbour.
var hexEdgeCorners = deriveEdgeCorners()

func deriveEdgeCorners() [6][2]int {
	unit := HexLayout{Width: sqrt3}
	origin := unit.ToWorld(TileIndex{})
	corners := HexCorners(origin, unit.Radius())

	var table [6][2]int
	for d, dir := range hexDirections {
		n := unit.ToWorld(dir)
		between := midpoint(origin, n)
		best, bestDist := 0, math.Inf(1)
		for i := range corners {
			m := midpoint(corners[i], corners[(i+1)%6])
			if dd := dist2(m, between); dd < bestDist {
				best, bestDist = i, dd
			}
		}
		table[d] = [2]int{best, (best + 1) % 6}
	}
	return table
}

func midpoint(a, b WorldPoint) WorldPoint {
	return WorldPoint{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func dist2(a, b WorldPoint) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func newHexEdge(start, end WorldPoint) HexEdge {
	return HexEdge{Start: start, End: end, Mid: midpoint(start, end)}
}

// Edge returns the side of a facing b. For adjacent hexes the result is exact
// and ok is true. Otherwise the side of a whose midpoint lies closest to a side
// of b is returned with ok false; that is an approximation only.
func (l HexLayout) Edge(a, b TileIndex) (edge HexEdge, ok bool) {
	ca := l.Corners(a)
	d := TileIndex{X: b.X - a.X, Y: b.Y - a.Y}
	for k, dir := range hexDirections {
		if dir == d {
			pair := hexEdgeCorners[k]
			return newHexEdge(ca[pair[0]], ca[pair[1]]), true
		}
	}

	cb := l.Corners(b)
	best := math.Inf(1)
	for i := range ca {
		ma := midpoint(ca[i], ca[(i+1)%6])
		for j := range cb {
			mb := midpoint(cb[j], cb[(j+1)%6])
			if dd := dist2(ma, mb); dd < best {
				best = dd
				edge = newHexEdge(ca[i], ca[(i+1)%6])
			}
		}
	}
	return edge, false
}
