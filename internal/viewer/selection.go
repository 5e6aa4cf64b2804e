package viewer

import (
	"tilegrid/internal/grid"
	"tilegrid/internal/mathutil"
)

// selection is a rectangle of tiles picked with a left-drag
type selection struct {
	active     bool
	start, end grid.TileIndex
}

func (s *selection) begin(idx grid.TileIndex) {
	s.active = true
	s.start, s.end = idx, idx
}

func (s *selection) extend(idx grid.TileIndex) {
	if s.active {
		s.end = idx
	}
}

// outline returns the selection border in screen space as a closed polygon.
// Hex selections follow the region boundary; square ones are the rectangle
// through the outer tile corners.
func (s *selection) outline(e *grid.Engine, vp grid.Viewport) []grid.ScreenPoint {
	if !s.active {
		return nil
	}
	var world []grid.WorldPoint
	if e.Settings().Topology == grid.Hex {
		world = e.HexBoundary(grid.HexRangeBetween(s.start, s.end))
	} else {
		lo := grid.TileIndex{X: min(s.start.X, s.end.X), Y: min(s.start.Y, s.end.Y)}
		hi := grid.TileIndex{X: max(s.start.X, s.end.X) + 1, Y: max(s.start.Y, s.end.Y) + 1}
		a := e.GridToWorldCorner(lo)
		b := e.GridToWorldCorner(hi)
		world = []grid.WorldPoint{{X: a.X, Y: a.Y}, {X: b.X, Y: a.Y}, {X: b.X, Y: b.Y}, {X: a.X, Y: b.Y}, {X: a.X, Y: a.Y}}
	}

	out := make([]grid.ScreenPoint, len(world))
	for i, p := range world {
		out[i] = e.GridWorldToScreen(p, vp)
	}
	return out
}

// size reports the selection extent in tiles
func (s *selection) size() (int, int) {
	if !s.active {
		return 0, 0
	}
	return mathutil.IntAbs(s.end.X-s.start.X) + 1, mathutil.IntAbs(s.end.Y-s.start.Y) + 1
}
