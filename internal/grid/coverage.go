package grid

import "math"

// CoverageReport describes how far the generated tiles reach on screen
type CoverageReport struct {
	TilesGenerated int
	MinX, MaxX     float64
	MinY, MaxY     float64
	FullyCovered   bool
}

// Coverage generates the tiles for vp and reports whether their screen
// rectangles span the whole viewport.
func (e *Engine) Coverage(vp Viewport) CoverageReport {
	s := e.snapshot()
	tiles := generateTiles(s, e.lod, vp)
	if len(tiles) == 0 {
		return CoverageReport{}
	}

	lay := layoutFor(s)
	zoom := s.EffectiveZoom()
	rep := CoverageReport{
		TilesGenerated: len(tiles),
		MinX:           math.Inf(1),
		MinY:           math.Inf(1),
		MaxX:           math.Inf(-1),
		MaxY:           math.Inf(-1),
	}
	for _, t := range tiles {
		box := lay.box(t.Index)
		rep.MinX = min(rep.MinX, t.Screen.X)
		rep.MinY = min(rep.MinY, t.Screen.Y)
		rep.MaxX = max(rep.MaxX, t.Screen.X+box.Width*zoom)
		rep.MaxY = max(rep.MaxY, t.Screen.Y+box.Height*zoom)
	}
	rep.FullyCovered = rep.MinX <= 0 && rep.MaxX >= vp.Width && rep.MinY <= 0 && rep.MaxY >= vp.Height
	return rep
}
