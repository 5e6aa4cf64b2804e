package grid

import "strconv"

// GenerateTiles returns the tiles to draw for the viewport plus a zoom-dependent
// margin so fast panning does not expose gaps before the next frame. Tiles come
// out row by row in index order. Nothing is returned below the LOD floor, and
// the tier caps bound the work at any zoom.
func (e *Engine) GenerateTiles(vp Viewport) []Tile {
	return generateTiles(e.snapshot(), e.lod, vp)
}

func generateTiles(s Settings, p LODPolicy, vp Viewport) []Tile {
	if vp.Empty() {
		return nil
	}
	zoom := s.EffectiveZoom()
	tier, ok := p.TierFor(zoom)
	if !ok {
		return nil
	}
	effectiveTileSize := s.TileSize * zoom
	if effectiveTileSize < tier.MinTilePixels {
		return nil
	}

	lay := layoutFor(s)
	center := viewCenter(s)

	// padded world rectangle -> coarse index window
	halfW := vp.Width / zoom * tier.Padding / 2
	halfH := vp.Height / zoom * tier.Padding / 2
	area := BoundingBox{X: center.X - halfW, Y: center.Y - halfH, Width: 2 * halfW, Height: 2 * halfH}
	b := capBounds(lay.indexBounds(area), lay.index(center), tier.MaxTilesPerAxis)

	visible := BoundingBox{Width: vp.Width, Height: vp.Height}.Expand(p.margin(tier, effectiveTileSize))

	tiles := make([]Tile, 0, min(tier.MaxTiles, max(b.Width()*b.Height(), 0)))
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			idx := TileIndex{X: x, Y: y}
			box := lay.box(idx)
			corner := WorldPoint{X: box.X, Y: box.Y}
			sp := gridWorldToScreen(s, corner, vp)
			onScreen := BoundingBox{X: sp.X, Y: sp.Y, Width: box.Width * zoom, Height: box.Height * zoom}
			if !visible.Intersects(onScreen) {
				continue
			}
			tiles = append(tiles, Tile{
				Index:  idx,
				World:  corner,
				Center: lay.center(idx),
				Screen: sp,
				Key:    idx.Key(),
			})
			if len(tiles) >= tier.MaxTiles {
				return tiles
			}
		}
	}
	return tiles
}

// VisibleBounds returns the index range covering the viewport, widened by the
// policy's bounds padding on every side.
func (e *Engine) VisibleBounds(vp Viewport) Bounds {
	return visibleBounds(e.snapshot(), e.lod, vp)
}

func visibleBounds(s Settings, p LODPolicy, vp Viewport) Bounds {
	zoom := s.EffectiveZoom()
	center := viewCenter(s)
	w := max(vp.Width, 0) / zoom
	h := max(vp.Height, 0) / zoom
	area := BoundingBox{X: center.X - w/2, Y: center.Y - h/2, Width: w, Height: h}

	b := layoutFor(s).indexBounds(area)
	b.MinX -= p.BoundsPadding
	b.MinY -= p.BoundsPadding
	b.MaxX += p.BoundsPadding
	b.MaxY += p.BoundsPadding
	return b
}

// GenerateGridLines returns the full-viewport lines of a square grid. Hex grids
// have no straight grid lines and get none; draw their tile outlines instead.
func (e *Engine) GenerateGridLines(vp Viewport) []GridLine {
	s := e.snapshot()
	if s.Topology != Square || vp.Empty() {
		return nil
	}
	zoom := s.EffectiveZoom()
	tier, ok := e.lod.TierFor(zoom)
	if !ok || s.TileSize*zoom < tier.MinTilePixels {
		return nil
	}

	lay := layoutFor(s)
	b := capBounds(visibleBounds(s, e.lod, vp), lay.index(viewCenter(s)), e.lod.MaxLinesPerAxis-1)

	lines := make([]GridLine, 0, b.Width()+b.Height()+2)
	for x := b.MinX; x <= b.MaxX+1; x++ {
		wx := lay.box(TileIndex{X: x}).X
		sp := gridWorldToScreen(s, WorldPoint{X: wx}, vp)
		lines = append(lines, GridLine{
			Orientation: Vertical,
			Index:       x,
			Pos:         sp.X,
			From:        0,
			To:          vp.Height,
			Key:         "v-" + strconv.Itoa(x),
		})
	}
	for y := b.MinY; y <= b.MaxY+1; y++ {
		wy := lay.box(TileIndex{Y: y}).Y
		sp := gridWorldToScreen(s, WorldPoint{Y: wy}, vp)
		lines = append(lines, GridLine{
			Orientation: Horizontal,
			Index:       y,
			Pos:         sp.Y,
			From:        0,
			To:          vp.Width,
			Key:         "h-" + strconv.Itoa(y),
		})
	}
	return lines
}
