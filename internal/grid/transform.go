package grid

// The camera always maps to the centre of the viewport.

func worldToScreen(s Settings, w WorldPoint, vp Viewport) ScreenPoint {
	z := s.EffectiveZoom()
	return ScreenPoint{
		X: (w.X-s.CameraX)*z + vp.Width/2,
		Y: (w.Y-s.CameraY)*z + vp.Height/2,
	}
}

func screenToWorld(s Settings, p ScreenPoint, vp Viewport) WorldPoint {
	z := s.EffectiveZoom()
	return WorldPoint{
		X: (p.X-vp.Width/2)/z + s.CameraX,
		Y: (p.Y-vp.Height/2)/z + s.CameraY,
	}
}

func gridWorldToScreen(s Settings, w WorldPoint, vp Viewport) ScreenPoint {
	if !s.FollowsBackground {
		return worldToScreen(s, w, vp)
	}
	z := s.EffectiveZoom()
	return ScreenPoint{
		X: w.X*z + vp.Width/2,
		Y: w.Y*z + vp.Height/2,
	}
}

func screenToGridWorld(s Settings, p ScreenPoint, vp Viewport) WorldPoint {
	if !s.FollowsBackground {
		return screenToWorld(s, p, vp)
	}
	z := s.EffectiveZoom()
	return WorldPoint{
		X: (p.X - vp.Width/2) / z,
		Y: (p.Y - vp.Height/2) / z,
	}
}

// viewCenter is the world point drawn at the centre of the viewport by the
// grid transforms.
func viewCenter(s Settings) WorldPoint {
	if s.FollowsBackground {
		return WorldPoint{}
	}
	return WorldPoint{X: s.CameraX, Y: s.CameraY}
}

// WorldToScreen projects a world point into the viewport
func (e *Engine) WorldToScreen(w WorldPoint, vp Viewport) ScreenPoint {
	return worldToScreen(e.snapshot(), w, vp)
}

// ScreenToWorld is the exact inverse of WorldToScreen
func (e *Engine) ScreenToWorld(p ScreenPoint, vp Viewport) WorldPoint {
	return screenToWorld(e.snapshot(), p, vp)
}

// GridWorldToScreen projects a point of the grid layer. When the grid follows
// the background the camera is not subtracted; otherwise it equals WorldToScreen.
func (e *Engine) GridWorldToScreen(w WorldPoint, vp Viewport) ScreenPoint {
	return gridWorldToScreen(e.snapshot(), w, vp)
}

// ScreenToGridWorld is the inverse of GridWorldToScreen
func (e *Engine) ScreenToGridWorld(p ScreenPoint, vp Viewport) WorldPoint {
	return screenToGridWorld(e.snapshot(), p, vp)
}

// WorldToGrid returns the index of the tile containing w
func (e *Engine) WorldToGrid(w WorldPoint) TileIndex {
	return layoutFor(e.snapshot()).index(w)
}

// GridToWorld returns the centre of a tile
func (e *Engine) GridToWorld(i TileIndex) WorldPoint {
	return layoutFor(e.snapshot()).center(i)
}

// GridToWorldCorner returns the top-left of the tile's bounding box
func (e *Engine) GridToWorldCorner(i TileIndex) WorldPoint {
	b := layoutFor(e.snapshot()).box(i)
	return WorldPoint{X: b.X, Y: b.Y}
}

// TileBox returns the world-space bounding box of a tile
func (e *Engine) TileBox(i TileIndex) BoundingBox {
	return layoutFor(e.snapshot()).box(i)
}

// SnapToGrid moves w onto the anchor of its tile: the top-left corner for
// square grids, the centre for hex grids. Applying it twice changes nothing.
func (e *Engine) SnapToGrid(w WorldPoint) WorldPoint {
	return layoutFor(e.snapshot()).snap(w)
}

// GridFromScreen returns the tile under a viewport pixel
func (e *Engine) GridFromScreen(p ScreenPoint, vp Viewport) TileIndex {
	s := e.snapshot()
	return layoutFor(s).index(screenToGridWorld(s, p, vp))
}
