// Package camera holds the mutable view state that feeds the grid engine.
// State is used from the ebiten game loop only and is not safe for concurrent
// mutation.
package camera

import (
	"tilegrid/internal/config"
	"tilegrid/internal/grid"
	"tilegrid/internal/mathutil"
)

// fitSlack leaves a border around fitted content
const fitSlack = 0.9

// State is the caller-owned grid configuration: camera position, the two zoom
// factors and the grid layout. It implements grid.Source.
type State struct {
	X, Y float64

	zoomPrimary   float64
	zoomSecondary float64
	minZoom       float64
	maxZoom       float64

	TileSize          float64
	Topology          grid.Topology
	OffsetX, OffsetY  float64
	FollowsBackground bool
}

// NewState seeds the camera and grid layout from the config file
func NewState(cfg *config.Config) *State {
	topo, err := grid.ParseTopology(cfg.Grid.Topology)
	if err != nil {
		topo = grid.Square
	}
	minZoom, maxZoom := cfg.GetZoomLimits()
	s := &State{
		X:                 cfg.Camera.StartX,
		Y:                 cfg.Camera.StartY,
		minZoom:           minZoom,
		maxZoom:           maxZoom,
		TileSize:          cfg.GetTileSize(),
		Topology:          topo,
		OffsetX:           cfg.Grid.OffsetX,
		OffsetY:           cfg.Grid.OffsetY,
		FollowsBackground: cfg.Grid.FollowsBackground,
		zoomSecondary:     1,
	}
	s.SetPrimaryZoom(cfg.Camera.ZoomPrimary)
	s.SetSecondaryZoom(cfg.Camera.ZoomSecondary)
	return s
}

// GridSettings snapshots the state for the engine
func (s *State) GridSettings() grid.Settings {
	return grid.Settings{
		TileSize:          s.TileSize,
		Topology:          s.Topology,
		CameraX:           s.X,
		CameraY:           s.Y,
		ZoomPrimary:       s.zoomPrimary,
		ZoomSecondary:     s.zoomSecondary,
		OffsetX:           s.OffsetX,
		OffsetY:           s.OffsetY,
		FollowsBackground: s.FollowsBackground,
	}
}

func (s *State) ZoomPrimary() float64   { return s.zoomPrimary }
func (s *State) ZoomSecondary() float64 { return s.zoomSecondary }

// EffectiveZoom is the product of both factors
func (s *State) EffectiveZoom() float64 {
	return s.zoomPrimary * s.zoomSecondary
}

// SetPosition moves the camera to a world point
func (s *State) SetPosition(x, y float64) {
	s.X, s.Y = x, y
}

// Pan moves the camera by a screen-space delta. Dragging right by dx pixels
// shows content further left, so the camera moves against the drag.
func (s *State) Pan(dx, dy float64) {
	z := s.EffectiveZoom()
	if z <= 0 {
		return
	}
	s.X -= dx / z
	s.Y -= dy / z
}

// SetPrimaryZoom sets the table-wide factor, then re-clamps the viewer factor
// so the product stays within limits.
func (s *State) SetPrimaryZoom(z float64) {
	s.zoomPrimary = mathutil.Clamp(z, s.minZoom, s.maxZoom)
	s.SetSecondaryZoom(s.zoomSecondary)
}

// SetSecondaryZoom sets the viewer factor, clamped so that the effective zoom
// stays inside [min, max].
func (s *State) SetSecondaryZoom(z float64) {
	s.zoomSecondary = mathutil.Clamp(z, s.minZoom/s.zoomPrimary, s.maxZoom/s.zoomPrimary)
}

// ZoomAt multiplies the viewer factor (or the table factor when primary is
// set) and moves the camera so the world point under the cursor stays put.
func (s *State) ZoomAt(factor float64, p grid.ScreenPoint, vp grid.Viewport, primary bool) {
	before := s.EffectiveZoom()
	dx := p.X - vp.Width/2
	dy := p.Y - vp.Height/2
	wx := s.X + dx/before
	wy := s.Y + dy/before

	if primary {
		s.SetPrimaryZoom(s.zoomPrimary * factor)
	} else {
		s.SetSecondaryZoom(s.zoomSecondary * factor)
	}

	after := s.EffectiveZoom()
	s.X = wx - dx/after
	s.Y = wy - dy/after
}

// CenterOnGrid moves the camera onto the centre of a tile
func (s *State) CenterOnGrid(e *grid.Engine, idx grid.TileIndex) {
	c := e.GridToWorld(idx)
	s.SetPosition(c.X, c.Y)
}

// FitZoom returns the effective zoom at which a content area fills the
// viewport, with a small border, clamped to the zoom limits.
func (s *State) FitZoom(contentW, contentH float64, vp grid.Viewport) float64 {
	if contentW <= 0 || contentH <= 0 || vp.Empty() {
		return s.EffectiveZoom()
	}
	z := min(vp.Width/contentW, vp.Height/contentH) * fitSlack
	return mathutil.Clamp(z, s.minZoom, s.maxZoom)
}

// FitContent centres the camera on a content area anchored at the world
// origin and zooms the viewer factor so it fits.
func (s *State) FitContent(contentW, contentH float64, vp grid.Viewport) {
	z := s.FitZoom(contentW, contentH, vp)
	s.SetSecondaryZoom(z / s.zoomPrimary)
	s.SetPosition(contentW/2, contentH/2)
}

// ToggleTopology switches between square and hex tiles
func (s *State) ToggleTopology() {
	if s.Topology == grid.Hex {
		s.Topology = grid.Square
	} else {
		s.Topology = grid.Hex
	}
}

// ToggleFollowBackground pins or unpins the grid from the background
func (s *State) ToggleFollowBackground() {
	s.FollowsBackground = !s.FollowsBackground
}
