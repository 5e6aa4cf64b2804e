package grid

import (
	"errors"
	"fmt"
	"math"
)

// Fallback values substituted for invalid configuration
const (
	DefaultTileSize = 50.0
	DefaultZoom     = 1.0
)

var (
	ErrNilSource      = errors.New("grid: configuration source is nil")
	ErrNotInitialized = errors.New("grid: engine not initialized, construct it with grid.New")
	ErrInvalidConfig  = errors.New("grid: invalid configuration")
	ErrInvalidPolicy  = errors.New("grid: invalid LOD policy")
)

// Settings is a snapshot of the grid parameters the engine reads on every call.
// ZoomPrimary and ZoomSecondary are owned by different authorities (the table
// owner and the individual viewer) and only ever combined through EffectiveZoom.
type Settings struct {
	TileSize float64
	Topology Topology

	CameraX float64
	CameraY float64

	ZoomPrimary   float64
	ZoomSecondary float64

	OffsetX float64
	OffsetY float64

	// FollowsBackground pins the grid to world space: grid transforms skip the
	// camera subtraction.
	FollowsBackground bool
}

// EffectiveZoom is the single scale factor applied in every pixel transform
func (s Settings) EffectiveZoom() float64 {
	return s.ZoomPrimary * s.ZoomSecondary
}

// Source provides the current settings. The engine never mutates it and
// assumes the returned snapshot is consistent.
type Source interface {
	GridSettings() Settings
}

// SourceFunc adapts a function to the Source interface
type SourceFunc func() Settings

// GridSettings calls f
func (f SourceFunc) GridSettings() Settings { return f() }

// StaticSource is a Source that always returns the same settings
type StaticSource Settings

// GridSettings returns the stored settings
func (s StaticSource) GridSettings() Settings { return Settings(s) }

// Adjustment records one substitution made while sanitising settings
type Adjustment struct {
	Field string
	Got   float64
	Used  float64
}

func (a Adjustment) String() string {
	return fmt.Sprintf("%s=%v replaced with %v", a.Field, a.Got, a.Used)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// sanitize replaces values that would make the transforms divide by zero or
// propagate NaN, and lists what it replaced.
func sanitize(s Settings) (Settings, []Adjustment) {
	var adj []Adjustment

	positive := func(field string, v *float64, fallback float64) {
		if !isFinite(*v) || *v <= 0 {
			adj = append(adj, Adjustment{Field: field, Got: *v, Used: fallback})
			*v = fallback
		}
	}
	finite := func(field string, v *float64) {
		if !isFinite(*v) {
			adj = append(adj, Adjustment{Field: field, Got: *v, Used: 0})
			*v = 0
		}
	}

	positive("tile_size", &s.TileSize, DefaultTileSize)
	positive("zoom_primary", &s.ZoomPrimary, DefaultZoom)
	positive("zoom_secondary", &s.ZoomSecondary, DefaultZoom)
	finite("camera_x", &s.CameraX)
	finite("camera_y", &s.CameraY)
	finite("offset_x", &s.OffsetX)
	finite("offset_y", &s.OffsetY)

	if s.Topology != Square && s.Topology != Hex {
		adj = append(adj, Adjustment{Field: "topology", Got: float64(s.Topology), Used: float64(Square)})
		s.Topology = Square
	}

	return s, adj
}
