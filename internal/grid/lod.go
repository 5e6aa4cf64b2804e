package grid

import (
	"fmt"
	"math"

	"tilegrid/internal/config"
)

// LODTier holds the generation limits for zoom levels below BelowZoom.
// The last tier of a policy catches every zoom above the previous boundary.
type LODTier struct {
	BelowZoom       float64
	MinTilePixels   float64
	Padding         float64
	MaxTilesPerAxis int
	MaxTiles        int
	MarginScale     float64
}

// LODPolicy bounds the work done by tile and line generation
type LODPolicy struct {
	// CutoffZoom: below this effective zoom nothing is generated at all.
	CutoffZoom float64
	// BaseMargin is the culling margin in on-screen tile sizes before MarginScale.
	BaseMargin float64
	// BoundsPadding widens VisibleBounds by this many tiles on every side.
	BoundsPadding   int
	MaxLinesPerAxis int
	Tiers           []LODTier
}

// DefaultLODPolicy returns the stock tiers. Padding grows with zoom, caps shrink
// as zoom falls.
func DefaultLODPolicy() LODPolicy {
	return LODPolicy{
		CutoffZoom:      0.03,
		BaseMargin:      1.5,
		BoundsPadding:   20,
		MaxLinesPerAxis: 4096,
		Tiers: []LODTier{
			{BelowZoom: 0.1, MinTilePixels: 8, Padding: 1.5, MaxTilesPerAxis: 50, MaxTiles: 1000, MarginScale: 0.5},
			{BelowZoom: 0.2, MinTilePixels: 4, Padding: 2.0, MaxTilesPerAxis: 100, MaxTiles: 2000, MarginScale: 1.0},
			{BelowZoom: 0.3, MinTilePixels: 2, Padding: 2.0, MaxTilesPerAxis: 100, MaxTiles: 2000, MarginScale: 1.0},
			{BelowZoom: 0.5, MinTilePixels: 1, Padding: 2.5, MaxTilesPerAxis: 200, MaxTiles: 4000, MarginScale: 1.2},
			{BelowZoom: 1.0, MinTilePixels: 1, Padding: 3.0, MaxTilesPerAxis: 300, MaxTiles: 8000, MarginScale: 1.5},
			{BelowZoom: math.Inf(1), MinTilePixels: 1, Padding: 3.5, MaxTilesPerAxis: 400, MaxTiles: 8000, MarginScale: 2.0},
		},
	}
}

// NewLODPolicy builds a policy from the config file section. Zero values keep
// the defaults; a tier list replaces the default tiers wholesale.
func NewLODPolicy(c config.LODConfig) (LODPolicy, error) {
	p := DefaultLODPolicy()
	if c.CutoffZoom > 0 {
		p.CutoffZoom = c.CutoffZoom
	}
	if c.BaseMargin > 0 {
		p.BaseMargin = c.BaseMargin
	}
	if c.BoundsPadding > 0 {
		p.BoundsPadding = c.BoundsPadding
	}
	if c.MaxLinesPerAxis > 0 {
		p.MaxLinesPerAxis = c.MaxLinesPerAxis
	}
	if len(c.Tiers) > 0 {
		tiers := make([]LODTier, len(c.Tiers))
		for i, t := range c.Tiers {
			below := t.BelowZoom
			if i == len(c.Tiers)-1 {
				below = math.Inf(1)
			}
			tiers[i] = LODTier{
				BelowZoom:       below,
				MinTilePixels:   t.MinTilePixels,
				Padding:         t.Padding,
				MaxTilesPerAxis: t.MaxTilesPerAxis,
				MaxTiles:        t.MaxTiles,
				MarginScale:     t.MarginScale,
			}
		}
		p.Tiers = tiers
	}
	if err := p.Validate(); err != nil {
		return DefaultLODPolicy(), err
	}
	return p, nil
}

// Validate checks that tiers are ordered and every limit is positive
func (p LODPolicy) Validate() error {
	if len(p.Tiers) == 0 {
		return fmt.Errorf("%w: no tiers", ErrInvalidPolicy)
	}
	if p.CutoffZoom < 0 || p.BaseMargin < 0 || p.BoundsPadding < 0 || p.MaxLinesPerAxis <= 0 {
		return fmt.Errorf("%w: negative margin, padding or cutoff", ErrInvalidPolicy)
	}
	prev := 0.0
	for i, t := range p.Tiers {
		if t.BelowZoom <= prev {
			return fmt.Errorf("%w: tier %d boundary %v not above %v", ErrInvalidPolicy, i, t.BelowZoom, prev)
		}
		if t.Padding < 1 {
			return fmt.Errorf("%w: tier %d padding %v below 1", ErrInvalidPolicy, i, t.Padding)
		}
		if t.MaxTilesPerAxis <= 0 || t.MaxTiles <= 0 {
			return fmt.Errorf("%w: tier %d has non-positive caps", ErrInvalidPolicy, i)
		}
		if t.MinTilePixels < 0 || t.MarginScale < 0 {
			return fmt.Errorf("%w: tier %d has negative thresholds", ErrInvalidPolicy, i)
		}
		prev = t.BelowZoom
	}
	return nil
}

// TierFor returns the tier governing the zoom, or false when the zoom is below
// the cutoff and nothing should be generated.
func (p LODPolicy) TierFor(zoom float64) (LODTier, bool) {
	if zoom < p.CutoffZoom || len(p.Tiers) == 0 {
		return LODTier{}, false
	}
	for _, t := range p.Tiers {
		if zoom < t.BelowZoom {
			return t, true
		}
	}
	return p.Tiers[len(p.Tiers)-1], true
}

// margin is the culling margin in screen pixels for a tier
func (p LODPolicy) margin(t LODTier, effectiveTileSize float64) float64 {
	return effectiveTileSize * p.BaseMargin * t.MarginScale
}
