package viewer

import (
	"fmt"
	"image/color"

	"tilegrid/internal/grid"
	"tilegrid/internal/monitoring"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// hudState is everything the overlay shows, captured once per tick
type hudState struct {
	settings grid.Settings
	viewport grid.Viewport
	hover    grid.TileIndex
	tier     grid.LODTier
	tierOK   bool
	metrics  monitoring.GenerationMetrics
	selW     int
	selH     int
	fps      float64
}

func hudLines(h hudState) []string {
	s := h.settings
	lines := []string{
		fmt.Sprintf("camera %.1f, %.1f", s.CameraX, s.CameraY),
		fmt.Sprintf("zoom %.3f x %.3f = %.3f", s.ZoomPrimary, s.ZoomSecondary, s.EffectiveZoom()),
		fmt.Sprintf("%s grid, tile %.0f, pinned %v", s.Topology, s.TileSize, s.FollowsBackground),
		fmt.Sprintf("hover %s", h.hover.Key()),
	}
	if h.tierOK {
		lines = append(lines, fmt.Sprintf("tier <%.2f pad %.1f cap %d", h.tier.BelowZoom, h.tier.Padding, h.tier.MaxTiles))
	} else {
		lines = append(lines, "below LOD cutoff")
	}
	m := h.metrics
	lines = append(lines,
		fmt.Sprintf("tiles %d lines %d", m.LastTiles, m.LastLines),
		fmt.Sprintf("gen %.2fms avg %.2fms peak %.2fms",
			float64(m.LastTime.Microseconds())/1000,
			float64(m.AverageTime.Microseconds())/1000,
			float64(m.PeakTime.Microseconds())/1000),
	)
	if h.selW > 0 {
		lines = append(lines, fmt.Sprintf("selection %dx%d", h.selW, h.selH))
	}
	lines = append(lines, fmt.Sprintf("fps %.0f", h.fps))
	return lines
}

const hudLineHeight = 15

func drawHUD(screen *ebiten.Image, lines []string) {
	face := basicfont.Face7x13
	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Round())
	}
	x, y := 10, 10
	vector.DrawFilledRect(screen, float32(x-6), float32(y-6), float32(width+12), float32(len(lines)*hudLineHeight+8), color.RGBA{0, 0, 0, 170}, false)
	for i, l := range lines {
		ebitext.Draw(screen, l, face, x, y+face.Ascent+i*hudLineHeight, color.RGBA{230, 230, 230, 255})
	}
}
