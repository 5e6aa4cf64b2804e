// Package viewer is an ebiten front end for the grid engine: it pans and zooms
// the camera, draws whatever the engine generates and overlays timing stats.
package viewer

import (
	"image/color"
	"math"
	"time"

	"tilegrid/internal/camera"
	"tilegrid/internal/config"
	"tilegrid/internal/grid"
	"tilegrid/internal/monitoring"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	colorBackground = color.RGBA{15, 15, 22, 255}
	colorContent    = color.RGBA{30, 34, 48, 255}
	colorTileEven   = color.RGBA{26, 28, 40, 255}
	colorLine       = color.RGBA{70, 70, 90, 255}
	colorHexEdge    = color.RGBA{80, 80, 105, 255}
	colorHover      = color.RGBA{255, 220, 0, 255}
	colorSelection  = color.RGBA{50, 200, 255, 255}
)

// frame is the generated geometry drawn by the next Draw
type frame struct {
	tiles   []grid.Tile
	lines   []grid.GridLine
	outline []grid.ScreenPoint
	hud     hudState
}

// Viewer implements ebiten.Game
type Viewer struct {
	cfg     *config.Config
	cam     *camera.State
	engine  *grid.Engine
	monitor  *monitoring.GenerationMonitor
	reporter *AdjustmentLogger
	perf     *perfLogger

	vp     grid.Viewport
	cursor grid.ScreenPoint
	hover  grid.TileIndex

	panning bool
	lastPan grid.ScreenPoint
	sel     selection

	frame frame
}

// New wires the viewer to a camera and the engine reading from it. The
// reporter should be the one the engine was built with.
func New(cfg *config.Config, cam *camera.State, engine *grid.Engine, monitor *monitoring.GenerationMonitor, reporter *AdjustmentLogger) *Viewer {
	return &Viewer{
		cfg:      cfg,
		cam:      cam,
		engine:   engine,
		monitor:  monitor,
		reporter: reporter,
		perf:     newPerfLogger(cfg.Viewer),
		vp: grid.Viewport{
			Width:  float64(cfg.GetScreenWidth()),
			Height: float64(cfg.GetScreenHeight()),
		},
	}
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	cx, cy := ebiten.CursorPosition()
	v.cursor = grid.ScreenPoint{X: float64(cx), Y: float64(cy)}

	v.handleKeys()
	v.handleMouse()
	v.generate()
	v.perf.maybeLog(time.Now(), v.monitor, v.frame.hud)
	return nil
}

func (v *Viewer) handleKeys() {
	speed := v.cfg.GetPanSpeed()
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		v.cam.Pan(speed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		v.cam.Pan(-speed, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		v.cam.Pan(0, speed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		v.cam.Pan(0, -speed)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		v.toggleTopology()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		v.toggleFollowBackground()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		v.cam.FitContent(v.cfg.Viewer.ContentWidth, v.cfg.Viewer.ContentHeight, v.vp)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		v.cam.CenterOnGrid(v.engine, grid.TileIndex{})
	}
}

func (v *Viewer) handleMouse() {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if v.panning {
			v.cam.Pan(v.cursor.X-v.lastPan.X, v.cursor.Y-v.lastPan.Y)
		}
		v.panning = true
		v.lastPan = v.cursor
	} else {
		v.panning = false
	}

	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		factor := math.Pow(v.cfg.GetWheelZoomStep(), wheelY)
		primary := ebiten.IsKeyPressed(ebiten.KeyShift)
		v.cam.ZoomAt(factor, v.cursor, v.vp, primary)
	}

	onScreen := grid.BoundingBox{Width: v.vp.Width, Height: v.vp.Height}.ContainsPoint(v.cursor.X, v.cursor.Y)
	if !onScreen {
		return
	}
	v.hover = v.engine.GridFromScreen(v.cursor, v.vp)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.sel.begin(v.hover)
	} else if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		v.sel.extend(v.hover)
	}
}

// toggleTopology switches grids. Timing stats start over since square and hex
// generation are not comparable, and settings warnings may be logged again.
func (v *Viewer) toggleTopology() {
	v.cam.ToggleTopology()
	v.sel = selection{}
	v.monitor.Reset()
	if v.reporter != nil {
		v.reporter.Reset()
	}
}

func (v *Viewer) toggleFollowBackground() {
	v.cam.ToggleFollowBackground()
	if v.reporter != nil {
		v.reporter.Reset()
	}
}

// generate runs the engine once per tick and keeps the result for Draw
func (v *Viewer) generate() {
	timer := v.monitor.StartGeneration()
	tiles := v.engine.GenerateTiles(v.vp)
	timer.EndGeneration(len(tiles))

	lines := v.engine.GenerateGridLines(v.vp)
	v.monitor.RecordLines(len(lines))

	s := v.engine.Settings()
	tier, ok := v.engine.Policy().TierFor(s.EffectiveZoom())
	selW, selH := v.sel.size()
	v.frame = frame{
		tiles:   tiles,
		lines:   lines,
		outline: v.sel.outline(v.engine, v.vp),
		hud: hudState{
			settings: s,
			viewport: v.vp,
			hover:    v.hover,
			tier:     tier,
			tierOK:   ok,
			metrics:  v.monitor.GetCurrentMetrics(),
			selW:     selW,
			selH:     selH,
			fps:      ebiten.ActualFPS(),
		},
	}
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	s := v.frame.hud.settings
	zoom := s.EffectiveZoom()

	v.drawContent(screen)
	if s.Topology == grid.Hex {
		v.drawHexTiles(screen, s)
	} else {
		v.drawSquareTiles(screen, s.TileSize*zoom)
		v.drawGridLines(screen)
	}
	v.drawHover(screen, s)
	drawPolyline(screen, v.frame.outline, 2, colorSelection)
	drawHUD(screen, hudLines(v.frame.hud))
}

// Layout tracks the window size so the viewport follows resizes
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.vp = grid.Viewport{Width: float64(outsideWidth), Height: float64(outsideHeight)}
	return outsideWidth, outsideHeight
}

// drawContent shows the fit area in camera space, so a background-pinned grid
// visibly stays put while it scrolls.
func (v *Viewer) drawContent(screen *ebiten.Image) {
	c := v.cfg.Viewer
	if c.ContentWidth <= 0 || c.ContentHeight <= 0 {
		return
	}
	a := v.engine.WorldToScreen(grid.WorldPoint{}, v.vp)
	b := v.engine.WorldToScreen(grid.WorldPoint{X: c.ContentWidth, Y: c.ContentHeight}, v.vp)
	vector.DrawFilledRect(screen, float32(a.X), float32(a.Y), float32(b.X-a.X), float32(b.Y-a.Y), colorContent, false)
}

func (v *Viewer) drawSquareTiles(screen *ebiten.Image, size float64) {
	if size < 4 {
		return
	}
	for _, t := range v.frame.tiles {
		if (t.Index.X+t.Index.Y)&1 != 0 {
			continue
		}
		vector.DrawFilledRect(screen, float32(t.Screen.X), float32(t.Screen.Y), float32(size), float32(size), colorTileEven, false)
	}
}

func (v *Viewer) drawGridLines(screen *ebiten.Image) {
	for _, l := range v.frame.lines {
		p := float32(l.Pos)
		if l.Orientation == grid.Vertical {
			vector.StrokeLine(screen, p, float32(l.From), p, float32(l.To), 1, colorLine, false)
		} else {
			vector.StrokeLine(screen, float32(l.From), p, float32(l.To), p, 1, colorLine, false)
		}
	}
}

func (v *Viewer) drawHexTiles(screen *ebiten.Image, s grid.Settings) {
	zoom := s.EffectiveZoom()
	l := grid.HexLayout{Width: s.TileSize}
	halfW := l.Width / 2 * zoom
	radius := l.Radius() * zoom
	for _, t := range v.frame.tiles {
		// Screen is the bounding-box corner
		center := grid.ScreenPoint{X: t.Screen.X + halfW, Y: t.Screen.Y + radius}
		drawHex(screen, center, radius, 1, colorHexEdge)
	}
}

func (v *Viewer) drawHover(screen *ebiten.Image, s grid.Settings) {
	if s.Topology == grid.Hex {
		center := v.engine.GridWorldToScreen(v.engine.GridToWorld(v.hover), v.vp)
		drawHex(screen, center, v.engine.HexLayout().Radius()*s.EffectiveZoom(), 2, colorHover)
		return
	}
	box := v.engine.TileBox(v.hover)
	a := v.engine.GridWorldToScreen(grid.WorldPoint{X: box.X, Y: box.Y}, v.vp)
	b := v.engine.GridWorldToScreen(grid.WorldPoint{X: box.X + box.Width, Y: box.Y + box.Height}, v.vp)
	drawPolyline(screen, []grid.ScreenPoint{{X: a.X, Y: a.Y}, {X: b.X, Y: a.Y}, {X: b.X, Y: b.Y}, {X: a.X, Y: b.Y}, {X: a.X, Y: a.Y}}, 2, colorHover)
}

func drawHex(screen *ebiten.Image, center grid.ScreenPoint, radius float64, width float32, clr color.Color) {
	corners := grid.HexCorners(grid.WorldPoint(center), radius)
	pts := make([]grid.ScreenPoint, 0, 7)
	for _, c := range corners {
		pts = append(pts, grid.ScreenPoint(c))
	}
	pts = append(pts, pts[0])
	drawPolyline(screen, pts, width, clr)
}

func drawPolyline(screen *ebiten.Image, pts []grid.ScreenPoint, width float32, clr color.Color) {
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	}
}
