package grid

import (
	"math"
	"math/rand"
	"testing"
)

func newTestEngine(t *testing.T, s Settings) *Engine {
	t.Helper()
	e, err := New(StaticSource(s))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func squareSettings(tileSize float64) Settings {
	return Settings{TileSize: tileSize, Topology: Square, ZoomPrimary: 1, ZoomSecondary: 1}
}

func near(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestScreenWorldRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		s := Settings{
			TileSize:      1 + rng.Float64()*100,
			Topology:      Topology(rng.Intn(2)),
			CameraX:       (rng.Float64() - 0.5) * 1e4,
			CameraY:       (rng.Float64() - 0.5) * 1e4,
			ZoomPrimary:   0.1 + rng.Float64()*3,
			ZoomSecondary: 0.1 + rng.Float64()*3,
			OffsetX:       rng.Float64() * 50,
			OffsetY:       rng.Float64() * 50,
		}
		e := newTestEngine(t, s)
		vp := Viewport{Width: 100 + rng.Float64()*3000, Height: 100 + rng.Float64()*2000}
		w := WorldPoint{X: (rng.Float64() - 0.5) * 1e4, Y: (rng.Float64() - 0.5) * 1e4}

		back := e.ScreenToWorld(e.WorldToScreen(w, vp), vp)
		if !near(back.X, w.X, 1e-9) || !near(back.Y, w.Y, 1e-9) {
			t.Fatalf("round trip of %+v gave %+v (settings %+v)", w, back, s)
		}
	}
}

func TestCameraMapsToViewportCenter(t *testing.T) {
	s := squareSettings(50)
	s.CameraX, s.CameraY = 320, -140
	s.ZoomPrimary, s.ZoomSecondary = 2, 0.75
	e := newTestEngine(t, s)

	vp := Viewport{Width: 800, Height: 600}
	p := e.WorldToScreen(WorldPoint{X: 320, Y: -140}, vp)
	if p.X != 400 || p.Y != 300 {
		t.Errorf("camera should project to viewport centre, got %+v", p)
	}

	p = e.WorldToScreen(WorldPoint{X: 330, Y: -140}, vp)
	if !near(p.X, 400+10*1.5, 1e-12) {
		t.Errorf("expected effective zoom 1.5 to scale offsets, got x=%v", p.X)
	}
}

func TestWorldToGridSquareScenario(t *testing.T) {
	e := newTestEngine(t, squareSettings(50))

	cases := []struct {
		world WorldPoint
		want  TileIndex
	}{
		{WorldPoint{25, 25}, TileIndex{0, 0}},
		{WorldPoint{75, 25}, TileIndex{1, 0}},
		{WorldPoint{-1, -1}, TileIndex{-1, -1}},
		{WorldPoint{50, 99.999}, TileIndex{1, 1}},
		{WorldPoint{-50, 0}, TileIndex{-1, 0}},
	}
	for _, c := range cases {
		if got := e.WorldToGrid(c.world); got != c.want {
			t.Errorf("WorldToGrid(%+v) = %+v, want %+v", c.world, got, c.want)
		}
	}
}

func TestGridToWorldCenterAndCorner(t *testing.T) {
	s := squareSettings(50)
	s.OffsetX, s.OffsetY = 10, -5
	e := newTestEngine(t, s)

	idx := TileIndex{X: 3, Y: -2}
	center := e.GridToWorld(idx)
	corner := e.GridToWorldCorner(idx)

	if center.X != 3*50+10+25 || center.Y != -2*50-5+25 {
		t.Errorf("unexpected centre %+v", center)
	}
	if center.X-corner.X != 25 || center.Y-corner.Y != 25 {
		t.Errorf("centre and corner should differ by half a tile, got %+v and %+v", center, corner)
	}
	if got := e.WorldToGrid(center); got != idx {
		t.Errorf("centre maps back to %+v, want %+v", got, idx)
	}
}

func TestHexCornerIsBoundingBoxTopLeft(t *testing.T) {
	s := Settings{TileSize: 60, Topology: Hex, ZoomPrimary: 1, ZoomSecondary: 1}
	e := newTestEngine(t, s)

	idx := TileIndex{X: 2, Y: -1}
	center := e.GridToWorld(idx)
	corner := e.GridToWorldCorner(idx)
	r := 60 / math.Sqrt(3)
	if !near(center.X-corner.X, 30, 1e-9) || !near(center.Y-corner.Y, r, 1e-9) {
		t.Errorf("hex corner %+v does not match centre %+v", corner, center)
	}
}

func TestSnapToGridIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, topo := range []Topology{Square, Hex} {
		s := Settings{TileSize: 37.3, Topology: topo, ZoomPrimary: 1, ZoomSecondary: 1, OffsetX: 0.1, OffsetY: 12.7}
		e := newTestEngine(t, s)
		for i := 0; i < 2000; i++ {
			p := WorldPoint{X: (rng.Float64() - 0.5) * 1e5, Y: (rng.Float64() - 0.5) * 1e5}
			once := e.SnapToGrid(p)
			twice := e.SnapToGrid(once)
			if once != twice {
				t.Fatalf("%s: snap not idempotent for %+v: %+v then %+v", topo, p, once, twice)
			}
		}
	}
}

func TestWorldToGridJustBelowEdge(t *testing.T) {
	e := newTestEngine(t, squareSettings(50))
	cases := []struct {
		p    WorldPoint
		want TileIndex
	}{
		{WorldPoint{X: 49.99999999, Y: 25}, TileIndex{X: 0, Y: 0}},
		{WorldPoint{X: 50, Y: 25}, TileIndex{X: 1, Y: 0}},
		{WorldPoint{X: 25, Y: -1e-9}, TileIndex{X: 0, Y: -1}},
		{WorldPoint{X: math.Nextafter(100, 0), Y: math.Nextafter(150, 0)}, TileIndex{X: 1, Y: 2}},
	}
	for _, c := range cases {
		if got := e.WorldToGrid(c.p); got != c.want {
			t.Errorf("WorldToGrid(%+v) = %+v, want %+v", c.p, got, c.want)
		}
	}

	s := squareSettings(0.1)
	s.OffsetX = 0.3
	e = newTestEngine(t, s)
	for i := -50; i < 50; i++ {
		corner := e.GridToWorldCorner(TileIndex{X: i, Y: i})
		if got := e.WorldToGrid(corner); got.X != i || got.Y != i {
			t.Fatalf("corner of tile %d maps to %+v", i, got)
		}
	}
}

func TestSnapToGridSquareReturnsCorner(t *testing.T) {
	e := newTestEngine(t, squareSettings(50))
	got := e.SnapToGrid(WorldPoint{X: 74, Y: 149})
	if got != (WorldPoint{X: 50, Y: 100}) {
		t.Errorf("expected corner (50,100), got %+v", got)
	}
}

func TestGridWorldToScreenModes(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s := squareSettings(40)
	s.CameraX, s.CameraY = 500, -250
	s.ZoomPrimary = 1.7
	vp := Viewport{Width: 1024, Height: 768}

	off := newTestEngine(t, s)
	for i := 0; i < 100; i++ {
		w := WorldPoint{X: rng.Float64() * 1000, Y: rng.Float64() * 1000}
		if off.GridWorldToScreen(w, vp) != off.WorldToScreen(w, vp) {
			t.Fatalf("families disagree with the follow flag off at %+v", w)
		}
	}

	s.FollowsBackground = true
	pinned := newTestEngine(t, s)
	p := pinned.GridWorldToScreen(WorldPoint{X: 10, Y: 20}, vp)
	if !near(p.X, 10*1.7+512, 1e-9) || !near(p.Y, 20*1.7+384, 1e-9) {
		t.Errorf("pinned grid should ignore the camera, got %+v", p)
	}
	back := pinned.ScreenToGridWorld(p, vp)
	if !near(back.X, 10, 1e-9) || !near(back.Y, 20, 1e-9) {
		t.Errorf("ScreenToGridWorld did not invert the pinned transform: %+v", back)
	}
}

func TestGridFromScreen(t *testing.T) {
	s := squareSettings(50)
	s.CameraX, s.CameraY = 100, 100
	e := newTestEngine(t, s)
	vp := Viewport{Width: 400, Height: 400}

	// viewport centre shows world (100,100), tile (2,2)
	if got := e.GridFromScreen(ScreenPoint{X: 200, Y: 200}, vp); got != (TileIndex{X: 2, Y: 2}) {
		t.Errorf("expected tile (2,2) at centre, got %+v", got)
	}
	if got := e.GridFromScreen(ScreenPoint{X: 0, Y: 0}, vp); got != (TileIndex{X: -2, Y: -2}) {
		t.Errorf("expected tile (-2,-2) at top-left, got %+v", got)
	}
}
