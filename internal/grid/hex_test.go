package grid

import (
	"math"
	"math/rand"
	"testing"
)

func TestHexToWorldScenario(t *testing.T) {
	l := HexLayout{Width: 60, OffsetX: 10, OffsetY: 20}

	if r := l.Radius(); !near(r, 34.641016, 1e-6) {
		t.Errorf("expected radius ~34.64, got %v", r)
	}
	if p := l.ToWorld(TileIndex{0, 0}); p != (WorldPoint{X: 10, Y: 20}) {
		t.Errorf("origin hex should sit on the offset, got %+v", p)
	}
	p := l.ToWorld(TileIndex{1, 0})
	if !near(p.X, 70, 1e-9) || !near(p.Y, 20, 1e-9) {
		t.Errorf("(1,0) should be one width to the right, got %+v", p)
	}
	p = l.ToWorld(TileIndex{0, 1})
	if !near(p.X, 40, 1e-9) || !near(p.Y, 20+1.5*l.Radius(), 1e-9) {
		t.Errorf("(0,1) should be half a width right and 1.5R down, got %+v", p)
	}
}

func TestHexRoundTrip(t *testing.T) {
	l := HexLayout{Width: 60, OffsetX: 13.5, OffsetY: -7}
	for q := -60; q <= 60; q++ {
		for r := -60; r <= 60; r++ {
			h := TileIndex{X: q, Y: r}
			if got := l.FromWorld(l.ToWorld(h)); got != h {
				t.Fatalf("round trip of %+v gave %+v", h, got)
			}
		}
	}
}

func TestCubeRoundKeepsZeroSum(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		q := (rng.Float64() - 0.5) * 200
		r := (rng.Float64() - 0.5) * 200
		s := -q - r
		rq, rr, rs := CubeRound(q, r, s)
		if rq+rr+rs != 0 {
			t.Fatalf("CubeRound(%v,%v,%v) = %d,%d,%d breaks q+r+s=0", q, r, s, rq, rr, rs)
		}
		if math.Abs(float64(rq)-q) > 1 || math.Abs(float64(rr)-r) > 1 {
			t.Fatalf("CubeRound(%v,%v) moved too far: %d,%d", q, r, rq, rr)
		}
	}
}

func TestFromWorldPicksNearestCenter(t *testing.T) {
	l := HexLayout{Width: 45, OffsetX: 3, OffsetY: 9}
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 5000; i++ {
		p := WorldPoint{X: (rng.Float64() - 0.5) * 4000, Y: (rng.Float64() - 0.5) * 4000}
		h := l.FromWorld(p)
		own := dist2(p, l.ToWorld(h))
		for _, n := range HexNeighbors(h) {
			if d := dist2(p, l.ToWorld(n)); d+1e-9 < own {
				t.Fatalf("%+v mapped to %+v but neighbour %+v is closer", p, h, n)
			}
		}
	}
}

func TestHexDistanceLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	randHex := func() TileIndex {
		return TileIndex{X: rng.Intn(201) - 100, Y: rng.Intn(201) - 100}
	}
	for i := 0; i < 1000; i++ {
		a, b, c := randHex(), randHex(), randHex()
		if HexDistance(a, a) != 0 {
			t.Fatalf("distance of %+v to itself is not zero", a)
		}
		if HexDistance(a, b) != HexDistance(b, a) {
			t.Fatalf("distance not symmetric for %+v %+v", a, b)
		}
		if a != b && HexDistance(a, b) == 0 {
			t.Fatalf("distinct hexes %+v %+v at distance zero", a, b)
		}
		if HexDistance(a, c) > HexDistance(a, b)+HexDistance(b, c) {
			t.Fatalf("triangle inequality fails for %+v %+v %+v", a, b, c)
		}
	}
	if d := HexDistance(TileIndex{0, 0}, TileIndex{3, -1}); d != 3 {
		t.Errorf("expected distance 3, got %d", d)
	}
}

func TestHexNeighbors(t *testing.T) {
	h := TileIndex{X: 4, Y: -2}
	want := [6]TileIndex{{5, -2}, {3, -2}, {5, -3}, {3, -1}, {4, -1}, {4, -3}}
	got := HexNeighbors(h)
	if got != want {
		t.Fatalf("HexNeighbors(%+v) = %+v, want %+v", h, got, want)
	}
	for _, n := range got {
		if HexDistance(h, n) != 1 {
			t.Errorf("neighbour %+v is not at distance 1", n)
		}
	}
}

func TestHexCornersStartAtTop(t *testing.T) {
	c := HexCorners(WorldPoint{X: 100, Y: 100}, 10)
	if !near(c[0].X, 100, 1e-9) || !near(c[0].Y, 90, 1e-9) {
		t.Errorf("first corner should be straight up, got %+v", c[0])
	}
	if !near(c[3].X, 100, 1e-9) || !near(c[3].Y, 110, 1e-9) {
		t.Errorf("fourth corner should be straight down, got %+v", c[3])
	}
	if c[1].X <= 100 || c[1].Y >= 100 {
		t.Errorf("second corner should be upper right, got %+v", c[1])
	}
	for i, p := range c {
		if d := math.Hypot(p.X-100, p.Y-100); !near(d, 10, 1e-9) {
			t.Errorf("corner %d at distance %v", i, d)
		}
	}
}

func TestHexEdgeAdjacent(t *testing.T) {
	l := HexLayout{Width: 60}
	a := TileIndex{X: 2, Y: 1}
	for _, n := range HexNeighbors(a) {
		edge, ok := l.Edge(a, n)
		if !ok {
			t.Fatalf("edge between neighbours %+v %+v reported as approximate", a, n)
		}
		mid := midpoint(l.ToWorld(a), l.ToWorld(n))
		if !near(edge.Mid.X, mid.X, 1e-9) || !near(edge.Mid.Y, mid.Y, 1e-9) {
			t.Errorf("edge %+v -> %+v: mid %+v, expected %+v", a, n, edge.Mid, mid)
		}
		for _, p := range []WorldPoint{edge.Start, edge.End} {
			for _, c := range []TileIndex{a, n} {
				if d := math.Sqrt(dist2(p, l.ToWorld(c))); !near(d, l.Radius(), 1e-9) {
					t.Errorf("edge point %+v not a corner of %+v (distance %v)", p, c, d)
				}
			}
		}

		back, _ := l.Edge(n, a)
		if !near(back.Start.X, edge.End.X, 1e-9) || !near(back.Start.Y, edge.End.Y, 1e-9) {
			t.Errorf("reverse edge should run the other way: %+v vs %+v", back, edge)
		}
	}
}

func TestHexEdgeFallback(t *testing.T) {
	l := HexLayout{Width: 60}
	a, b := TileIndex{0, 0}, TileIndex{3, 0}
	edge, ok := l.Edge(a, b)
	if ok {
		t.Fatalf("non-adjacent pair should be approximate")
	}
	// the east side of a faces b
	exact, _ := l.Edge(a, TileIndex{1, 0})
	if edge != exact {
		t.Errorf("expected east side %+v, got %+v", exact, edge)
	}

	same, ok := l.Edge(a, a)
	if ok {
		t.Errorf("identical hexes should not be reported as adjacent")
	}
	if same.Start == same.End {
		t.Errorf("fallback must still return a real side, got %+v", same)
	}
}

func TestEngineHexQueries(t *testing.T) {
	e := newTestEngine(t, Settings{TileSize: 60, Topology: Hex, ZoomPrimary: 1, ZoomSecondary: 1})

	if got := e.WorldToGrid(WorldPoint{X: 59, Y: 1}); got != (TileIndex{X: 1, Y: 0}) {
		t.Errorf("expected hex (1,0), got %+v", got)
	}
	if got := e.HexDistance(TileIndex{0, 0}, TileIndex{-2, 2}); got != 2 {
		t.Errorf("expected distance 2, got %d", got)
	}
	if n := e.HexNeighbors(TileIndex{}); n[0] != (TileIndex{X: 1}) {
		t.Errorf("unexpected first neighbour %+v", n[0])
	}
	if _, ok := e.HexEdge(TileIndex{}, TileIndex{X: 0, Y: -1}); !ok {
		t.Errorf("expected exact edge for adjacent hexes")
	}
}
