package grid

import (
	"math"
	"math/rand"
	"testing"
)

type pointKey struct{ x, y int64 }

func checkClosedLoop(t *testing.T, loop []WorldPoint) {
	t.Helper()
	if len(loop) < 4 {
		t.Fatalf("loop too short: %d points", len(loop))
	}
	if loop[0] != loop[len(loop)-1] {
		t.Fatalf("loop not closed: %+v ... %+v", loop[0], loop[len(loop)-1])
	}
	seen := map[pointKey]bool{}
	for _, p := range loop[:len(loop)-1] {
		k := pointKey{int64(math.Round(p.X * 1e4)), int64(math.Round(p.Y * 1e4))}
		if seen[k] {
			t.Fatalf("vertex %+v visited twice", p)
		}
		seen[k] = true
	}
}

// signedArea is positive for loops that run clockwise on screen (y down)
func signedArea(loop []WorldPoint) float64 {
	a := 0.0
	for i := 0; i+1 < len(loop); i++ {
		a += loop[i].X*loop[i+1].Y - loop[i+1].X*loop[i].Y
	}
	return a / 2
}

func TestHexBoundarySingleHex(t *testing.T) {
	e := newTestEngine(t, Settings{TileSize: 60, Topology: Hex, ZoomPrimary: 1, ZoomSecondary: 1, OffsetX: 5, OffsetY: 5})
	outline := e.HexBoundary(HexRange{MinQ: 2, MaxQ: 2, MinR: -1, MaxR: -1})
	if len(outline) != 7 {
		t.Fatalf("single hex outline should have 7 points, got %d", len(outline))
	}
	checkClosedLoop(t, outline)

	l := e.HexLayout()
	center := l.ToWorld(TileIndex{X: 2, Y: -1})
	for _, p := range outline {
		if d := math.Hypot(p.X-center.X, p.Y-center.Y); !near(d, l.Radius(), 1e-9) {
			t.Errorf("outline point %+v is not a corner (distance %v)", p, d)
		}
	}
	area := signedArea(outline)
	want := 3 * math.Sqrt(3) / 2 * l.Radius() * l.Radius()
	if !near(area, want, 1e-6) {
		t.Errorf("expected clockwise area %v, got %v", want, area)
	}
}

func TestHexBoundaryTwoHexes(t *testing.T) {
	e := newTestEngine(t, Settings{TileSize: 60, Topology: Hex, ZoomPrimary: 1, ZoomSecondary: 1})
	outline := e.HexBoundary(HexRange{MinQ: 1, MaxQ: 0, MinR: 0, MaxR: 0})
	if len(outline) != 11 {
		t.Fatalf("two-hex outline should have 11 points, got %d", len(outline))
	}
	checkClosedLoop(t, outline)
}

func TestHexBoundaryRectangleIsSingleLoop(t *testing.T) {
	l := HexLayout{Width: 40}
	region, ok := RegionFromRange(HexRange{MinQ: -3, MaxQ: 4, MinR: -2, MaxR: 5})
	if !ok {
		t.Fatalf("range should be accepted")
	}
	if region.Len() != 64 {
		t.Fatalf("expected 64 hexes, got %d", region.Len())
	}
	loops := region.Outlines(l)
	if len(loops) != 1 {
		t.Fatalf("parallelogram should have one boundary loop, got %d", len(loops))
	}
	edges := region.BoundaryEdges(l)
	if len(loops[0]) != len(edges)+1 {
		t.Errorf("loop should use every boundary edge: %d points for %d edges", len(loops[0]), len(edges))
	}
	checkClosedLoop(t, loops[0])

	area := signedArea(loops[0])
	hexArea := 3 * math.Sqrt(3) / 2 * l.Radius() * l.Radius()
	if !near(area, 64*hexArea, 1e-6) {
		t.Errorf("outline area %v, expected %v", area, 64*hexArea)
	}
}

func TestHexRegionWithHole(t *testing.T) {
	l := HexLayout{Width: 30}
	ring := HexNeighbors(TileIndex{})
	region := NewHexRegion(ring[:]...)

	loops := region.Outlines(l)
	if len(loops) != 2 {
		t.Fatalf("ring should have outer and inner loops, got %d", len(loops))
	}
	lengths := map[int]bool{len(loops[0]): true, len(loops[1]): true}
	if !lengths[19] || !lengths[7] {
		t.Errorf("expected loops of 19 and 7 points, got %d and %d", len(loops[0]), len(loops[1]))
	}
	for _, loop := range loops {
		checkClosedLoop(t, loop)
	}
	if outer := region.Outline(l); len(outer) != 19 {
		t.Errorf("Outline should pick the outer loop, got %d points", len(outer))
	}
}

func TestHexRegionNonConvex(t *testing.T) {
	l := HexLayout{Width: 30}
	// an L of five hexes
	region := NewHexRegion(
		TileIndex{0, 0}, TileIndex{1, 0}, TileIndex{2, 0},
		TileIndex{0, 1}, TileIndex{0, 2},
	)
	loops := region.Outlines(l)
	if len(loops) != 1 {
		t.Fatalf("connected region should have one loop, got %d", len(loops))
	}
	checkClosedLoop(t, loops[0])
	hexArea := 3 * math.Sqrt(3) / 2 * l.Radius() * l.Radius()
	if a := signedArea(loops[0]); !near(a, 5*hexArea, 1e-6) {
		t.Errorf("walk misordered the vertices: area %v, expected %v", a, 5*hexArea)
	}
}

func TestHexBoundaryDisjointAndOversize(t *testing.T) {
	l := HexLayout{Width: 30}
	region := NewHexRegion(TileIndex{0, 0}, TileIndex{10, 10})
	if loops := region.Outlines(l); len(loops) != 2 {
		t.Errorf("two separate hexes should give two loops, got %d", len(loops))
	}

	if _, ok := RegionFromRange(HexRange{MinQ: 0, MaxQ: 1000, MinR: 0, MaxR: 1000}); ok {
		t.Errorf("oversize range should be rejected")
	}
	e := newTestEngine(t, Settings{TileSize: 30, Topology: Hex, ZoomPrimary: 1, ZoomSecondary: 1})
	if got := e.HexBoundary(HexRange{MinQ: 0, MaxQ: 1000, MinR: 0, MaxR: 1000}); got != nil {
		t.Errorf("oversize range should produce no outline, got %d points", len(got))
	}
	if got := NewHexRegion().Outlines(l); got != nil {
		t.Errorf("empty region should have no outline")
	}
}

func TestHexBoundaryAwayFromOrigin(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	for i := 0; i < 5000; i++ {
		l := HexLayout{
			Width:   5 + rng.Float64()*100,
			OffsetX: rng.Float64() * 1000,
			OffsetY: rng.Float64() * 1000,
		}
		q := rng.Intn(200001) - 100000
		r := rng.Intn(200001) - 100000
		rngHex := HexRange{MinQ: q, MaxQ: q + rng.Intn(8), MinR: r, MaxR: r + rng.Intn(8)}
		region, ok := RegionFromRange(rngHex)
		if !ok {
			t.Fatalf("range %+v rejected", rngHex)
		}

		loops := region.Outlines(l)
		if len(loops) != 1 {
			t.Fatalf("%+v %+v: expected one loop, got %d", l, rngHex, len(loops))
		}
		loop := loops[0]
		if want := len(region.BoundaryEdges(l)) + 1; len(loop) != want {
			t.Fatalf("%+v %+v: expected %d points, got %d", l, rngHex, want, len(loop))
		}
		radius := l.Radius()
		for k := 1; k < len(loop); k++ {
			step := math.Hypot(loop[k].X-loop[k-1].X, loop[k].Y-loop[k-1].Y)
			if !near(step, radius, radius*1e-6) {
				t.Fatalf("%+v %+v: step %d has length %v, want %v", l, rngHex, k, step, radius)
			}
		}

		// relative to the first point to keep the sum small
		rel := make([]WorldPoint, len(loop))
		for k, p := range loop {
			rel[k] = WorldPoint{X: p.X - loop[0].X, Y: p.Y - loop[0].Y}
		}
		want := float64(region.Len()) * 3 * math.Sqrt(3) / 2 * radius * radius
		if area := signedArea(rel); !near(area, want, want*1e-6) {
			t.Fatalf("%+v %+v: area %v, want %v", l, rngHex, area, want)
		}
	}
}
