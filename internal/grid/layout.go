package grid

import (
	"math"

	"tilegrid/internal/mathutil"
)

// hexBoundsMargin widens hex index bounds so hexes whose bounding box
// straddles the rectangle edge are still enumerated.
const hexBoundsMargin = 1

// layout is the topology-specific half of the transforms
type layout interface {
	center(i TileIndex) WorldPoint
	box(i TileIndex) BoundingBox
	index(p WorldPoint) TileIndex
	snap(p WorldPoint) WorldPoint
	indexBounds(area BoundingBox) Bounds
}

func layoutFor(s Settings) layout {
	if s.Topology == Hex {
		return hexLayout{HexLayout{Width: s.TileSize, OffsetX: s.OffsetX, OffsetY: s.OffsetY}}
	}
	return squareLayout{size: s.TileSize, offsetX: s.OffsetX, offsetY: s.OffsetY}
}

type squareLayout struct {
	size, offsetX, offsetY float64
}

func (l squareLayout) center(i TileIndex) WorldPoint {
	return WorldPoint{
		X: float64(i.X)*l.size + l.offsetX + l.size/2,
		Y: float64(i.Y)*l.size + l.offsetY + l.size/2,
	}
}

func (l squareLayout) box(i TileIndex) BoundingBox {
	return BoundingBox{
		X:      float64(i.X)*l.size + l.offsetX,
		Y:      float64(i.Y)*l.size + l.offsetY,
		Width:  l.size,
		Height: l.size,
	}
}

func (l squareLayout) index(p WorldPoint) TileIndex {
	return TileIndex{
		X: floorCell(p.X, l.offsetX, l.size),
		Y: floorCell(p.Y, l.offsetY, l.size),
	}
}

// floorCell is floor((v-offset)/size), corrected by one where the division
// rounds across a cell edge, so that a cell's own corner always maps back to it.
func floorCell(v, offset, size float64) int {
	i := mathutil.FloorInt((v - offset) / size)
	if float64(i+1)*size+offset <= v {
		return i + 1
	}
	if float64(i)*size+offset > v {
		return i - 1
	}
	return i
}

func (l squareLayout) snap(p WorldPoint) WorldPoint {
	b := l.box(l.index(p))
	return WorldPoint{X: b.X, Y: b.Y}
}

func (l squareLayout) indexBounds(area BoundingBox) Bounds {
	minX, minY, maxX, maxY := area.GetBounds()
	return Bounds{
		MinX: mathutil.FloorInt((minX - l.offsetX) / l.size),
		MinY: mathutil.FloorInt((minY - l.offsetY) / l.size),
		MaxX: mathutil.CeilInt((maxX - l.offsetX) / l.size),
		MaxY: mathutil.CeilInt((maxY - l.offsetY) / l.size),
	}
}

type hexLayout struct {
	HexLayout
}

func (l hexLayout) center(i TileIndex) WorldPoint {
	return l.ToWorld(i)
}

func (l hexLayout) box(i TileIndex) BoundingBox {
	return l.Box(i)
}

func (l hexLayout) index(p WorldPoint) TileIndex {
	return l.FromWorld(p)
}

// snap returns the hex centre. The bounding-box corner lies outside the hex,
// so snapping to it would not be idempotent.
func (l hexLayout) snap(p WorldPoint) WorldPoint {
	return l.ToWorld(l.FromWorld(p))
}

func (l hexLayout) indexBounds(area BoundingBox) Bounds {
	minX, minY, maxX, maxY := area.GetBounds()
	b := Bounds{MinX: math.MaxInt, MinY: math.MaxInt, MaxX: math.MinInt, MaxY: math.MinInt}
	for _, p := range [4]WorldPoint{{minX, minY}, {maxX, minY}, {minX, maxY}, {maxX, maxY}} {
		h := l.FromWorld(p)
		b.MinX = min(b.MinX, h.X)
		b.MaxX = max(b.MaxX, h.X)
		b.MinY = min(b.MinY, h.Y)
		b.MaxY = max(b.MaxY, h.Y)
	}
	b.MinX -= hexBoundsMargin
	b.MinY -= hexBoundsMargin
	b.MaxX += hexBoundsMargin
	b.MaxY += hexBoundsMargin
	return b
}

// capBounds shrinks each axis of b to at most limit indices, keeping the
// window centred on focus where the bounds allow.
func capBounds(b Bounds, focus TileIndex, limit int) Bounds {
	if limit <= 0 {
		return Bounds{MinX: 0, MinY: 0, MaxX: -1, MaxY: -1}
	}
	capAxis := func(lo, hi, f int) (int, int) {
		if hi-lo+1 <= limit {
			return lo, hi
		}
		start := mathutil.ClampInt(f-limit/2, lo, hi-limit+1)
		return start, start + limit - 1
	}
	b.MinX, b.MaxX = capAxis(b.MinX, b.MaxX, focus.X)
	b.MinY, b.MaxY = capAxis(b.MinY, b.MaxY, focus.Y)
	return b
}
