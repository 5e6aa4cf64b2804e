package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// Topology selects the tile shape of the grid
type Topology int

const (
	Square Topology = iota
	Hex
)

// String returns the configuration name of the topology
func (t Topology) String() string {
	switch t {
	case Square:
		return "square"
	case Hex:
		return "hex"
	default:
		return "Topology(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseTopology converts a configuration tag ("square" or "hex") to a Topology
func ParseTopology(s string) (Topology, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square", "":
		return Square, nil
	case "hex", "hexagon":
		return Hex, nil
	}
	return Square, fmt.Errorf("unknown grid topology %q", s)
}

// ScreenPoint is a position in viewport pixels, origin at the top-left corner
type ScreenPoint struct {
	X, Y float64
}

// WorldPoint is a position on the continuous world plane
type WorldPoint struct {
	X, Y float64
}

// TileIndex addresses a tile. For hex grids X holds the axial q and Y the axial r.
type TileIndex struct {
	X, Y int
}

// Q returns the axial q coordinate of a hex index
func (i TileIndex) Q() int { return i.X }

// R returns the axial r coordinate of a hex index
func (i TileIndex) R() int { return i.Y }

// Add returns the index offset by another index
func (i TileIndex) Add(o TileIndex) TileIndex {
	return TileIndex{X: i.X + o.X, Y: i.Y + o.Y}
}

// Key returns the stable "x,y" identifier used for tile keys
func (i TileIndex) Key() string {
	return strconv.Itoa(i.X) + "," + strconv.Itoa(i.Y)
}

// Tile is one generated tile. World is the top-left of the tile's bounding box,
// Screen is the projection of World.
type Tile struct {
	Index  TileIndex
	World  WorldPoint
	Center WorldPoint
	Screen ScreenPoint
	Key    string
}

// HexEdge is the shared side between two hexes
type HexEdge struct {
	Start WorldPoint
	End   WorldPoint
	Mid   WorldPoint
}

// Viewport is the pixel size of the drawing surface
type Viewport struct {
	Width, Height float64
}

// Empty reports whether the viewport has no drawable area
func (v Viewport) Empty() bool {
	return !(v.Width > 0) || !(v.Height > 0)
}

// Bounds is an inclusive rectangle of tile indices
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the number of columns in the bounds
func (b Bounds) Width() int {
	return b.MaxX - b.MinX + 1
}

// Height returns the number of rows in the bounds
func (b Bounds) Height() int {
	return b.MaxY - b.MinY + 1
}

// Contains reports whether the index lies within the bounds
func (b Bounds) Contains(i TileIndex) bool {
	return i.X >= b.MinX && i.X <= b.MaxX && i.Y >= b.MinY && i.Y <= b.MaxY
}

// HexRange is an inclusive rectangle of axial coordinates
type HexRange struct {
	MinQ, MaxQ, MinR, MaxR int
}

// Normalize swaps reversed bounds so that Min <= Max on both axes
func (r HexRange) Normalize() HexRange {
	if r.MinQ > r.MaxQ {
		r.MinQ, r.MaxQ = r.MaxQ, r.MinQ
	}
	if r.MinR > r.MaxR {
		r.MinR, r.MaxR = r.MaxR, r.MinR
	}
	return r
}

// HexRangeBetween builds the range spanned by two corner hexes in any order
func HexRangeBetween(a, b TileIndex) HexRange {
	return HexRange{MinQ: a.X, MaxQ: b.X, MinR: a.Y, MaxR: b.Y}.Normalize()
}

// Orientation of a grid line
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// GridLine is a full-viewport line in screen space. For vertical lines Pos is the
// screen x and From/To span y; for horizontal lines the axes swap.
type GridLine struct {
	Orientation Orientation
	Index       int
	Pos         float64
	From, To    float64
	Key         string
}
