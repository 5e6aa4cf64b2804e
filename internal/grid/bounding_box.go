package grid

// BoundingBox is an axis-aligned rectangle described by its top-left corner
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// GetBounds returns the min/max coordinates of the bounding box
func (bb BoundingBox) GetBounds() (minX, minY, maxX, maxY float64) {
	return bb.X, bb.Y, bb.X + bb.Width, bb.Y + bb.Height
}

// Expand grows the box by margin on every side
func (bb BoundingBox) Expand(margin float64) BoundingBox {
	return BoundingBox{
		X:      bb.X - margin,
		Y:      bb.Y - margin,
		Width:  bb.Width + 2*margin,
		Height: bb.Height + 2*margin,
	}
}

// Intersects checks if this bounding box touches or overlaps another
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	minX1, minY1, maxX1, maxY1 := bb.GetBounds()
	minX2, minY2, maxX2, maxY2 := other.GetBounds()

	return !(maxX1 < minX2 || maxX2 < minX1 || maxY1 < minY2 || maxY2 < minY1)
}

// ContainsPoint checks if a point lies inside or on the edge of the box
func (bb BoundingBox) ContainsPoint(x, y float64) bool {
	minX, minY, maxX, maxY := bb.GetBounds()
	return x >= minX && x <= maxX && y >= minY && y <= maxY
}
