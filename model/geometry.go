package model

import "math"

// Point is a position in the same space as the box it came from
type Point struct {
	X, Y float64
}

// BBox is an axis-aligned rectangle given by two corners. Whether Y grows
// upwards (PDF space) or downwards (image space) depends on where the box
// came from; the methods here do not care.
type BBox struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// NewBBox creates a bounding box from corner coordinates
func NewBBox(x1, y1, x2, y2 float64) BBox {
	return BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Width returns the horizontal extent
func (b BBox) Width() float64 {
	return b.X2 - b.X1
}

// Height returns the vertical extent
func (b BBox) Height() float64 {
	return b.Y2 - b.Y1
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: (b.X1 + b.X2) / 2,
		Y: (b.Y1 + b.Y2) / 2,
	}
}

// Area returns the area of the bounding box. Inverted boxes report zero.
func (b BBox) Area() float64 {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// AspectRatio returns width/height, or 0 for a box with no height
func (b BBox) AspectRatio() float64 {
	h := b.Height()
	if h <= 0 {
		return 0
	}
	return b.Width() / h
}

// Normalize swaps coordinates so that X1 <= X2 and Y1 <= Y2
func (b BBox) Normalize() BBox {
	if b.X1 > b.X2 {
		b.X1, b.X2 = b.X2, b.X1
	}
	if b.Y1 > b.Y2 {
		b.Y1, b.Y2 = b.Y2, b.Y1
	}
	return b
}

// Union returns the smallest box covering both boxes
func (b BBox) Union(other BBox) BBox {
	return BBox{
		X1: math.Min(b.X1, other.X1),
		Y1: math.Min(b.Y1, other.Y1),
		X2: math.Max(b.X2, other.X2),
		Y2: math.Max(b.Y2, other.Y2),
	}
}

// Expand grows the box by margin on every side; a negative margin shrinks it
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		X1: b.X1 - margin,
		Y1: b.Y1 - margin,
		X2: b.X2 + margin,
		Y2: b.Y2 + margin,
	}
}

// IsDegenerate reports whether the box has no usable area or holds
// non-finite coordinates.
func (b BBox) IsDegenerate() bool {
	for _, v := range [4]float64{b.X1, b.Y1, b.X2, b.Y2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return b.Width() <= 0 || b.Height() <= 0
}
