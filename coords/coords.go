package coords

import (
	"math"

	"github.com/docstruct/docstruct/model"
)

// DefaultMargin is the containment tolerance in image-space units
const DefaultMargin = 5.0

// DefaultScale is the render scale used for page images (144 DPI)
const DefaultScale = 2.0

// PointsPerInch relates PDF points to raster DPI
const PointsPerInch = 72.0

// ScaleForDPI returns the render scale matching a raster resolution
func ScaleForDPI(dpi float64) float64 {
	return dpi / PointsPerInch
}

// ToImageSpace converts a PDF-space box (origin bottom-left) to image space
// (origin top-left) for a page rendered at scale.
//
// Figures keep their vertical coordinates unflipped: the detector reports
// figure boxes already measured from the top of the page.
func ToImageSpace(b model.BBox, pageHeight, scale float64, role model.Role) model.BBox {
	out := model.BBox{X1: b.X1 * scale, X2: b.X2 * scale}
	if role == model.RoleFigure {
		out.Y1 = b.Y1 * scale
		out.Y2 = b.Y2 * scale
		return out.Normalize()
	}
	h := pageHeight * scale
	out.Y1 = h - b.Y2*scale
	out.Y2 = h - b.Y1*scale
	return out.Normalize()
}

// ToPDFSpace is the inverse of ToImageSpace
func ToPDFSpace(b model.BBox, pageHeight, scale float64, role model.Role) model.BBox {
	if scale == 0 {
		return model.BBox{}
	}
	out := model.BBox{X1: b.X1 / scale, X2: b.X2 / scale}
	if role == model.RoleFigure {
		out.Y1 = b.Y1 / scale
		out.Y2 = b.Y2 / scale
		return out.Normalize()
	}
	out.Y1 = pageHeight - b.Y2/scale
	out.Y2 = pageHeight - b.Y1/scale
	return out.Normalize()
}

// Contains reports whether inner lies fully inside outer expanded by margin
// on all four sides.
func Contains(outer, inner model.BBox, margin float64) bool {
	o := outer.Normalize().Expand(margin)
	i := inner.Normalize()
	return i.X1 >= o.X1 && i.Y1 >= o.Y1 && i.X2 <= o.X2 && i.Y2 <= o.Y2
}

// Area returns the area of b after normalization
func Area(b model.BBox) float64 {
	return b.Normalize().Area()
}

// Center returns the center point of b
func Center(b model.BBox) model.Point {
	return b.Center()
}

// AspectRatio returns width/height of b after normalization
func AspectRatio(b model.BBox) float64 {
	return b.Normalize().AspectRatio()
}

// Sanitize normalizes b and reports whether it was degenerate. A degenerate
// box is collapsed to zero size at its first finite corner so that it can
// still be carried through the pipeline.
func Sanitize(b model.BBox) (model.BBox, bool) {
	n := b.Normalize()
	if !n.IsDegenerate() {
		return n, false
	}
	x, y := finite(n.X1, n.X2), finite(n.Y1, n.Y2)
	return model.BBox{X1: x, Y1: y, X2: x, Y2: y}, true
}

func finite(vals ...float64) float64 {
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
	return 0
}

// VerticalRatio returns how far down the page the center of a PDF-space box
// sits, from 0 at the top edge to 1 at the bottom.
func VerticalRatio(b model.BBox, pageHeight float64) float64 {
	if pageHeight <= 0 {
		return 0
	}
	return (pageHeight - b.Center().Y) / pageHeight
}
