package render

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/docstruct/docstruct/model"
)

// PixelRect converts an image-space box to a pixel rectangle on an image
// rendered at ratio pixels per image-space unit, grown by pad pixels and
// clipped to bounds. The result is empty when the box lies outside bounds.
func PixelRect(b model.BBox, ratio float64, pad int, bounds image.Rectangle) image.Rectangle {
	n := b.Normalize()
	r := image.Rect(
		int(math.Floor(n.X1*ratio))-pad,
		int(math.Floor(n.Y1*ratio))-pad,
		int(math.Ceil(n.X2*ratio))+pad,
		int(math.Ceil(n.Y2*ratio))+pad,
	).Add(bounds.Min)
	return r.Intersect(bounds)
}

// Crop copies the region of page covered by b into a new image. ratio is
// the number of page pixels per image-space unit, 1 when the page was
// rendered at the same scale as the boxes. Degenerate regions grow to at
// least one pixel.
func Crop(page image.Image, b model.BBox, ratio float64, pad int) *image.RGBA {
	r := PixelRect(b, ratio, pad, page.Bounds())
	if r.Empty() {
		grown := PixelRect(b.Expand(1), ratio, pad, page.Bounds())
		if grown.Empty() {
			return image.NewRGBA(image.Rect(0, 0, 1, 1))
		}
		r = grown
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), page, r.Min, draw.Src)
	return out
}

// Thumbnail scales img down so that its longer side is at most maxSide
// pixels. Smaller images are returned unchanged.
func Thumbnail(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	longest := max(b.Dx(), b.Dy())
	if maxSide <= 0 || longest <= maxSide {
		return img
	}
	f := float64(maxSide) / float64(longest)
	w := max(1, int(math.Round(float64(b.Dx())*f)))
	h := max(1, int(math.Round(float64(b.Dy())*f)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
