package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/docstruct/docstruct/model"
)

// Options controls page annotation
type Options struct {
	// Scale is the render scale the node boxes were computed at
	Scale float64
	// Ratio is page pixels per image-space unit. Zero means 1.
	Ratio float64
	// Labels draws the role and ID above each box
	Labels bool
	// CropPad is extra pixels kept around each crop
	CropPad int
	// MaxCropSide shrinks crops whose longer side exceeds it. Zero keeps
	// crops at page resolution.
	MaxCropSide int
}

// DefaultOptions returns annotation options for boxes at scale 2
func DefaultOptions() Options {
	return Options{Scale: 2.0, Ratio: 1, Labels: true}
}

// Annotate returns a copy of page with every node outlined in its role
// color. Nodes are drawn in document order so children sit on top of
// their parents.
func Annotate(page image.Image, p *model.Page, opts Options) *image.RGBA {
	b := page.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), page, b.Min, draw.Src)

	ratio := opts.Ratio
	if ratio <= 0 {
		ratio = 1
	}
	width := max(1, int(opts.Scale))

	var nodes []*model.HierarchyNode
	if p != nil {
		nodes = p.Flatten()
	}
	for _, n := range nodes {
		r := PixelRect(n.BBox, ratio, 0, out.Bounds())
		if r.Empty() {
			continue
		}
		c := nodeColor(n)
		strokeRect(out, r, c, width)
		if opts.Labels {
			drawLabel(out, r, Label(n), c)
		}
	}
	return out
}

func nodeColor(n *model.HierarchyNode) color.RGBA {
	if n.Role == model.RoleTableCell && n.Cell != nil && (n.Cell.ColumnHeader || n.Cell.RowHeader) {
		return headerCellColor
	}
	return RoleColor(n.Role)
}

// Label is the caption drawn over a node's box
func Label(n *model.HierarchyNode) string {
	var kind string
	switch {
	case n.Role == model.RoleListItem && n.List != nil && n.List.IsNested:
		kind = fmt.Sprintf("L%d", n.List.IndentLevel)
	case n.Role == model.RoleListItem:
		kind = "LIST"
	case n.Role == model.RoleTableCell && n.Cell != nil:
		kind = fmt.Sprintf("[%d,%d]", n.Cell.Row, n.Cell.Col)
		switch {
		case n.Cell.ColumnHeader && n.Cell.RowHeader:
			kind += " HDR"
		case n.Cell.ColumnHeader:
			kind += " COL"
		case n.Cell.RowHeader:
			kind += " ROW"
		}
	default:
		kind = strings.ToUpper(n.Role.String())
	}
	if n.ID == "" {
		return kind
	}
	return kind + " #" + n.ID
}

func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA, width int) {
	src := image.NewUniform(c)
	width = min(width, r.Dx(), r.Dy())
	if width <= 0 {
		width = 1
	}
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width),
		image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y),
		image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e.Intersect(img.Bounds()), src, image.Point{}, draw.Src)
	}
}

// drawLabel writes text on a white plate just above r, or inside its top
// edge when there is no room above.
func drawLabel(img *image.RGBA, r image.Rectangle, text string, c color.RGBA) {
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	metrics := face.Metrics()
	height := (metrics.Ascent + metrics.Descent).Ceil()

	top := r.Min.Y - height - 2
	if top < img.Bounds().Min.Y {
		top = r.Min.Y
	}
	plate := image.Rect(r.Min.X, top, r.Min.X+textWidth+4, top+height+2)
	plate = plate.Intersect(img.Bounds())
	if plate.Empty() {
		return
	}
	draw.Draw(img, plate, image.White, image.Point{}, draw.Src)
	strokeRect(img, plate, c, 1)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(plate.Min.X+2, plate.Min.Y+1+metrics.Ascent.Ceil()),
	}
	d.DrawString(text)
}
