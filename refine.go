package docstruct

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/docstruct/docstruct/model"
	"github.com/docstruct/docstruct/render"
)

// RegionRecognizer reads the text of a cropped region
type RegionRecognizer interface {
	RecognizeRegion(ctx context.Context, img image.Image) (string, error)
}

// refinePadding is the margin, in raster pixels, added around each region
const refinePadding = 2

// NeedsRefinement reports whether a node carries prose whose text is
// missing or garbled
func NeedsRefinement(n *model.HierarchyNode) bool {
	switch n.Role {
	case model.RoleTable, model.RoleFigure, model.RoleFormula, model.RoleList:
		return false
	}
	if n.Flags.Has(model.FlagGarbled) {
		return true
	}
	return strings.TrimSpace(n.Text) == ""
}

// RefineText OCRs the region of every node on page that NeedsRefinement
// and replaces its text when OCR finds any. img is the page raster and
// ratio its pixels per image-space unit. It returns how many nodes were
// updated.
//
// RefineText edits the finalized nodes of page in place: it overwrites
// Text and clears FlagGarbled on each node it updates. Anything holding
// those nodes, such as the Result the page came from, sees the new text.
// Refine a copy when the extracted text must be kept.
func RefineText(ctx context.Context, page *model.Page, img image.Image, ratio float64, rec RegionRecognizer) (int, error) {
	var targets []*model.HierarchyNode
	page.Walk(func(n *model.HierarchyNode) bool {
		if NeedsRefinement(n) {
			targets = append(targets, n)
		}
		return true
	})

	refined := 0
	for _, n := range targets {
		if err := ctx.Err(); err != nil {
			return refined, err
		}
		region := render.Crop(img, n.BBox, ratio, refinePadding)
		text, err := rec.RecognizeRegion(ctx, region)
		if err != nil {
			return refined, fmt.Errorf("node %s: %w", n.ID, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		n.Text = text
		n.Flags &^= model.FlagGarbled
		refined++
	}
	return refined, nil
}
