package hierarchy

import (
	"strings"

	"github.com/docstruct/docstruct/model"
)

// Semantic levels below headings. Headings use 1..3.
const (
	FurnitureLevel = 0
	ContentLevel   = 4
	CellLevel      = 5
)

// HeadingLevel estimates the outline depth of a heading. Chapter markers give
// level 1, section markers 2, subsection markers 3. Without a marker the
// heading's position decides: the top 20% of the page is level 1, the next
// 20% level 2, anything lower level 3. yRatio is the distance of the
// heading's top edge from the top of the page as a fraction of page height.
func HeadingLevel(text string, yRatio float64) int {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "第", "章", "chapter"):
		return 1
	case containsAny(lower, "項", "subsection"):
		return 3
	case containsAny(lower, "節", "section", "§"):
		return 2
	}

	switch {
	case yRatio < 0.2:
		return 1
	case yRatio < 0.4:
		return 2
	default:
		return 3
	}
}

// SemanticLevel assigns the level used to seed parent/child relations.
// Page headers and footers get FurnitureLevel and never take part in
// nesting.
func SemanticLevel(role model.Role, text string, yRatio float64) int {
	switch {
	case role.IsHeading():
		return HeadingLevel(text, yRatio)
	case role.IsPageFurniture():
		return FurnitureLevel
	case role == model.RoleTableCell:
		return CellLevel
	default:
		return ContentLevel
	}
}

// TopRatio returns how far below the top of the page a PDF-space box starts,
// as a fraction of page height.
func TopRatio(b model.BBox, pageHeight float64) float64 {
	if pageHeight <= 0 {
		return 0
	}
	return (pageHeight - b.Normalize().Y2) / pageHeight
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
