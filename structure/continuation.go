package structure

import (
	"math"
	"sort"

	"github.com/docstruct/docstruct/model"
)

// detectContinuations links the last table of a page to the first table of
// the next page when no heading separates them.
func (a *Analyzer) detectContinuations(pages []*model.Page) []model.TableContinuation {
	byNumber := make(map[int][]*model.HierarchyNode)
	for _, p := range pages {
		if p != nil {
			byNumber[p.Number] = pageFlow(p)
		}
	}

	var links []model.TableContinuation
	for _, num := range model.SortedPages(byNumber) {
		next, ok := byNumber[num+1]
		if !ok {
			continue
		}
		cur := byNumber[num]

		from, fromPos := lastTable(cur)
		to, toPos := firstTable(next)
		if from == nil || to == nil {
			continue
		}
		if hasHeading(cur[fromPos+1:]) || hasHeading(next[:toPos]) {
			continue
		}

		conf := 0.7
		if a.similarWidth(from.PDFBBox, to.PDFBBox) {
			conf += 0.1
		}
		if isLastContent(cur, fromPos) && isFirstContent(next, toPos) {
			conf += 0.1
		}
		links = append(links, model.TableContinuation{
			FromID:     from.ID,
			ToID:       to.ID,
			FromPage:   from.Page,
			ToPage:     to.Page,
			Confidence: math.Min(conf, 1.0),
		})
	}

	sort.SliceStable(links, func(i, j int) bool { return links[i].FromPage < links[j].FromPage })
	return links
}

func lastTable(flow []*model.HierarchyNode) (*model.HierarchyNode, int) {
	for i := len(flow) - 1; i >= 0; i-- {
		if flow[i].Role == model.RoleTable {
			return flow[i], i
		}
	}
	return nil, -1
}

func firstTable(flow []*model.HierarchyNode) (*model.HierarchyNode, int) {
	for i, n := range flow {
		if n.Role == model.RoleTable {
			return n, i
		}
	}
	return nil, -1
}

func hasHeading(nodes []*model.HierarchyNode) bool {
	for _, n := range nodes {
		if n.Role.IsHeading() {
			return true
		}
	}
	return false
}

// isLastContent reports whether nothing but running headers and footers
// follows position i.
func isLastContent(flow []*model.HierarchyNode, i int) bool {
	for _, n := range flow[i+1:] {
		if !n.Role.IsPageFurniture() {
			return false
		}
	}
	return true
}

// isFirstContent reports whether nothing but running headers and footers
// precedes position i.
func isFirstContent(flow []*model.HierarchyNode, i int) bool {
	for _, n := range flow[:i] {
		if !n.Role.IsPageFurniture() {
			return false
		}
	}
	return true
}

func (a *Analyzer) similarWidth(x, y model.BBox) bool {
	wx, wy := x.Normalize().Width(), y.Normalize().Width()
	widest := math.Max(wx, wy)
	if widest <= 0 {
		return false
	}
	return math.Abs(wx-wy)/widest <= a.config.WidthTolerance
}
