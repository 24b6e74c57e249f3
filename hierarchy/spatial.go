package hierarchy

import (
	"github.com/tidwall/rtree"

	"github.com/docstruct/docstruct/coords"
	"github.com/docstruct/docstruct/model"
)

// containerAccepts lists the child roles each container role claims by
// geometric containment.
var containerAccepts = map[model.Role]model.Role{
	model.RoleTable: model.RoleTableCell,
	model.RoleList:  model.RoleListItem,
}

// correctSpatial reparents table cells and list items that lie inside a
// table or list region. When several containers hold the same child, the
// smallest one wins; ties go to the container detected first. A child of a
// container is never itself a container, so no cycle can form. Containers
// with degenerate boxes claim nothing.
func (f *Forest) correctSpatial(margin float64) {
	var tr rtree.RTreeG[int]
	indexed := 0
	for i, d := range f.drafts {
		if isContainedRole(d.node.Role) {
			b := d.node.BBox
			tr.Insert([2]float64{b.X1, b.Y1}, [2]float64{b.X2, b.Y2}, i)
			indexed++
		}
	}
	if indexed == 0 {
		f.state = SpatiallyCorrected
		return
	}

	best := make(map[int]int)
	for ci, c := range f.drafts {
		want, ok := containerAccepts[c.node.Role]
		if !ok || c.node.Flags.Has(model.FlagDegenerate) {
			continue
		}
		outer := c.node.BBox.Expand(margin)
		tr.Search([2]float64{outer.X1, outer.Y1}, [2]float64{outer.X2, outer.Y2},
			func(_, _ [2]float64, child int) bool {
				d := f.drafts[child]
				if d.node.Role != want || child == ci {
					return true
				}
				if !coords.Contains(c.node.BBox, d.node.BBox, margin) {
					return true
				}
				if prev, seen := best[child]; !seen || f.smallerContainer(ci, prev) {
					best[child] = ci
				}
				return true
			})
	}

	for child, container := range best {
		f.attach(container, child)
	}
	f.state = SpatiallyCorrected
}

func (f *Forest) smallerContainer(a, b int) bool {
	aa, ab := coords.Area(f.drafts[a].node.BBox), coords.Area(f.drafts[b].node.BBox)
	if aa != ab {
		return aa < ab
	}
	return a < b
}

func isContainedRole(r model.Role) bool {
	for _, child := range containerAccepts {
		if r == child {
			return true
		}
	}
	return false
}
