package hierarchy

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/docstruct/docstruct/coords"
	"github.com/docstruct/docstruct/model"
)

// State is the phase a page forest has reached
type State int

const (
	Unclassified State = iota
	SemanticAssigned
	SpatiallyCorrected
	Finalized
)

func (s State) String() string {
	switch s {
	case SemanticAssigned:
		return "semantic-assigned"
	case SpatiallyCorrected:
		return "spatially-corrected"
	case Finalized:
		return "finalized"
	default:
		return "unclassified"
	}
}

// Config holds configuration for hierarchy construction
type Config struct {
	// Scale is the render scale used for image-space coordinates
	// Default: 2.0
	Scale float64

	// ContainmentMargin is the tolerance, in image-space units, of the
	// spatial containment test
	// Default: 5
	ContainmentMargin float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Scale:             coords.DefaultScale,
		ContainmentMargin: coords.DefaultMargin,
	}
}

// Builder turns classified elements into per-page forests
type Builder struct {
	config Config
	log    zerolog.Logger
}

// NewBuilder creates a builder with default configuration
func NewBuilder() *Builder {
	return NewBuilderWithConfig(DefaultConfig())
}

// NewBuilderWithConfig creates a builder with custom configuration
func NewBuilderWithConfig(config Config) *Builder {
	return &Builder{config: config, log: zerolog.Nop()}
}

// WithLogger returns a copy of the builder that logs to l
func (b *Builder) WithLogger(l zerolog.Logger) *Builder {
	cp := *b
	cp.log = l.With().Str("component", "hierarchy").Logger()
	return &cp
}

// draft is a node under construction. IDs are only attached at Finalize.
type draft struct {
	node     *model.HierarchyNode
	level    int
	parent   int // index into Forest.drafts, or -1
	children []int
}

// Forest is one page's hierarchy before and after ID assignment
type Forest struct {
	page   model.PageGeometry
	drafts []*draft
	state  State
	result *model.Page
}

// State returns the phase the forest has reached
func (f *Forest) State() State {
	return f.state
}

// Len returns the number of elements on the page
func (f *Forest) Len() int {
	return len(f.drafts)
}

// Assemble builds the parent/child structure of one page: a semantic pass
// seeded by heading levels, then spatial correction for tables and lists.
// It touches no shared state and may run concurrently for different pages.
func (b *Builder) Assemble(page model.PageGeometry, els []model.ClassifiedElement) *Forest {
	f := &Forest{page: page, state: Unclassified}
	f.drafts = make([]*draft, len(els))
	for i, el := range els {
		f.drafts[i] = b.newDraft(page, i, el)
	}

	f.assignSemantic()
	f.correctSpatial(b.config.ContainmentMargin)

	b.log.Debug().
		Int("page", page.Index+1).
		Int("elements", len(els)).
		Int("roots", len(f.rootIndexes())).
		Msg("page hierarchy assembled")
	return f
}

func (b *Builder) newDraft(page model.PageGeometry, i int, el model.ClassifiedElement) *draft {
	pdf, degenerate := coords.Sanitize(el.BBox)
	flags := el.Flags
	if degenerate {
		flags |= model.FlagDegenerate
	}

	n := &model.HierarchyNode{
		Role:    el.Role,
		BBox:    coords.ToImageSpace(pdf, page.Height, b.config.Scale, el.Role),
		PDFBBox: pdf,
		Text:    el.Text,
		Page:    page.Index + 1,
		Order:   i,
		List:    el.List,
		Cell:    el.Cell,
		Flags:   flags,
	}
	n.Level = SemanticLevel(el.Role, el.Text, TopRatio(pdf, page.Height))
	return &draft{node: n, level: n.Level, parent: -1}
}

// assignSemantic sorts elements by (level, detection order) and gives each
// the nearest element before it in detection order whose level is strictly
// lower. Levels are processed lowest first, so every candidate parent is
// already placed when its children are visited.
func (f *Forest) assignSemantic() {
	ranked := make([]int, len(f.drafts))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		da, db := f.drafts[ranked[a]], f.drafts[ranked[b]]
		if da.level != db.level {
			return da.level < db.level
		}
		return da.node.Order < db.node.Order
	})

	// anchors holds candidate parents of strictly lower level, sorted by
	// detection order (draft index == detection order).
	var anchors []int
	for start := 0; start < len(ranked); {
		level := f.drafts[ranked[start]].level
		end := start
		for end < len(ranked) && f.drafts[ranked[end]].level == level {
			end++
		}
		group := ranked[start:end]

		if level != FurnitureLevel {
			for _, idx := range group {
				if p := precedingAnchor(anchors, idx); p >= 0 {
					f.attach(p, idx)
				}
			}
			anchors = mergeSorted(anchors, parentable(f.drafts, group))
		}
		start = end
	}
	f.state = SemanticAssigned
}

// parentable drops drafts with degenerate boxes, which never take children
func parentable(drafts []*draft, group []int) []int {
	out := make([]int, 0, len(group))
	for _, idx := range group {
		if !drafts[idx].node.Flags.Has(model.FlagDegenerate) {
			out = append(out, idx)
		}
	}
	return out
}

// precedingAnchor returns the last anchor before idx, or -1
func precedingAnchor(anchors []int, idx int) int {
	pos := sort.SearchInts(anchors, idx)
	if pos == 0 {
		return -1
	}
	return anchors[pos-1]
}

func mergeSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	sort.Ints(out)
	return out
}

func (f *Forest) attach(parent, child int) {
	f.detach(child)
	f.drafts[child].parent = parent
	p := f.drafts[parent]
	p.children = append(p.children, child)
	sort.Ints(p.children)
}

func (f *Forest) detach(child int) {
	old := f.drafts[child].parent
	if old < 0 {
		return
	}
	p := f.drafts[old]
	for i, c := range p.children {
		if c == child {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	f.drafts[child].parent = -1
}

func (f *Forest) rootIndexes() []int {
	var roots []int
	for i, d := range f.drafts {
		if d.parent < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

// Finalize assigns global IDs from counter in depth-first pre-order and
// returns the finished page. Elements that neither phase placed under a
// parent become roots. Calling Finalize again returns the same page without
// touching the counter.
func (f *Forest) Finalize(counter *IDCounter) *model.Page {
	if f.state == Finalized {
		return f.result
	}

	page := &model.Page{
		Number: f.page.Index + 1,
		Width:  f.page.Width,
		Height: f.page.Height,
	}
	for _, r := range f.rootIndexes() {
		page.Roots = append(page.Roots, f.emit(r, "", counter))
	}

	f.result = page
	f.state = Finalized
	return page
}

func (f *Forest) emit(idx int, parentID string, counter *IDCounter) *model.HierarchyNode {
	d := f.drafts[idx]
	n := d.node
	n.ID = counter.Next()
	n.ParentID = parentID
	n.Children = make([]*model.HierarchyNode, 0, len(d.children))
	for _, c := range d.children {
		n.Children = append(n.Children, f.emit(c, n.ID, counter))
	}
	return n
}

// Build runs Assemble and Finalize for a single page
func (b *Builder) Build(page model.PageGeometry, els []model.ClassifiedElement, counter *IDCounter) *model.Page {
	return b.Assemble(page, els).Finalize(counter)
}
