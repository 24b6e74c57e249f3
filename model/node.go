package model

// HierarchyNode is one element in a page's finalized forest. BBox is in
// image space; PDFBBox keeps the source coordinates.
type HierarchyNode struct {
	ID       string           `json:"id"`
	Role     Role             `json:"role"`
	BBox     BBox             `json:"bbox"`
	PDFBBox  BBox             `json:"bbox_pdf"`
	Text     string           `json:"text"`
	ParentID string           `json:"parent_id,omitempty"`
	Page     int              `json:"page"`  // 1-indexed
	Level    int              `json:"level"` // semantic level
	Order    int              `json:"order"` // detection order within the page
	List     *ListInfo        `json:"list_info,omitempty"`
	Cell     *TableCellRef    `json:"table_cell,omitempty"`
	Flags    Flags            `json:"-"`
	Children []*HierarchyNode `json:"children"`
}

// IsRoot reports whether the node has no parent
func (n *HierarchyNode) IsRoot() bool {
	return n.ParentID == ""
}

// AddChild appends child and points its ParentID at n
func (n *HierarchyNode) AddChild(child *HierarchyNode) {
	child.ParentID = n.ID
	n.Children = append(n.Children, child)
}

// Walk visits n and its descendants in depth-first pre-order. Returning
// false from fn stops descent below that node.
func (n *HierarchyNode) Walk(fn func(*HierarchyNode) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the subtree rooted at n
func (n *HierarchyNode) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// Page is a page's finalized forest
type Page struct {
	Number int              `json:"page_number"` // 1-indexed
	Width  float64          `json:"width"`       // points
	Height float64          `json:"height"`      // points
	Roots  []*HierarchyNode `json:"elements"`
}

// Walk visits every node on the page in document order
func (p *Page) Walk(fn func(*HierarchyNode) bool) {
	for _, r := range p.Roots {
		r.Walk(fn)
	}
}

// NodeCount returns the number of nodes reachable from the page roots
func (p *Page) NodeCount() int {
	total := 0
	for _, r := range p.Roots {
		total += r.Count()
	}
	return total
}

// Find returns the node with the given ID, or nil
func (p *Page) Find(id string) *HierarchyNode {
	var found *HierarchyNode
	p.Walk(func(n *HierarchyNode) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Flatten returns every node on the page in document order
func (p *Page) Flatten() []*HierarchyNode {
	var nodes []*HierarchyNode
	p.Walk(func(n *HierarchyNode) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}
