package docstruct

import (
	"github.com/docstruct/docstruct/extraction"
	"github.com/docstruct/docstruct/model"
)

// PageResult is one page's finalized forest
type PageResult = model.Page

// Result is everything known about a processed document. When every
// extraction strategy failed, Status is AllFailed, PageCount is set if the
// file could still be measured, and Pages and Structure are empty.
type Result struct {
	DocumentID string                    `json:"document_id"`
	Source     string                    `json:"source,omitempty"`
	Status     extraction.Status         `json:"status"`
	MethodUsed string                    `json:"method_used,omitempty"`
	Attempts   []model.ExtractionAttempt `json:"attempts"`
	PageCount  int                       `json:"page_count"`
	Pages      []*PageResult             `json:"pages"`
	Structure  *model.DocumentStructure  `json:"document_structure,omitempty"`
	Summary    model.Summary             `json:"summary"`
	Warnings   []Warning                 `json:"warnings,omitempty"`
}

// Err returns nil when the document was reconstructed and an error wrapping
// extraction.ErrAllStrategiesFailed when it was not
func (r *Result) Err() error {
	out := extraction.Outcome{Status: r.Status, Attempts: r.Attempts}
	return out.Err()
}

// Degraded reports whether the result carries only the page count
func (r *Result) Degraded() bool {
	return r.Status == extraction.AllFailed
}

// Page returns the page with the given 1-indexed number, or nil
func (r *Result) Page(number int) *PageResult {
	for _, p := range r.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// Node finds a node anywhere in the document by ID
func (r *Result) Node(id string) *model.HierarchyNode {
	for _, p := range r.Pages {
		if n := p.Find(id); n != nil {
			return n
		}
	}
	return nil
}

// NodeCount returns the number of nodes across all pages
func (r *Result) NodeCount() int {
	total := 0
	for _, p := range r.Pages {
		total += p.NodeCount()
	}
	return total
}
