package model

import (
	"sort"
	"time"
)

// Section is a run of content opened by a heading. Content holds node IDs;
// the nodes themselves stay owned by their page forests.
type Section struct {
	ID          string   `json:"section_id"`
	Title       string   `json:"title"`
	Level       int      `json:"level"`
	StartPage   int      `json:"start_page"`
	EndPage     int      `json:"end_page"`
	HeadingID   string   `json:"heading_id,omitempty"`
	Content     []string `json:"content_elements"`
	Subsections []string `json:"subsections,omitempty"`
	Summary     string   `json:"content_summary"`
}

// HeadingInfo is a heading collected across the document
type HeadingInfo struct {
	NodeID     string  `json:"element_id"`
	Text       string  `json:"text"`
	Page       int     `json:"page"`
	Level      int     `json:"estimated_level"`
	Confidence float64 `json:"confidence"`
}

// TableContinuation links two tables that probably form one logical table
// split across a page break.
type TableContinuation struct {
	FromID     string  `json:"from_id"`
	ToID       string  `json:"to_id"`
	FromPage   int     `json:"from_page"`
	ToPage     int     `json:"to_page"`
	Confidence float64 `json:"confidence"`
}

// TOCEntry is one line of the table of contents
type TOCEntry struct {
	SectionID string `json:"section_id"`
	Title     string `json:"title"`
	Page      int    `json:"page"`
	Level     int    `json:"level"`
}

// NavigationMap supports jumping around a reconstructed document
type NavigationMap struct {
	TableOfContents []TOCEntry       `json:"table_of_contents"`
	PageIndex       map[int][]string `json:"page_index"`
	ReadingOrder    []string         `json:"reading_order"`
}

// SectionsOnPage returns the IDs of sections spanning the given page
func (m NavigationMap) SectionsOnPage(page int) []string {
	return m.PageIndex[page]
}

// Statistics are element counts gathered during analysis
type Statistics struct {
	ElementsByRole            map[string]int `json:"elements_by_role"`
	ElementsPerPage           map[int]int    `json:"elements_per_page"`
	AverageElementsPerSection float64        `json:"average_elements_per_section"`
}

// Summary is the headline description of a document's structure
type Summary struct {
	SectionCount        int     `json:"section_count"`
	DocumentType        string  `json:"document_type"`
	StructureConfidence float64 `json:"structure_confidence"`
}

// DocumentStructure is the section-level view of a document
type DocumentStructure struct {
	Headings           []HeadingInfo       `json:"headings"`
	Sections           []*Section          `json:"sections"`
	TableContinuations []TableContinuation `json:"table_continuations"`
	Navigation         NavigationMap       `json:"navigation_map"`
	Statistics         Statistics          `json:"statistics"`
	Summary            Summary             `json:"document_structure_summary"`
}

// Section returns the section with the given ID, or nil
func (d *DocumentStructure) Section(id string) *Section {
	for _, s := range d.Sections {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// TopLevelSections returns sections not nested under another section
func (d *DocumentStructure) TopLevelSections() []*Section {
	nested := make(map[string]bool)
	for _, s := range d.Sections {
		for _, id := range s.Subsections {
			nested[id] = true
		}
	}
	var top []*Section
	for _, s := range d.Sections {
		if !nested[s.ID] {
			top = append(top, s)
		}
	}
	return top
}

// ExtractionAttempt records one strategy tried by the fallback orchestrator
type ExtractionAttempt struct {
	Strategy        string        `json:"strategy_name"`
	Success         bool          `json:"success"`
	ElementsPerPage []int         `json:"elements_per_page,omitempty"`
	FailureReason   string        `json:"failure_reason,omitempty"`
	Duration        time.Duration `json:"duration"`
	Final           bool          `json:"final"`
}

// ElementCount totals ElementsPerPage
func (a ExtractionAttempt) ElementCount() int {
	total := 0
	for _, n := range a.ElementsPerPage {
		total += n
	}
	return total
}

// SortedPages returns the keys of a page-keyed map in ascending order
func SortedPages[V any](m map[int]V) []int {
	pages := make([]int, 0, len(m))
	for p := range m {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}
