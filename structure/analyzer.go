package structure

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/docstruct/docstruct/model"
)

// Document types reported in the summary
const (
	TypeAcademicPaper   = "academic_paper"
	TypeDataReport      = "data_report"
	TypePresentation    = "presentation"
	TypeGeneralDocument = "general_document"
)

// Config holds configuration for structure analysis
type Config struct {
	// HeadingKeywords raise heading confidence when present (lowercase)
	HeadingKeywords []string

	// ShortHeadingLength is the rune count under which a heading is
	// considered short
	// Default: 50
	ShortHeadingLength int

	// TypeSampleSize is how many leading elements are searched for "abstract"
	// Default: 10
	TypeSampleSize int

	// TableShare is the table fraction above which a document is a data report
	// Default: 0.3
	TableShare float64

	// FigureShare is the figure fraction above which a document is a presentation
	// Default: 0.2
	FigureShare float64

	// WidthTolerance is the relative width difference allowed between two
	// halves of a continued table
	// Default: 0.1
	WidthTolerance float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		HeadingKeywords: []string{
			"章", "節", "項", "第", "部", "編", "巻", "号",
			"introduction", "conclusion", "summary", "abstract",
			"background", "method", "result", "discussion",
		},
		ShortHeadingLength: 50,
		TypeSampleSize:     10,
		TableShare:         0.3,
		FigureShare:        0.2,
		WidthTolerance:     0.1,
	}
}

// Analyzer derives the section-level view of a document from its finalized
// page forests. It never modifies the nodes it reads.
type Analyzer struct {
	config Config
	log    zerolog.Logger
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(DefaultConfig())
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config Config) *Analyzer {
	return &Analyzer{config: config, log: zerolog.Nop()}
}

// WithLogger returns a copy of the analyzer that logs to l
func (a *Analyzer) WithLogger(l zerolog.Logger) *Analyzer {
	cp := *a
	cp.log = l.With().Str("component", "structure").Logger()
	return &cp
}

// Analyze builds headings, sections, cross-page table links, navigation
// and statistics for the document.
func (a *Analyzer) Analyze(pages []*model.Page) *model.DocumentStructure {
	flow := documentFlow(pages)

	headings := a.collectHeadings(flow)
	sections := buildSections(flow)

	ds := &model.DocumentStructure{
		Headings:           headings,
		Sections:           sections,
		TableContinuations: a.detectContinuations(pages),
		Navigation:         buildNavigation(sections),
		Statistics:         buildStatistics(pages, sections),
		Summary: model.Summary{
			SectionCount:        len(sections),
			DocumentType:        a.documentType(flow),
			StructureConfidence: structureConfidence(headings),
		},
	}

	a.log.Debug().
		Int("headings", len(headings)).
		Int("sections", len(sections)).
		Int("continuations", len(ds.TableContinuations)).
		Str("type", ds.Summary.DocumentType).
		Float64("confidence", ds.Summary.StructureConfidence).
		Msg("document structure analyzed")
	return ds
}

// documentFlow returns every node except table cells, ordered by page and
// then by detection order. Cells stay with their table.
func documentFlow(pages []*model.Page) []*model.HierarchyNode {
	ordered := make([]*model.Page, 0, len(pages))
	for _, p := range pages {
		if p != nil {
			ordered = append(ordered, p)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})

	var flow []*model.HierarchyNode
	for _, p := range ordered {
		flow = append(flow, pageFlow(p)...)
	}
	return flow
}

func pageFlow(p *model.Page) []*model.HierarchyNode {
	var nodes []*model.HierarchyNode
	for _, n := range p.Flatten() {
		if n.Role != model.RoleTableCell {
			nodes = append(nodes, n)
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Order < nodes[j].Order
	})
	return nodes
}

func (a *Analyzer) collectHeadings(flow []*model.HierarchyNode) []model.HeadingInfo {
	var headings []model.HeadingInfo
	for _, n := range flow {
		if !n.Role.IsHeading() {
			continue
		}
		headings = append(headings, model.HeadingInfo{
			NodeID:     n.ID,
			Text:       n.Text,
			Page:       n.Page,
			Level:      n.Level,
			Confidence: a.HeadingConfidence(n.Text),
		})
	}
	return headings
}

// HeadingConfidence scores how heading-like text is. Short text and
// heading keywords both raise the score.
func (a *Analyzer) HeadingConfidence(text string) float64 {
	confidence := 0.5
	if utf8.RuneCountInString(text) < a.config.ShortHeadingLength {
		confidence += 0.2
	}
	lower := strings.ToLower(text)
	for _, kw := range a.config.HeadingKeywords {
		if strings.Contains(lower, kw) {
			confidence += 0.3
			break
		}
	}
	return min(confidence, 1.0)
}

func structureConfidence(headings []model.HeadingInfo) float64 {
	if len(headings) == 0 {
		return 0
	}
	var total float64
	levels := make(map[int]bool)
	for _, h := range headings {
		total += h.Confidence
		levels[h.Level] = true
	}
	bonus := min(float64(len(levels))*0.2, 0.4)
	return min(total/float64(len(headings))+bonus, 1.0)
}

func (a *Analyzer) documentType(flow []*model.HierarchyNode) string {
	if len(flow) == 0 {
		return TypeGeneralDocument
	}

	sample := flow
	if len(sample) > a.config.TypeSampleSize {
		sample = sample[:a.config.TypeSampleSize]
	}
	texts := make([]string, len(sample))
	for i, n := range sample {
		texts[i] = n.Text
	}
	if strings.Contains(strings.ToLower(strings.Join(texts, " ")), "abstract") {
		return TypeAcademicPaper
	}

	var tables, figures int
	for _, n := range flow {
		switch n.Role {
		case model.RoleTable:
			tables++
		case model.RoleFigure:
			figures++
		}
	}
	total := float64(len(flow))
	switch {
	case float64(tables) > total*a.config.TableShare:
		return TypeDataReport
	case float64(figures) > total*a.config.FigureShare:
		return TypePresentation
	default:
		return TypeGeneralDocument
	}
}
