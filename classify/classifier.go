package classify

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/docstruct/docstruct/coords"
	"github.com/docstruct/docstruct/model"
)

// Classifier assigns structural roles to detected elements. It holds no
// per-document state and is safe for concurrent use.
type Classifier struct {
	config Config
	log    zerolog.Logger
}

// New creates a classifier with default configuration
func New() *Classifier {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a classifier with custom configuration
func NewWithConfig(config Config) *Classifier {
	return &Classifier{
		config: config,
		log:    zerolog.Nop(),
	}
}

// WithLogger returns a copy of the classifier that reports diagnostics to l
func (c *Classifier) WithLogger(l zerolog.Logger) *Classifier {
	cp := *c
	cp.log = l.With().Str("component", "classifier").Logger()
	return &cp
}

// Config returns the configuration in use
func (c *Classifier) Config() Config {
	return c.config
}

// Classify assigns a role to a single element.
//
// Rules apply in priority order: an unambiguous upstream hint, list markers,
// page position (running header or footer), caption prefixes, section
// heading patterns, and finally plain text.
func (c *Classifier) Classify(el model.DetectedElement, page model.PageGeometry) model.ClassifiedElement {
	out := model.ClassifiedElement{DetectedElement: el}

	if _, degenerate := coords.Sanitize(el.BBox); degenerate {
		out.Flags |= model.FlagDegenerate
		c.log.Warn().
			Int("page", page.Index+1).
			Int("order", el.Order).
			Interface("bbox", el.BBox).
			Msg("degenerate bounding box")
	}

	if c.IsGarbled(el.Text) {
		out.Flags |= model.FlagGarbled
		c.log.Warn().
			Int("page", page.Index+1).
			Int("order", el.Order).
			Str("text", preview(el.Text)).
			Msg("text looks garbled")
	}

	hinted, known := model.RoleFromHint(el.Hint)
	if known && !hinted.IsTextLike() {
		out.Role = hinted
		return out
	}

	out.Role = c.classifyText(el, hinted, page, &out)
	return out
}

func (c *Classifier) classifyText(el model.DetectedElement, hinted model.Role, page model.PageGeometry, out *model.ClassifiedElement) model.Role {
	normalized := normalize(el.Text)

	if m, ok := c.detectListMarker(el.Text, normalized); ok {
		level := c.IndentLevel(el.BBox.Normalize().X1)
		out.List = &model.ListInfo{
			IndentLevel: level,
			IsNested:    level > 0,
			Marker:      m.Marker,
			Style:       m.Style,
		}
		return model.RoleListItem
	}

	if hinted == model.RoleListItem {
		level := c.IndentLevel(el.BBox.Normalize().X1)
		out.List = &model.ListInfo{IndentLevel: level, IsNested: level > 0}
		return model.RoleListItem
	}

	if hinted == model.RoleTitle || hinted == model.RoleSectionHeader {
		return hinted
	}

	b := el.BBox.Normalize()
	explicit := hinted == model.RoleText

	if page.Height > 0 && coords.VerticalRatio(b, page.Height) <= c.config.ContinuationRatio && c.IsContinuationText(el.Text) {
		out.Flags |= model.FlagContinuation
	}

	if c.inHeaderBand(b, page, explicit) && c.isHeaderCandidate(el.Text, out.Flags) {
		return model.RolePageHeader
	}

	if c.inFooterBand(b, page, explicit) && c.IsFooterText(el.Text) {
		return model.RolePageFooter
	}

	if c.IsCaption(el.Text) {
		return model.RoleCaption
	}

	if c.IsSectionHeader(el.Text) {
		return model.RoleSectionHeader
	}

	return model.RoleText
}

// inHeaderBand reports whether b sits in the running-header band. An element
// the detector explicitly called text must lie wholly inside the band to be
// overridden; otherwise its vertical center decides.
func (c *Classifier) inHeaderBand(b model.BBox, page model.PageGeometry, explicit bool) bool {
	if page.Height <= 0 {
		return false
	}
	if explicit {
		return (page.Height-b.Y1)/page.Height <= c.config.HeaderRatio
	}
	return coords.VerticalRatio(b, page.Height) <= c.config.HeaderRatio
}

// inFooterBand is the bottom-of-page counterpart of inHeaderBand
func (c *Classifier) inFooterBand(b model.BBox, page model.PageGeometry, explicit bool) bool {
	if page.Height <= 0 {
		return false
	}
	if explicit {
		return b.Y2/page.Height <= c.config.FooterRatio
	}
	return coords.VerticalRatio(b, page.Height) >= 1-c.config.FooterRatio
}

func (c *Classifier) isHeaderCandidate(text string, flags model.Flags) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len([]rune(trimmed)) > c.config.MaxHeaderLength {
		return false
	}
	if flags.Has(model.FlagContinuation) {
		return false
	}
	return !c.IsSectionHeader(trimmed)
}

// ClassifyPage classifies every element of one page, preserving order
func (c *Classifier) ClassifyPage(els []model.DetectedElement, page model.PageGeometry) []model.ClassifiedElement {
	out := make([]model.ClassifiedElement, len(els))
	for i, el := range els {
		out[i] = c.Classify(el, page)
	}
	return out
}

func preview(s string) string {
	r := []rune(s)
	if len(r) > 40 {
		return string(r[:40]) + "…"
	}
	return s
}
