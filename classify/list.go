package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/docstruct/docstruct/model"
)

// listMarker describes the marker found at the start of a list item
type listMarker struct {
	Style  model.ListStyle
	Marker string
}

// detectListMarker checks raw and normalized text against the list patterns.
// Full-width forms such as "（１）" only match after normalization, while
// circled and full-width roman numerals only match before it.
func (c *Classifier) detectListMarker(raw, normalized string) (listMarker, bool) {
	for _, re := range c.config.ListExcludes {
		if re.MatchString(normalized) {
			return listMarker{}, false
		}
	}
	for _, candidate := range []string{raw, normalized} {
		for _, lp := range c.config.ListPatterns {
			m := lp.Pattern.FindStringSubmatch(candidate)
			if m == nil {
				continue
			}
			marker := m[0]
			if len(m) > 1 {
				marker = m[1]
			}
			return listMarker{Style: lp.Style, Marker: strings.TrimSpace(marker)}, true
		}
	}

	if c.isIndentedClause(raw) {
		return listMarker{Style: model.ListStyleClause}, true
	}
	return listMarker{}, false
}

// isIndentedClause matches clause-style items such as "　…すること。" that
// carry no marker. The ending alone is too common in body text, so a leading
// indent is required.
func (c *Classifier) isIndentedClause(raw string) bool {
	if !startsWithIndent(raw) {
		return false
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || utf8.RuneCountInString(trimmed) >= c.config.MaxClauseLength {
		return false
	}
	for _, re := range c.config.ClauseEndings {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

func startsWithIndent(s string) bool {
	return strings.HasPrefix(s, " ") || strings.HasPrefix(s, "\t") || strings.HasPrefix(s, "　")
}

// IndentLevel maps the left edge of a list item (PDF points) to a nesting
// level using fixed bands of IndentStep starting at IndentBase.
func (c *Classifier) IndentLevel(x1 float64) int {
	cfg := c.config
	for level := 0; level < cfg.MaxIndentLevel; level++ {
		if x1 <= cfg.IndentBase+float64(level)*cfg.IndentStep+cfg.IndentTolerance {
			return level
		}
	}
	return cfg.MaxIndentLevel
}

var defaultClassifier = New()

// IsListItemText checks if text appears to be a list item under the
// default configuration
func IsListItemText(text string) bool {
	_, ok := defaultClassifier.detectListMarker(text, normalize(text))
	return ok
}
