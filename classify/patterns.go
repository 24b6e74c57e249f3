package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// normalize folds full-width forms and compatibility characters so that one
// set of ASCII patterns covers both "第１章" and "第1章".
func normalize(s string) string {
	return norm.NFKC.String(s)
}

// IsSectionHeader reports whether text looks like a numbered or bracketed
// section heading ("第1章", "【概要】", "Chapter 2", "1.1 Scope").
func (c *Classifier) IsSectionHeader(text string) bool {
	trimmed := strings.TrimSpace(normalize(text))
	if trimmed == "" || utf8.RuneCountInString(trimmed) > c.config.MaxSectionHeaderLength {
		return false
	}
	for _, re := range c.config.SectionExcludes {
		if re.MatchString(trimmed) {
			return false
		}
	}
	for _, re := range c.config.SectionPatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return utf8.RuneCountInString(trimmed) < 50 && isUpperText(trimmed)
}

// isUpperText reports whether s has at least one cased letter and no
// lower-case ones.
func isUpperText(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

// IsCaption reports whether text starts with a "Figure N" style prefix
func (c *Classifier) IsCaption(text string) bool {
	trimmed := strings.TrimSpace(normalize(text))
	if trimmed == "" || utf8.RuneCountInString(trimmed) > c.config.MaxCaptionLength {
		return false
	}
	for _, re := range c.config.CaptionPatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	return false
}

// IsFooterText reports whether text matches a running-footer pattern
// (copyright line, page number, URL, confidentiality marker). Position is
// not considered.
func (c *Classifier) IsFooterText(text string) bool {
	trimmed := strings.TrimSpace(normalize(text))
	if trimmed == "" || utf8.RuneCountInString(trimmed) > c.config.MaxFooterLength {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, re := range c.config.FooterPatterns {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// IsContinuationText reports whether text reads as the tail of a sentence
// begun on the previous page: it opens with a particle, with punctuation,
// or with a lower-case letter.
func (c *Classifier) IsContinuationText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	for _, re := range c.config.ContinuationPatterns {
		if re.MatchString(trimmed) {
			return true
		}
	}
	first, _ := utf8.DecodeRuneInString(trimmed)
	return unicode.IsLower(first)
}
