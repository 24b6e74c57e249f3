package classify

import (
	"regexp"

	"github.com/docstruct/docstruct/model"
)

// ListPattern pairs a marker regex with the list style it indicates.
// The first submatch, if any, is taken as the marker text.
type ListPattern struct {
	Pattern *regexp.Regexp
	Style   model.ListStyle
}

// Config holds configuration for element classification
type Config struct {
	// HeaderRatio is the fraction of the page height, measured from the top,
	// treated as the running-header band.
	// Default: 0.15
	HeaderRatio float64

	// FooterRatio is the fraction of the page height, measured from the
	// bottom, treated as the running-footer band.
	// Default: 0.15
	FooterRatio float64

	// ContinuationRatio is the top band in which sentence continuations from
	// the previous page are recognised.
	// Default: 0.17
	ContinuationRatio float64

	// IndentBase is the x position (points) of a top-level list item
	// Default: 106
	IndentBase float64

	// IndentStep is the extra indentation (points) of each nesting level
	// Default: 30
	IndentStep float64

	// IndentTolerance is the slack (points) allowed around each level
	// Default: 5
	IndentTolerance float64

	// MaxIndentLevel caps the computed list nesting level
	// Default: 3
	MaxIndentLevel int

	// MaxCaptionLength is the longest text (runes) considered as a caption
	// Default: 200
	MaxCaptionLength int

	// MaxHeaderLength is the longest text (runes) considered as a page header
	// Default: 200
	MaxHeaderLength int

	// MaxFooterLength is the longest text (runes) considered as a page footer
	// Default: 300
	MaxFooterLength int

	// MaxSectionHeaderLength is the longest text (runes) considered as a section header
	// Default: 150
	MaxSectionHeaderLength int

	// MaxClauseLength is the longest text (runes) for which a clause ending
	// marks a list item
	// Default: 200
	MaxClauseLength int

	// GarbledHighByteRatio is the share of U+0080..U+00FF runes above which
	// text is flagged as garbled.
	// Default: 0.3
	GarbledHighByteRatio float64

	// GarbledLatin1Ratio is the share of Latin-1 punctuation and accented
	// capitals above which text is flagged as garbled.
	// Default: 0.2
	GarbledLatin1Ratio float64

	// ListPatterns are tried in order; the first match wins
	ListPatterns []ListPattern

	// ListExcludes veto ListPatterns, e.g. "- 3 -" page numbers
	ListExcludes []*regexp.Regexp

	// ClauseEndings mark indented clause-style list items (…こと, …もの)
	ClauseEndings []*regexp.Regexp

	// FooterPatterns are matched against lower-cased text in the footer band
	FooterPatterns []*regexp.Regexp

	// CaptionPatterns match "Figure N." style prefixes
	CaptionPatterns []*regexp.Regexp

	// SectionPatterns match numbered or bracketed section headings
	SectionPatterns []*regexp.Regexp

	// SectionExcludes veto SectionPatterns (debug labels emitted by some detectors)
	SectionExcludes []*regexp.Regexp

	// ContinuationPatterns match text that continues a sentence from the previous page
	ContinuationPatterns []*regexp.Regexp
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		HeaderRatio:            0.15,
		FooterRatio:            0.15,
		ContinuationRatio:      0.17,
		IndentBase:             106,
		IndentStep:             30,
		IndentTolerance:        5,
		MaxIndentLevel:         3,
		MaxCaptionLength:       200,
		MaxHeaderLength:        200,
		MaxFooterLength:        300,
		MaxSectionHeaderLength: 150,
		MaxClauseLength:        200,
		GarbledHighByteRatio:   0.3,
		GarbledLatin1Ratio:     0.2,
		ListPatterns:           defaultListPatterns(),
		ListExcludes: []*regexp.Regexp{
			regexp.MustCompile(`^\s*[-－‐―ー–—]\s*\d+\s*[-－‐―ー–—]\s*$`),
		},
		ClauseEndings: []*regexp.Regexp{
			regexp.MustCompile(`こと[。、]?$`),
			regexp.MustCompile(`もの[。、]?$`),
			regexp.MustCompile(`ため[。、]?$`),
			regexp.MustCompile(`必要がある[。、]?$`),
			regexp.MustCompile(`ものとする[。、]?$`),
			regexp.MustCompile(`場合[。、]?$`),
			regexp.MustCompile(`す\s*ること[。、]?$`),
			regexp.MustCompile(`る\s*こと[。、]?$`),
		},
		FooterPatterns: []*regexp.Regexp{
			regexp.MustCompile(`copyright.*\d{4}`),
			regexp.MustCompile(`©.*\d{4}`),
			regexp.MustCompile(`\(c\).*\d{4}`),
			regexp.MustCompile(`^\s*\d+\s*$`),
			regexp.MustCompile(`^\s*-\s*\d+\s*-\s*$`),
			regexp.MustCompile(`^\s*\|\s*\d+\s*\|\s*$`),
			regexp.MustCompile(`^\s*page\s+\d+(\s+of\s+\d+)?\s*$`),
			regexp.MustCompile(`^\s*\d+\s*/\s*\d+\s*$`),
			regexp.MustCompile(`all rights reserved`),
			regexp.MustCompile(`株式会社`),
			regexp.MustCompile(`有限会社`),
			regexp.MustCompile(`co\.,?\s*ltd`),
			regexp.MustCompile(`corporation`),
			regexp.MustCompile(`inc\.`),
			regexp.MustCompile(`https?://`),
			regexp.MustCompile(`www\.`),
			regexp.MustCompile(`@.*\.(com|org|jp|gov)`),
			regexp.MustCompile(`confidential`),
			regexp.MustCompile(`機密`),
			regexp.MustCompile(`内部資料`),
			regexp.MustCompile(`社外秘`),
		},
		CaptionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^図\s*\d+[.\s:：]`),
			regexp.MustCompile(`^表\s*\d+[.\s:：]`),
			regexp.MustCompile(`^写真\s*\d+[.\s:：]`),
			regexp.MustCompile(`^グラフ\s*\d+[.\s:：]`),
			regexp.MustCompile(`^チャート\s*\d+[.\s:：]`),
			regexp.MustCompile(`^(?i)(figure|fig\.|table|chart|graph|image)\s*\d+[.\s:]`),
		},
		SectionPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^第\s*\d+\s*(条|章|節|項)`),
			regexp.MustCompile(`^[【\[]\s*.+\s*[】\]]`),
			regexp.MustCompile(`^(?i)(chapter|section|article)\s+\d+`),
			regexp.MustCompile(`^\d+\.\d+\s+`),
			regexp.MustCompile(`^[(（][^)）]{1,30}[)）]$`),
		},
		SectionExcludes: []*regexp.Regexp{
			regexp.MustCompile(`^(?i)(text|section_header)\s+#\d+`),
		},
		ContinuationPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^[わらずものことためにはでがをとも]`),
			regexp.MustCompile(`^[、。，．]`),
		},
	}
}

func defaultListPatterns() []ListPattern {
	return []ListPattern{
		{regexp.MustCompile(`^\s*([・·•▪▫◆◇■□★☆○●◎◉‣⁃])\s*\S`), model.ListStyleBullet},
		{regexp.MustCompile(`^\s*([-－‐―ー–—])\s+\S`), model.ListStyleDash},
		{regexp.MustCompile(`^\s*([(（]\s*\d+\s*[)）])`), model.ListStyleNumbered},
		{regexp.MustCompile(`^\s*([①-⑳])`), model.ListStyleCircled},
		{regexp.MustCompile(`^\s*([ⅰⅱⅲⅳⅴⅵⅶⅷⅸⅹⅠⅡⅢⅣⅤⅥⅦⅧⅨⅩ]\s*[.．)）])`), model.ListStyleRoman},
		{regexp.MustCompile(`^\s*([ivxlcdm]+\s*[.)\]])\s+`), model.ListStyleRoman},
		{regexp.MustCompile(`^\s*([IVXLCDM]+\s*[.)\]])\s+`), model.ListStyleRoman},
		{regexp.MustCompile(`^\s*([a-zA-Zａ-ｚＡ-Ｚ]\s*[.．)）\]])\s+`), model.ListStyleLettered},
		{regexp.MustCompile(`^\s*(\d+[)）])\s*\S`), model.ListStyleNumbered},
		{regexp.MustCompile(`^\s*([→⇒▶▷►▸➤➜])\s*\S`), model.ListStyleArrow},
		{regexp.MustCompile(`^\s*([※＊])\s*\S`), model.ListStyleNote},
		{regexp.MustCompile(`^\s*([☐☑✓✔✗✘])\s*\S`), model.ListStyleBullet},
	}
}
