package classify

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstruct/docstruct/model"
)

var a4 = model.PageGeometry{Index: 0, Width: 595, Height: 842}

// body is a box in the middle of an A4 page
var body = model.NewBBox(106, 400, 500, 420)

func TestClassifyListOverridesHint(t *testing.T) {
	c := New()

	tests := []struct {
		name   string
		hint   string
		text   string
		marker string
		style  model.ListStyle
	}{
		{"katakana middle dot without space", "text", "・項目A", "・", model.ListStyleBullet},
		{"bullet under title hint", "title", "• First point", "•", model.ListStyleBullet},
		{"section header hint", "section_header", "■ 注意事項", "■", model.ListStyleBullet},
		{"parenthesized numeral", "text", "(1) 対象範囲", "(1)", model.ListStyleNumbered},
		{"full-width parenthesized numeral", "text", "（２）適用", "(2)", model.ListStyleNumbered},
		{"circled numeral", "text", "①申請書を提出する", "①", model.ListStyleCircled},
		{"full-width roman", "text", "Ⅱ．手続き", "Ⅱ．", model.ListStyleRoman},
		{"lower roman", "text", "iv. fourth item", "iv.", model.ListStyleRoman},
		{"lettered", "text", "b) second option", "b)", model.ListStyleLettered},
		{"dash", "text", "- dashed item", "-", model.ListStyleDash},
		{"arrow", "text", "→ 次へ進む", "→", model.ListStyleArrow},
		{"note mark", "text", "※ 詳細は別紙", "※", model.ListStyleNote},
		{"indented clause", "text", "　書類を提出すること。", "", model.ListStyleClause},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := c.Classify(model.Ingest(tt.hint, body, tt.text), a4)
			assert.Equal(t, model.RoleListItem, el.Role)
			require.NotNil(t, el.List)
			assert.Equal(t, tt.marker, el.List.Marker)
			assert.Equal(t, tt.style, el.List.Style)
		})
	}
}

func TestClassifyNotList(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		text string
	}{
		{"clause ending without indent", "書類を提出すること。"},
		{"negative number", "-5 degrees is cold"},
		{"plain sentence", "本文です。"},
		{"word starting with i", "in this chapter we discuss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := c.Classify(model.Ingest("text", body, tt.text), a4)
			assert.NotEqual(t, model.RoleListItem, el.Role)
			assert.Nil(t, el.List)
		})
	}
}

func TestClassifyKeepsUnambiguousHints(t *testing.T) {
	c := New()

	tests := []struct {
		hint string
		text string
		want model.Role
	}{
		{"table", "・not a list", model.RoleTable},
		{"figure", "Figure 1. ignored", model.RoleFigure},
		{"table_cell", "1", model.RoleTableCell},
		{"formula", "E = mc^2", model.RoleFormula},
		{"caption", "some caption", model.RoleCaption},
		{"page_footer", "anything", model.RolePageFooter},
		{"footnote", "1) see appendix", model.RoleFootnote},
		{"list", "", model.RoleList},
	}

	for _, tt := range tests {
		t.Run(tt.hint, func(t *testing.T) {
			el := c.Classify(model.Ingest(tt.hint, body, tt.text), a4)
			assert.Equal(t, tt.want, el.Role)
		})
	}
}

func TestClassifyPosition(t *testing.T) {
	c := New()

	top := model.NewBBox(50, 800, 300, 820)
	bottom := model.NewBBox(250, 20, 350, 40)

	tests := []struct {
		name string
		hint string
		bbox model.BBox
		text string
		want model.Role
	}{
		{"running header", "text", top, "社内報 2024年春号", model.RolePageHeader},
		{"section heading at top stays heading", "text", top, "第2章 背景", model.RoleSectionHeader},
		{"continuation at top is text", "text", top, "ものとする。詳細は次の通り", model.RoleText},
		{"lowercase continuation at top", "text", top, "and so the argument continues", model.RoleText},
		{"title hint at top stays title", "title", top, "Annual Report", model.RoleTitle},
		{"page number footer", "text", bottom, "12", model.RolePageFooter},
		{"dashed page number", "text", bottom, "- 3 -", model.RolePageFooter},
		{"copyright footer", "text", bottom, "Copyright 2023 Example", model.RolePageFooter},
		{"confidential footer", "text", bottom, "社外秘", model.RolePageFooter},
		{"url footer", "text", bottom, "https://example.com", model.RolePageFooter},
		{"ordinary text at bottom", "text", bottom, "本文の続きです。", model.RoleText},
		{"footer pattern mid page", "text", body, "https://example.com", model.RoleText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := c.Classify(model.Ingest(tt.hint, tt.bbox, tt.text), a4)
			assert.Equal(t, tt.want, el.Role)
		})
	}
}

func TestClassifyContinuationFlag(t *testing.T) {
	c := New()
	el := c.Classify(model.Ingest("text", model.NewBBox(50, 800, 300, 820), "らず、次の手順に従う"), a4)
	assert.True(t, el.Flags.Has(model.FlagContinuation))
	assert.Equal(t, model.RoleText, el.Role)
}

func TestClassifyCaptionAndSection(t *testing.T) {
	c := New()

	tests := []struct {
		text string
		want model.Role
	}{
		{"図1. システム構成", model.RoleCaption},
		{"表 2 集計結果", model.RoleCaption},
		{"Figure 3: Architecture", model.RoleCaption},
		{"table 4. results", model.RoleCaption},
		{"第１章 概要", model.RoleSectionHeader},
		{"第3条 (目的)", model.RoleSectionHeader},
		{"【重要】", model.RoleSectionHeader},
		{"Chapter 2 Methods", model.RoleSectionHeader},
		{"2.1 Scope of work", model.RoleSectionHeader},
		{"INTRODUCTION", model.RoleSectionHeader},
		{"TEXT #4", model.RoleText},
		{"Text #4", model.RoleText},
		{"本文です。", model.RoleText},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			el := c.Classify(model.Ingest("text", body, tt.text), a4)
			assert.Equal(t, tt.want, el.Role)
		})
	}
}

func TestIndentLevel(t *testing.T) {
	c := New()

	tests := []struct {
		x    float64
		want int
	}{
		{72, 0},
		{111, 0},
		{112, 1},
		{141, 1},
		{171, 2},
		{172, 3},
		{400, 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.IndentLevel(tt.x), "x=%v", tt.x)
	}

	el := c.Classify(model.Ingest("text", model.NewBBox(140, 400, 400, 420), "・子項目"), a4)
	require.NotNil(t, el.List)
	assert.Equal(t, 1, el.List.IndentLevel)
	assert.True(t, el.List.IsNested)
}

func TestListItemHintWithoutMarker(t *testing.T) {
	el := New().Classify(model.Ingest("list_item", body, "plain item text"), a4)
	assert.Equal(t, model.RoleListItem, el.Role)
	require.NotNil(t, el.List)
	assert.Equal(t, 0, el.List.IndentLevel)
}

func TestIsGarbled(t *testing.T) {
	c := New()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"ascii", "Quarterly report", false},
		{"japanese", "第1章 概要", false},
		{"mojibake", "ã\u0081\u0093ã\u0082\u0093ã\u0081«ã\u0081¡ã\u0081¯", true},
		{"latin1 soup", "Ã¤Ã¶Ã¼ ¿¡", true},
		{"hash with late latin", "#Ëñ data", true},
		{"control character", "abc\x01def", true},
		{"replacement rune", "abc�def", true},
		{"accented word", "café au lait", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsGarbled(tt.text))
		})
	}
}

func TestGarbledIsFlaggedNotDropped(t *testing.T) {
	var buf bytes.Buffer
	c := New().WithLogger(zerolog.New(&buf))

	text := "ã¤ã¶ã¼ ¿¡"
	el := c.Classify(model.Ingest("text", body, text), a4)

	assert.True(t, el.Flags.Has(model.FlagGarbled))
	assert.Equal(t, model.RoleText, el.Role)
	assert.Equal(t, text, el.Text)
	assert.Contains(t, buf.String(), "text looks garbled")
}

func TestDegenerateBBoxFlagged(t *testing.T) {
	el := New().Classify(model.Ingest("text", model.NewBBox(10, 10, 10, 10), "dot"), a4)
	assert.True(t, el.Flags.Has(model.FlagDegenerate))
}

func TestClassifyPagePreservesOrder(t *testing.T) {
	els := []model.DetectedElement{
		model.Ingest("title", model.NewBBox(50, 780, 300, 800), "第1章 概要"),
		model.Ingest("text", model.NewBBox(50, 700, 500, 770), "本文です。"),
		model.Ingest("text", body, "・項目A"),
	}
	out := New().ClassifyPage(els, a4)
	require.Len(t, out, 3)
	assert.Equal(t, model.RoleTitle, out[0].Role)
	assert.Equal(t, model.RoleText, out[1].Role)
	assert.Equal(t, model.RoleListItem, out[2].Role)
}

func TestIsListItemText(t *testing.T) {
	assert.True(t, IsListItemText("・項目A"))
	assert.True(t, IsListItemText("（３）その他"))
	assert.False(t, IsListItemText("本文です。"))
	assert.False(t, IsListItemText(""))
}

func TestExplicitTextNeedsWholeBoxInBand(t *testing.T) {
	c := New()

	// Center is in the top band but the box extends below it.
	straddling := model.NewBBox(50, 700, 500, 770)

	el := c.Classify(model.Ingest("text", straddling, "本文です。"), a4)
	assert.Equal(t, model.RoleText, el.Role)

	el = c.Classify(model.Ingest("", straddling, "本文です。"), a4)
	assert.Equal(t, model.RolePageHeader, el.Role)
}
