package hierarchy

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/docstruct/docstruct/model"
)

func classified(role model.Role, b model.BBox, text string) model.ClassifiedElement {
	return model.ClassifiedElement{
		DetectedElement: model.DetectedElement{BBox: b, Text: text},
		Role:            role,
	}
}

func unitBuilder() *Builder {
	cfg := DefaultConfig()
	cfg.Scale = 1
	return NewBuilderWithConfig(cfg)
}

// ============================================================================
// Level Tests
// ============================================================================

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		yRatio float64
		want   int
	}{
		{"chapter marker", "第1章 概要", 0.9, 1},
		{"english chapter", "Chapter 3 Results", 0.9, 1},
		{"section marker", "2.1節 背景", 0.05, 2},
		{"english section", "Section 4", 0.05, 2},
		{"subsection before section", "Subsection 4.2", 0.05, 3},
		{"clause marker", "1項", 0.05, 3},
		{"numbered section reads as chapter", "第2節 方法", 0.05, 1},
		{"numbered clause reads as chapter", "第3項 範囲", 0.9, 1},
		{"top of page", "Overview", 0.1, 1},
		{"upper middle", "Overview", 0.3, 2},
		{"lower page", "Overview", 0.7, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HeadingLevel(tt.text, tt.yRatio))
		})
	}
}

func TestSemanticLevel(t *testing.T) {
	assert.Equal(t, FurnitureLevel, SemanticLevel(model.RolePageHeader, "Header", 0))
	assert.Equal(t, FurnitureLevel, SemanticLevel(model.RolePageFooter, "- 1 -", 1))
	assert.Equal(t, CellLevel, SemanticLevel(model.RoleTableCell, "", 0.5))
	assert.Equal(t, ContentLevel, SemanticLevel(model.RoleText, "body", 0.5))
	assert.Equal(t, ContentLevel, SemanticLevel(model.RoleTable, "", 0.5))
	assert.Equal(t, 1, SemanticLevel(model.RoleTitle, "Intro", 0.1))
}

func TestTopRatio(t *testing.T) {
	assert.InDelta(t, 0.05, TopRatio(model.NewBBox(0, 0, 10, 95), 100), 1e-9)
	assert.Equal(t, 0.0, TopRatio(model.NewBBox(0, 0, 10, 95), 0))
}

// ============================================================================
// Counter Tests
// ============================================================================

func TestIDCounter(t *testing.T) {
	c := NewIDCounter()
	assert.Equal(t, "ID-1", c.Next())
	assert.Equal(t, "ID-2", c.Next())
	assert.Equal(t, 2, c.Committed())

	n, err := ParseID("ID-42")
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	_, err = ParseID("42")
	assert.Error(t, err)
	_, err = ParseID("ID-x")
	assert.Error(t, err)
}

func TestIDCounterConcurrent(t *testing.T) {
	c := NewIDCounter()
	var wg sync.WaitGroup
	seen := sync.Map{}
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, dup := seen.LoadOrStore(c.Next(), true)
				assert.False(t, dup)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1000, c.Committed())
}

// ============================================================================
// Builder Tests
// ============================================================================

func TestTitleWithBodyText(t *testing.T) {
	b := NewBuilderWithConfig(Config{Scale: 1, ContainmentMargin: 5})
	geom := model.PageGeometry{Index: 0, Width: 595, Height: 842}
	els := []model.ClassifiedElement{
		classified(model.RoleTitle, model.NewBBox(50, 780, 300, 800), "第1章 概要"),
		classified(model.RoleText, model.NewBBox(50, 700, 500, 770), "本文です。"),
	}

	page := b.Build(geom, els, NewIDCounter())

	require.Len(t, page.Roots, 1)
	root := page.Roots[0]
	assert.Equal(t, model.RoleTitle, root.Role)
	assert.Equal(t, "ID-1", root.ID)
	assert.Equal(t, model.NewBBox(50, 42, 300, 62), root.BBox)
	assert.Equal(t, 1, root.Level)
	require.Len(t, root.Children, 1)
	child := root.Children[0]
	assert.Equal(t, "本文です。", child.Text)
	assert.Equal(t, "ID-2", child.ID)
	assert.Equal(t, root.ID, child.ParentID)
	assert.Equal(t, 1, page.Number)
}

func TestTableCellsReparented(t *testing.T) {
	geom := model.PageGeometry{Width: 200, Height: 100}
	cells := []model.ClassifiedElement{
		classified(model.RoleTableCell, model.NewBBox(0, 0, 100, 50), "a"),
		classified(model.RoleTableCell, model.NewBBox(100, 0, 200, 50), "b"),
		classified(model.RoleTableCell, model.NewBBox(0, 50, 100, 100), "c"),
		classified(model.RoleTableCell, model.NewBBox(100, 50, 200, 100), "d"),
	}
	table := classified(model.RoleTable, model.NewBBox(0, 0, 200, 100), "")
	heading := classified(model.RoleSectionHeader, model.NewBBox(0, 90, 200, 100), "第2章")

	tests := []struct {
		name string
		els  []model.ClassifiedElement
	}{
		{"table first", append([]model.ClassifiedElement{table}, cells...)},
		{"table last", append(append([]model.ClassifiedElement{}, cells...), table)},
		{"heading then cells then table", append(append([]model.ClassifiedElement{heading}, cells...), table)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := unitBuilder().Build(geom, tt.els, NewIDCounter())

			var tableNode *model.HierarchyNode
			page.Walk(func(n *model.HierarchyNode) bool {
				if n.Role == model.RoleTable {
					tableNode = n
				}
				return true
			})
			require.NotNil(t, tableNode)
			require.Len(t, tableNode.Children, 4)
			for i, c := range tableNode.Children {
				assert.Equal(t, model.RoleTableCell, c.Role)
				assert.Equal(t, tableNode.ID, c.ParentID)
				if i > 0 {
					assert.Less(t, tableNode.Children[i-1].Order, c.Order)
				}
			}
			assert.Equal(t, len(tt.els), page.NodeCount())
		})
	}
}

func TestSmallestContainerWins(t *testing.T) {
	geom := model.PageGeometry{Width: 400, Height: 400}
	els := []model.ClassifiedElement{
		classified(model.RoleTable, model.NewBBox(0, 0, 400, 400), ""),
		classified(model.RoleTable, model.NewBBox(10, 10, 200, 200), ""),
		classified(model.RoleTableCell, model.NewBBox(20, 20, 100, 100), "x"),
	}

	page := unitBuilder().Build(geom, els, NewIDCounter())

	var cell *model.HierarchyNode
	page.Walk(func(n *model.HierarchyNode) bool {
		if n.Role == model.RoleTableCell {
			cell = n
		}
		return true
	})
	require.NotNil(t, cell)
	parent := page.Find(cell.ParentID)
	require.NotNil(t, parent)
	assert.Equal(t, 1, parent.Order)
}

func TestListItemsUnderList(t *testing.T) {
	geom := model.PageGeometry{Width: 595, Height: 842}
	els := []model.ClassifiedElement{
		classified(model.RoleText, model.NewBBox(50, 700, 500, 720), "intro"),
		classified(model.RoleList, model.NewBBox(50, 500, 500, 600), ""),
		classified(model.RoleListItem, model.NewBBox(60, 560, 480, 580), "・one"),
		classified(model.RoleListItem, model.NewBBox(60, 520, 480, 540), "・two"),
		classified(model.RoleListItem, model.NewBBox(60, 100, 480, 120), "・outside"),
	}

	page := unitBuilder().Build(geom, els, NewIDCounter())

	list := page.Find("ID-2")
	require.NotNil(t, list)
	assert.Equal(t, model.RoleList, list.Role)
	require.Len(t, list.Children, 2)
	assert.Equal(t, "・one", list.Children[0].Text)
	assert.Equal(t, "・two", list.Children[1].Text)

	// neither a list region nor a heading precedes it at a lower level
	assert.Len(t, page.Roots, 3)
}

func TestFurnitureIsAlwaysRoot(t *testing.T) {
	geom := model.PageGeometry{Width: 595, Height: 842}
	els := []model.ClassifiedElement{
		classified(model.RolePageHeader, model.NewBBox(50, 820, 300, 835), "Annual Report"),
		classified(model.RoleTitle, model.NewBBox(50, 760, 300, 800), "第1章"),
		classified(model.RoleText, model.NewBBox(50, 600, 500, 700), "body"),
		classified(model.RolePageFooter, model.NewBBox(250, 10, 300, 25), "- 1 -"),
	}

	page := unitBuilder().Build(geom, els, NewIDCounter())

	require.Len(t, page.Roots, 3)
	assert.Equal(t, model.RolePageHeader, page.Roots[0].Role)
	assert.Empty(t, page.Roots[0].Children)
	assert.Equal(t, model.RoleTitle, page.Roots[1].Role)
	assert.Len(t, page.Roots[1].Children, 1)
	assert.Equal(t, model.RolePageFooter, page.Roots[2].Role)
	assert.Empty(t, page.Roots[2].Children)
}

func TestNestedHeadings(t *testing.T) {
	geom := model.PageGeometry{Width: 595, Height: 842}
	els := []model.ClassifiedElement{
		classified(model.RoleTitle, model.NewBBox(50, 800, 300, 820), "第1章 はじめに"),
		classified(model.RoleSectionHeader, model.NewBBox(50, 700, 300, 720), "1.1節 目的"),
		classified(model.RoleText, model.NewBBox(50, 600, 500, 690), "目的の説明"),
		classified(model.RoleSectionHeader, model.NewBBox(50, 500, 300, 520), "1.2節 範囲"),
		classified(model.RoleText, model.NewBBox(50, 400, 500, 490), "範囲の説明"),
	}

	page := unitBuilder().Build(geom, els, NewIDCounter())

	require.Len(t, page.Roots, 1)
	title := page.Roots[0]
	require.Len(t, title.Children, 2)
	for _, sec := range title.Children {
		assert.Equal(t, model.RoleSectionHeader, sec.Role)
		require.Len(t, sec.Children, 1)
	}
	assert.Equal(t, "目的の説明", title.Children[0].Children[0].Text)
	assert.Equal(t, "範囲の説明", title.Children[1].Children[0].Text)

	// pre-order IDs
	for i, n := range page.Flatten() {
		assert.Equal(t, FormatID(i+1), n.ID)
	}
}

func TestEmptyPage(t *testing.T) {
	f := unitBuilder().Assemble(model.PageGeometry{Index: 2, Width: 10, Height: 10}, nil)
	page := f.Finalize(NewIDCounter())
	assert.Equal(t, 3, page.Number)
	assert.Empty(t, page.Roots)
}

func TestDegenerateBoxKept(t *testing.T) {
	geom := model.PageGeometry{Width: 100, Height: 100}
	els := []model.ClassifiedElement{
		classified(model.RoleText, model.NewBBox(10, 10, 10, 10), "dot"),
	}
	page := unitBuilder().Build(geom, els, NewIDCounter())
	require.Len(t, page.Roots, 1)
	assert.True(t, page.Roots[0].Flags.Has(model.FlagDegenerate))
}

func TestDegenerateBoxNeverParent(t *testing.T) {
	geom := model.PageGeometry{Width: 600, Height: 800}

	t.Run("table", func(t *testing.T) {
		els := []model.ClassifiedElement{
			classified(model.RoleTable, model.NewBBox(100, 400, 100, 400), ""),
			classified(model.RoleTableCell, model.NewBBox(98, 398, 102, 402), "cell"),
		}
		page := unitBuilder().Build(geom, els, NewIDCounter())
		require.Len(t, page.Roots, 2)
		for _, r := range page.Roots {
			assert.Empty(t, r.Children, r.Role.String())
			assert.Empty(t, r.ParentID)
		}
		assert.True(t, page.Roots[0].Flags.Has(model.FlagDegenerate))
	})

	t.Run("heading", func(t *testing.T) {
		els := []model.ClassifiedElement{
			classified(model.RoleTitle, model.NewBBox(50, 700, 50, 700), "Overview"),
			classified(model.RoleText, model.NewBBox(50, 500, 300, 650), "body"),
		}
		page := unitBuilder().Build(geom, els, NewIDCounter())
		require.Len(t, page.Roots, 2)
		assert.Empty(t, page.Roots[0].Children)
		assert.Empty(t, page.Roots[1].ParentID)
	})

	t.Run("later heading still adopts", func(t *testing.T) {
		els := []model.ClassifiedElement{
			classified(model.RoleTitle, model.NewBBox(50, 750, 300, 780), "Intro"),
			classified(model.RoleSectionHeader, model.NewBBox(50, 700, 50, 700), "Section 1"),
			classified(model.RoleText, model.NewBBox(50, 500, 300, 650), "body"),
		}
		page := unitBuilder().Build(geom, els, NewIDCounter())
		require.Len(t, page.Roots, 1)
		intro := page.Roots[0]
		require.Len(t, intro.Children, 2)
		assert.Empty(t, intro.Children[0].Children, "degenerate section header")
		assert.Equal(t, "body", intro.Children[1].Text)
	})
}

// ============================================================================
// State Tests
// ============================================================================

func TestForestStates(t *testing.T) {
	f := unitBuilder().Assemble(model.PageGeometry{Width: 100, Height: 100}, []model.ClassifiedElement{
		classified(model.RoleText, model.NewBBox(0, 0, 50, 50), "x"),
	})
	assert.Equal(t, SpatiallyCorrected, f.State())
	assert.Equal(t, "spatially-corrected", f.State().String())

	counter := NewIDCounter()
	first := f.Finalize(counter)
	assert.Equal(t, Finalized, f.State())

	second := f.Finalize(counter)
	assert.Same(t, first, second)
	assert.Equal(t, 1, counter.Committed())
}

func TestFinalizeInPageOrderAfterParallelAssembly(t *testing.T) {
	b := unitBuilder()
	const pages = 8
	forests := make([]*Forest, pages)

	var wg sync.WaitGroup
	for i := 0; i < pages; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			els := make([]model.ClassifiedElement, i+1)
			for j := range els {
				els[j] = classified(model.RoleText, model.NewBBox(0, float64(j*10), 50, float64(j*10+5)), fmt.Sprint(j))
			}
			forests[i] = b.Assemble(model.PageGeometry{Index: i, Width: 100, Height: 100}, els)
		}(i)
	}
	wg.Wait()

	counter := NewIDCounter()
	last := 0
	for _, f := range forests {
		for _, n := range f.Finalize(counter).Flatten() {
			id, err := ParseID(n.ID)
			require.NoError(t, err)
			assert.Equal(t, last+1, id)
			last = id
		}
	}
	assert.Equal(t, pages*(pages+1)/2, last)
}

// ============================================================================
// Property Tests
// ============================================================================

var roleGen = rapid.SampledFrom([]model.Role{
	model.RoleTitle, model.RoleSectionHeader, model.RoleText, model.RoleList,
	model.RoleListItem, model.RoleTable, model.RoleTableCell, model.RoleFigure,
	model.RoleCaption, model.RolePageHeader, model.RolePageFooter,
})

func genElements(t *rapid.T) []model.ClassifiedElement {
	n := rapid.IntRange(0, 40).Draw(t, "n")
	els := make([]model.ClassifiedElement, n)
	for i := range els {
		x := float64(rapid.IntRange(0, 500).Draw(t, "x"))
		y := float64(rapid.IntRange(0, 800).Draw(t, "y"))
		w := float64(rapid.IntRange(1, 300).Draw(t, "w"))
		h := float64(rapid.IntRange(1, 200).Draw(t, "h"))
		els[i] = classified(roleGen.Draw(t, "role"), model.NewBBox(x, y, x+w, y+h), "第1章")
	}
	return els
}

func TestPropertyEveryElementAppearsOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		els := genElements(t)
		page := NewBuilder().Build(model.PageGeometry{Width: 595, Height: 842}, els, NewIDCounter())

		nodes := page.Flatten()
		if len(nodes) != len(els) {
			t.Fatalf("got %d nodes for %d elements", len(nodes), len(els))
		}
		seen := map[int]bool{}
		for i, n := range nodes {
			if seen[n.Order] {
				t.Fatalf("element %d emitted twice", n.Order)
			}
			seen[n.Order] = true
			if n.ID != FormatID(i+1) {
				t.Fatalf("node %d has id %s", i, n.ID)
			}
			if n.Role.IsPageFurniture() && (n.ParentID != "" || len(n.Children) > 0) {
				t.Fatalf("furniture %s nested", n.ID)
			}
			for _, c := range n.Children {
				if c.ParentID != n.ID {
					t.Fatalf("child %s points at %s, not %s", c.ID, c.ParentID, n.ID)
				}
			}
		}
	})
}

func TestPropertyChildrenInDetectionOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		els := genElements(t)
		page := NewBuilder().Build(model.PageGeometry{Width: 595, Height: 842}, els, NewIDCounter())
		check := func(list []*model.HierarchyNode) {
			for i := 1; i < len(list); i++ {
				if list[i-1].Order >= list[i].Order {
					t.Fatalf("siblings out of order: %d then %d", list[i-1].Order, list[i].Order)
				}
			}
		}
		check(page.Roots)
		page.Walk(func(n *model.HierarchyNode) bool {
			check(n.Children)
			return true
		})
	})
}
