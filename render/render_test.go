package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"github.com/docstruct/docstruct/model"
)

func whitePage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return img
}

func node(id string, role model.Role, b model.BBox) *model.HierarchyNode {
	return &model.HierarchyNode{ID: id, Role: role, BBox: b, Page: 1}
}

// ============================================================================
// Color Tests
// ============================================================================

func TestRoleColor(t *testing.T) {
	assert.Equal(t, color.RGBA{0x00, 0x66, 0xCC, 0xff}, RoleColor(model.RoleText))
	assert.Equal(t, color.RGBA{0xFF, 0x66, 0x00, 0xff}, RoleColor(model.RoleTitle))
	assert.Equal(t, color.RGBA{0xCC, 0x00, 0x99, 0xff}, RoleColor(model.RoleTable))
	assert.Equal(t, color.RGBA{0x80, 0x80, 0x80, 0xff}, RoleColor(model.RoleUnknown))
	assert.Equal(t, RoleColor(model.RolePageHeader), RoleColor(model.RolePageFooter))
}

// ============================================================================
// Crop Tests
// ============================================================================

func TestCrop(t *testing.T) {
	page := whitePage(100, 100)
	page.Set(15, 25, color.RGBA{0xff, 0, 0, 0xff})

	tests := []struct {
		name   string
		box    model.BBox
		ratio  float64
		wantDX int
		wantDY int
	}{
		{"inside", model.NewBBox(10, 20, 30, 50), 1, 20, 30},
		{"double ratio", model.NewBBox(10, 20, 30, 50), 2, 40, 60},
		{"clamped to page", model.NewBBox(90, 90, 150, 150), 1, 10, 10},
		{"outside page", model.NewBBox(200, 200, 300, 300), 1, 1, 1},
		{"degenerate", model.NewBBox(10, 10, 10, 10), 1, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Crop(page, tt.box, tt.ratio, 0)
			assert.Equal(t, tt.wantDX, got.Bounds().Dx())
			assert.Equal(t, tt.wantDY, got.Bounds().Dy())
		})
	}
}

func TestCropCopiesPixels(t *testing.T) {
	page := whitePage(100, 100)
	red := color.RGBA{0xff, 0, 0, 0xff}
	page.Set(15, 25, red)

	got := Crop(page, model.NewBBox(10, 20, 30, 50), 1, 0)
	assert.Equal(t, red, got.RGBAAt(5, 5))
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, got.RGBAAt(0, 0))
}

func TestCropPadding(t *testing.T) {
	page := whitePage(100, 100)
	got := Crop(page, model.NewBBox(10, 20, 30, 50), 1, 5)
	assert.Equal(t, 30, got.Bounds().Dx())
	assert.Equal(t, 40, got.Bounds().Dy())
}

func TestThumbnail(t *testing.T) {
	big := whitePage(400, 200)
	got := Thumbnail(big, 100)
	assert.Equal(t, 100, got.Bounds().Dx())
	assert.Equal(t, 50, got.Bounds().Dy())

	small := whitePage(50, 20)
	assert.Same(t, small, Thumbnail(small, 100))
}

// ============================================================================
// Annotation Tests
// ============================================================================

func TestLabel(t *testing.T) {
	nested := node("ID-3", model.RoleListItem, model.BBox{})
	nested.List = &model.ListInfo{IndentLevel: 2, IsNested: true}
	flat := node("ID-4", model.RoleListItem, model.BBox{})
	flat.List = &model.ListInfo{}
	colHeader := node("ID-5", model.RoleTableCell, model.BBox{})
	colHeader.Cell = &model.TableCellRef{Row: 0, Col: 1, ColumnHeader: true}
	corner := node("ID-6", model.RoleTableCell, model.BBox{})
	corner.Cell = &model.TableCellRef{ColumnHeader: true, RowHeader: true}
	plainCell := node("ID-7", model.RoleTableCell, model.BBox{})
	plainCell.Cell = &model.TableCellRef{Row: 2, Col: 3}

	tests := []struct {
		name string
		node *model.HierarchyNode
		want string
	}{
		{"title", node("ID-1", model.RoleTitle, model.BBox{}), "TITLE #ID-1"},
		{"section header", node("ID-2", model.RoleSectionHeader, model.BBox{}), "SECTION-HEADER #ID-2"},
		{"nested list item", nested, "L2 #ID-3"},
		{"list item", flat, "LIST #ID-4"},
		{"column header cell", colHeader, "[0,1] COL #ID-5"},
		{"corner cell", corner, "[0,0] HDR #ID-6"},
		{"body cell", plainCell, "[2,3] #ID-7"},
		{"no id", node("", model.RoleFigure, model.BBox{}), "FIGURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(tt.node))
		})
	}
}

func TestAnnotateOutlines(t *testing.T) {
	page := whitePage(100, 100)
	p := &model.Page{Number: 1, Roots: []*model.HierarchyNode{
		node("ID-1", model.RoleText, model.NewBBox(10, 40, 60, 80)),
	}}

	opts := DefaultOptions()
	opts.Labels = false
	got := Annotate(page, p, opts)

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	assert.Equal(t, RoleColor(model.RoleText), got.RGBAAt(10, 60), "left edge")
	assert.Equal(t, RoleColor(model.RoleText), got.RGBAAt(11, 60), "stroke is two pixels at scale 2")
	assert.Equal(t, white, got.RGBAAt(30, 60), "interior")
	assert.Equal(t, white, page.RGBAAt(10, 60), "source page untouched")
}

func TestAnnotateHeaderCell(t *testing.T) {
	cell := node("ID-2", model.RoleTableCell, model.NewBBox(20, 20, 40, 40))
	cell.Cell = &model.TableCellRef{ColumnHeader: true}
	p := &model.Page{Number: 1, Roots: []*model.HierarchyNode{cell}}

	got := Annotate(whitePage(60, 60), p, Options{Scale: 1})
	assert.Equal(t, headerCellColor, got.RGBAAt(20, 30))
}

func TestAnnotateLabelPlate(t *testing.T) {
	p := &model.Page{Number: 1, Roots: []*model.HierarchyNode{
		node("ID-1", model.RoleTitle, model.NewBBox(10, 40, 90, 60)),
	}}
	got := Annotate(whitePage(200, 100), p, DefaultOptions())

	// the plate sits above the box, outlined in the role color
	assert.Equal(t, RoleColor(model.RoleTitle), got.RGBAAt(10, 25))
}

func TestAnnotateNilPage(t *testing.T) {
	got := Annotate(whitePage(10, 10), nil, DefaultOptions())
	assert.Equal(t, image.Rect(0, 0, 10, 10), got.Bounds())
}

// ============================================================================
// Writer Tests
// ============================================================================

func TestWritePageAndCrops(t *testing.T) {
	dir := t.TempDir()
	page := whitePage(100, 100)
	p := &model.Page{Number: 3, Roots: []*model.HierarchyNode{
		node("ID-1", model.RoleTitle, model.NewBBox(10, 10, 90, 20)),
		node("ID-2", model.RoleText, model.NewBBox(10, 30, 90, 60)),
	}}
	for _, n := range p.Roots {
		n.Page = 3
	}

	path, err := WritePage(dir, page, p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "page_003_annotated.png"), path)
	assert.FileExists(t, path)

	paths, err := WriteCrops(dir, page, p, Options{Ratio: 1}, model.RoleTitle)
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(dir, "title", "page_003_ID-1.png"), paths[0])

	all, err := WriteCrops(dir, page, p, Options{Ratio: 1})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	for _, path := range all {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}
}

func TestWriteCropsShrinksLargeCrops(t *testing.T) {
	dir := t.TempDir()
	n := node("ID-1", model.RoleFigure, model.NewBBox(0, 0, 80, 40))
	n.Page = 1
	p := &model.Page{Number: 1, Roots: []*model.HierarchyNode{n}}

	paths, err := WriteCrops(dir, whitePage(100, 100), p, Options{Ratio: 1, MaxCropSide: 20})
	require.NoError(t, err)
	require.Len(t, paths, 1)

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 10, cfg.Height)
}

func TestCropPathRoleDirectory(t *testing.T) {
	n := node("ID-9", model.RolePageHeader, model.BBox{})
	n.Page = 12
	assert.Equal(t, filepath.Join("out", "page_header", "page_012_ID-9.png"), CropPath("out", n))
}
