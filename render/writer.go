package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/docstruct/docstruct/model"
)

// WritePNG encodes img to path, creating parent directories
func WritePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// PagePath is the file an annotated page is written to
func PagePath(dir string, pageNumber int) string {
	return filepath.Join(dir, fmt.Sprintf("page_%03d_annotated.png", pageNumber))
}

// CropPath is the file a node crop is written to. Crops are grouped in a
// directory per role.
func CropPath(dir string, n *model.HierarchyNode) string {
	role := strings.ReplaceAll(n.Role.String(), "-", "_")
	return filepath.Join(dir, role, fmt.Sprintf("page_%03d_%s.png", n.Page, n.ID))
}

// WritePage annotates page with p's nodes and writes it under dir
func WritePage(dir string, page image.Image, p *model.Page, opts Options) (string, error) {
	path := PagePath(dir, p.Number)
	if err := WritePNG(path, Annotate(page, p, opts)); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCrops writes a crop of every node on p whose role is in roles, or
// of every node when roles is empty. It returns the written paths.
func WriteCrops(dir string, page image.Image, p *model.Page, opts Options, roles ...model.Role) ([]string, error) {
	ratio := opts.Ratio
	if ratio <= 0 {
		ratio = 1
	}
	want := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		want[r] = true
	}
	var paths []string
	for _, n := range p.Flatten() {
		if len(want) > 0 && !want[n.Role] {
			continue
		}
		path := CropPath(dir, n)
		crop := Thumbnail(Crop(page, n.BBox, ratio, opts.CropPad), opts.MaxCropSide)
		if err := WritePNG(path, crop); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
