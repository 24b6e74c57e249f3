package raster

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/gen2brain/go-fitz"

	"github.com/docstruct/docstruct/extraction"
	"github.com/docstruct/docstruct/model"
)

// Fitz renders PDF pages with MuPDF. It satisfies extraction.Rasterizer.
//
// MuPDF documents are not safe for concurrent use, so renders are
// serialized per Fitz value.
type Fitz struct {
	mu sync.Mutex
}

var _ extraction.Rasterizer = (*Fitz)(nil)

// NewFitz creates a MuPDF rasterizer
func NewFitz() *Fitz {
	return &Fitz{}
}

// PageCount returns the number of pages in the document
func (f *Fitz) PageCount(ctx context.Context, src extraction.Source) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := fitz.New(src.Path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", src.Path, err)
	}
	defer doc.Close()
	return doc.NumPage(), nil
}

// Render rasterizes page pageIndex (0-based) at dpi and reports the page's
// size in points.
func (f *Fitz) Render(ctx context.Context, src extraction.Source, pageIndex int, dpi float64) (image.Image, model.PageGeometry, error) {
	if err := ctx.Err(); err != nil {
		return nil, model.PageGeometry{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := fitz.New(src.Path)
	if err != nil {
		return nil, model.PageGeometry{}, fmt.Errorf("open %s: %w", src.Path, err)
	}
	defer doc.Close()

	if pageIndex < 0 || pageIndex >= doc.NumPage() {
		return nil, model.PageGeometry{}, fmt.Errorf("page %d out of range (1-%d)", pageIndex+1, doc.NumPage())
	}

	bound, err := doc.Bound(pageIndex)
	if err != nil {
		return nil, model.PageGeometry{}, fmt.Errorf("page %d bounds: %w", pageIndex+1, err)
	}
	img, err := doc.ImageDPI(pageIndex, dpi)
	if err != nil {
		return nil, model.PageGeometry{}, fmt.Errorf("render page %d: %w", pageIndex+1, err)
	}

	geom := model.PageGeometry{
		Index:  pageIndex,
		Width:  float64(bound.Dx()),
		Height: float64(bound.Dy()),
	}
	return img, geom, nil
}
