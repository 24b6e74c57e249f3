package extraction

import (
	"context"
	"fmt"
	"image"

	"github.com/docstruct/docstruct/model"
)

// Source identifies the document a strategy works on
type Source struct {
	Path     string
	Password string
}

// Elements is the output of a successful strategy: detected elements and
// geometry for every page, indexed by 0-based page number.
type Elements struct {
	Pages    [][]model.DetectedElement
	Geometry []model.PageGeometry
}

// PageCount returns the number of pages
func (e *Elements) PageCount() int {
	if e == nil {
		return 0
	}
	return len(e.Geometry)
}

// PerPage returns the element count of every page
func (e *Elements) PerPage() []int {
	if e == nil {
		return nil
	}
	counts := make([]int, len(e.Pages))
	for i, p := range e.Pages {
		counts[i] = len(p)
	}
	return counts
}

// Count returns the total number of elements
func (e *Elements) Count() int {
	total := 0
	for _, n := range e.PerPage() {
		total += n
	}
	return total
}

func (e *Elements) validate() error {
	if e == nil || e.Count() == 0 {
		return ErrEmptyResult
	}
	if len(e.Pages) != len(e.Geometry) {
		return fmt.Errorf("%d element pages for %d page geometries", len(e.Pages), len(e.Geometry))
	}
	return nil
}

// Strategy is one way of turning a document into detected elements
type Strategy interface {
	Name() string
	Extract(ctx context.Context, src Source) (*Elements, error)
}

// Func adapts a plain function to the Strategy interface
type Func struct {
	name string
	fn   func(ctx context.Context, src Source) (*Elements, error)
}

// NewFunc wraps fn as a strategy called name
func NewFunc(name string, fn func(ctx context.Context, src Source) (*Elements, error)) *Func {
	return &Func{name: name, fn: fn}
}

func (f *Func) Name() string { return f.name }

func (f *Func) Extract(ctx context.Context, src Source) (*Elements, error) {
	return f.fn(ctx, src)
}

// Detector finds layout elements on the pages of a document
type Detector interface {
	PageCount(ctx context.Context, src Source) (int, error)
	Geometry(ctx context.Context, src Source, pageIndex int) (model.PageGeometry, error)
	Detect(ctx context.Context, src Source, pageIndex int) ([]model.DetectedElement, error)
}

// Opener is a Detector that can parse a document once and serve every page
// from it. The returned Detector reads the opened document whatever Source
// it is given; close releases it.
type Opener interface {
	Detector
	Open(ctx context.Context, src Source) (doc Detector, close func() error, err error)
}

// Preprocessor rewrites a document into an alternative form that a detector
// may handle better. The returned cleanup removes any temporary output.
type Preprocessor interface {
	Variants() []string
	Preprocess(ctx context.Context, src Source, variant string) (Source, func(), error)
}

// Rasterizer renders pages to images
type Rasterizer interface {
	PageCount(ctx context.Context, src Source) (int, error)
	Render(ctx context.Context, src Source, pageIndex int, dpi float64) (image.Image, model.PageGeometry, error)
}

// Recognizer finds text lines on a page image
type Recognizer interface {
	RecognizeLines(ctx context.Context, img image.Image) ([]model.TextLine, error)
}
