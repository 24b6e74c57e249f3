package pdftext

import (
	"context"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog"

	"github.com/docstruct/docstruct/extraction"
	"github.com/docstruct/docstruct/model"
)

// A4 portrait, used when a page carries no usable MediaBox
const (
	defaultWidth  = 595.0
	defaultHeight = 842.0
)

// Detector reads the text layer of a PDF and reports one element per text
// block. It satisfies extraction.Detector.
type Detector struct {
	config Config
	log    zerolog.Logger
}

var _ extraction.Opener = (*Detector)(nil)

// NewDetector creates a detector with default configuration
func NewDetector() *Detector {
	return NewDetectorWithConfig(DefaultConfig())
}

// NewDetectorWithConfig creates a detector with custom configuration
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{config: config, log: zerolog.Nop()}
}

// WithLogger returns a copy of the detector that logs to l
func (d *Detector) WithLogger(l zerolog.Logger) *Detector {
	cp := *d
	cp.log = l.With().Str("component", "pdftext").Logger()
	return &cp
}

// Open parses the document once. The returned detector serves every page
// from that parse until close is called.
func (d *Detector) Open(ctx context.Context, src extraction.Source) (extraction.Detector, func() error, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	f, r, err := open(src)
	if err != nil {
		return nil, nil, err
	}
	d.log.Debug().Str("path", src.Path).Int("pages", r.NumPage()).Msg("document opened")
	return &document{d: d, r: r}, f.Close, nil
}

// PageCount returns the number of pages in the document
func (d *Detector) PageCount(ctx context.Context, src extraction.Source) (int, error) {
	f, r, err := open(src)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return r.NumPage(), nil
}

// Geometry returns the size of page pageIndex (0-based)
func (d *Detector) Geometry(ctx context.Context, src extraction.Source, pageIndex int) (model.PageGeometry, error) {
	f, r, err := open(src)
	if err != nil {
		return model.PageGeometry{}, err
	}
	defer f.Close()
	return (&document{d: d, r: r}).Geometry(ctx, src, pageIndex)
}

// Detect returns the text blocks of page pageIndex (0-based)
func (d *Detector) Detect(ctx context.Context, src extraction.Source, pageIndex int) ([]model.DetectedElement, error) {
	f, r, err := open(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return (&document{d: d, r: r}).Detect(ctx, src, pageIndex)
}

// document is one parsed PDF. It ignores the Source it is handed; the
// reader it holds is the document.
type document struct {
	d *Detector
	r *pdf.Reader
}

func (doc *document) PageCount(ctx context.Context, _ extraction.Source) (int, error) {
	return doc.r.NumPage(), nil
}

func (doc *document) Geometry(ctx context.Context, _ extraction.Source, pageIndex int) (model.PageGeometry, error) {
	p, err := page(doc.r, pageIndex)
	if err != nil {
		return model.PageGeometry{}, err
	}
	return pageGeometry(p, pageIndex), nil
}

func (doc *document) Detect(ctx context.Context, _ extraction.Source, pageIndex int) ([]model.DetectedElement, error) {
	p, err := page(doc.r, pageIndex)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content := p.Content()
	frags := make([]Fragment, 0, len(content.Text))
	for _, t := range content.Text {
		frags = append(frags, Fragment{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			Width:    t.W,
			FontSize: t.FontSize,
		})
	}

	els := Elements(frags, doc.d.config)
	doc.d.log.Debug().
		Int("page", pageIndex+1).
		Int("glyphs", len(frags)).
		Int("blocks", len(els)).
		Msg("text layer read")
	return els, nil
}

type closer interface{ Close() error }

func open(src extraction.Source) (closer, *pdf.Reader, error) {
	if src.Password == "" {
		f, r, err := pdf.Open(src.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", src.Path, err)
		}
		return f, r, nil
	}

	f, err := os.Open(src.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", src.Path, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("stat %s: %w", src.Path, err)
	}
	tried := false
	r, err := pdf.NewReaderEncrypted(f, fi.Size(), func() string {
		if tried {
			return ""
		}
		tried = true
		return src.Password
	})
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("open %s: %w", src.Path, err)
	}
	return f, r, nil
}

func page(r *pdf.Reader, pageIndex int) (pdf.Page, error) {
	if pageIndex < 0 || pageIndex >= r.NumPage() {
		return pdf.Page{}, fmt.Errorf("page %d out of range (1-%d)", pageIndex+1, r.NumPage())
	}
	p := r.Page(pageIndex + 1)
	if p.V.IsNull() {
		return pdf.Page{}, fmt.Errorf("page %d has no page object", pageIndex+1)
	}
	return p, nil
}

// pageGeometry reads the MediaBox, walking up to the parent page tree node
// when the page does not carry its own.
func pageGeometry(p pdf.Page, pageIndex int) model.PageGeometry {
	geom := model.PageGeometry{Index: pageIndex, Width: defaultWidth, Height: defaultHeight}
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Kind() != pdf.Array || box.Len() < 4 {
			continue
		}
		w := box.Index(2).Float64() - box.Index(0).Float64()
		h := box.Index(3).Float64() - box.Index(1).Float64()
		if w > 0 && h > 0 {
			geom.Width, geom.Height = w, h
		}
		break
	}
	return geom
}
