package extraction

import (
	"context"
	"fmt"
	"strings"

	"github.com/docstruct/docstruct/coords"
	"github.com/docstruct/docstruct/model"
)

// Strategy names
const (
	NameDirect    = "direct"
	NameNormalize = "normalize+detect"
	NameRasterOCR = "raster+ocr"

	// VariantNormalize is the structural normalization every Preprocessor
	// is expected to offer
	VariantNormalize = "normalize"
)

// VariantName returns the strategy name for a preprocessing variant
func VariantName(variant string) string {
	if variant == VariantNormalize {
		return NameNormalize
	}
	return "variant:" + variant + "+detect"
}

// DetectStrategy runs a Detector over every page, optionally on a
// preprocessed copy of the document.
type DetectStrategy struct {
	name     string
	detector Detector
	pre      Preprocessor
	variant  string
}

// NewDirect detects on the document as given
func NewDirect(d Detector) *DetectStrategy {
	return &DetectStrategy{name: NameDirect, detector: d}
}

// NewPreprocessed detects on the output of one preprocessing variant
func NewPreprocessed(d Detector, pre Preprocessor, variant string) *DetectStrategy {
	return &DetectStrategy{name: VariantName(variant), detector: d, pre: pre, variant: variant}
}

func (s *DetectStrategy) Name() string { return s.name }

func (s *DetectStrategy) Extract(ctx context.Context, src Source) (*Elements, error) {
	if s.pre != nil {
		prepared, cleanup, err := s.pre.Preprocess(ctx, src, s.variant)
		if err != nil {
			return nil, &PreprocessError{Variant: s.variant, Err: err}
		}
		if cleanup != nil {
			defer cleanup()
		}
		src = prepared
	}

	detector := s.detector
	if o, ok := detector.(Opener); ok {
		doc, closeDoc, err := o.Open(ctx, src)
		if err != nil {
			return nil, &DetectionError{Page: -1, Err: err}
		}
		defer closeDoc()
		detector = doc
	}

	n, err := detector.PageCount(ctx, src)
	if err != nil {
		return nil, &DetectionError{Page: -1, Err: err}
	}

	out := &Elements{
		Pages:    make([][]model.DetectedElement, n),
		Geometry: make([]model.PageGeometry, n),
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		geom, err := detector.Geometry(ctx, src, i)
		if err != nil {
			return nil, &DetectionError{Page: i, Err: err}
		}
		els, err := detector.Detect(ctx, src, i)
		if err != nil {
			return nil, &DetectionError{Page: i, Err: err}
		}
		for j := range els {
			els[j].Order = j
		}
		out.Geometry[i] = geom
		out.Pages[i] = els
	}
	return out, nil
}

// OCRStrategy rasterizes every page and turns recognized text lines into
// detected elements. Line boxes are mapped back to PDF space using the
// render resolution.
type OCRStrategy struct {
	raster Rasterizer
	recog  Recognizer
	dpi    float64
}

// NewRasterOCR creates the raster+ocr strategy
func NewRasterOCR(r Rasterizer, rec Recognizer, dpi float64) *OCRStrategy {
	return &OCRStrategy{raster: r, recog: rec, dpi: dpi}
}

func (s *OCRStrategy) Name() string { return NameRasterOCR }

func (s *OCRStrategy) Extract(ctx context.Context, src Source) (*Elements, error) {
	if s.dpi <= 0 {
		return nil, fmt.Errorf("invalid render dpi %v", s.dpi)
	}
	n, err := s.raster.PageCount(ctx, src)
	if err != nil {
		return nil, &DetectionError{Page: -1, Err: err}
	}

	scale := coords.ScaleForDPI(s.dpi)
	out := &Elements{
		Pages:    make([][]model.DetectedElement, n),
		Geometry: make([]model.PageGeometry, n),
	}
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, geom, err := s.raster.Render(ctx, src, i, s.dpi)
		if err != nil {
			return nil, &DetectionError{Page: i, Err: fmt.Errorf("render: %w", err)}
		}
		lines, err := s.recog.RecognizeLines(ctx, img)
		if err != nil {
			return nil, &DetectionError{Page: i, Err: fmt.Errorf("ocr: %w", err)}
		}

		els := make([]model.DetectedElement, 0, len(lines))
		for _, l := range lines {
			text := strings.TrimSpace(l.Text)
			if text == "" {
				continue
			}
			pdf := coords.ToPDFSpace(l.Box, geom.Height, scale, model.RoleText)
			el := model.Ingest("", pdf, text)
			el.Order = len(els)
			els = append(els, el)
		}
		out.Geometry[i] = geom
		out.Pages[i] = els
	}
	return out, nil
}

// Collaborators bundles what DefaultStrategies needs. Any field may be nil;
// strategies that need a missing collaborator are left out.
type Collaborators struct {
	Detector     Detector
	Preprocessor Preprocessor
	Rasterizer   Rasterizer
	Recognizer   Recognizer
	DPI          float64
}

// DefaultStrategies returns the standard fallback order: direct detection,
// structural normalization, every other preprocessing variant, then OCR of
// rendered pages.
func DefaultStrategies(c Collaborators) []Strategy {
	var out []Strategy
	if c.Detector != nil {
		out = append(out, NewDirect(c.Detector))
		if c.Preprocessor != nil {
			variants := c.Preprocessor.Variants()
			for _, v := range variants {
				if v == VariantNormalize {
					out = append(out, NewPreprocessed(c.Detector, c.Preprocessor, v))
				}
			}
			for _, v := range variants {
				if v != VariantNormalize {
					out = append(out, NewPreprocessed(c.Detector, c.Preprocessor, v))
				}
			}
		}
	}
	if c.Rasterizer != nil && c.Recognizer != nil {
		out = append(out, NewRasterOCR(c.Rasterizer, c.Recognizer, c.DPI))
	}
	return out
}

// Names lists strategy names in order
func Names(strategies []Strategy) []string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Name()
	}
	return names
}
