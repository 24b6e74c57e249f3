package docstruct

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/docstruct/docstruct/config"
	"github.com/docstruct/docstruct/extraction"
	"github.com/docstruct/docstruct/format"
	"github.com/docstruct/docstruct/model"
	"github.com/docstruct/docstruct/ocr"
	"github.com/docstruct/docstruct/pdftext"
	"github.com/docstruct/docstruct/preprocess"
	"github.com/docstruct/docstruct/raster"
)

// OCREngine recognizes text in whole pages and in cropped regions.
// *ocr.Client satisfies it.
type OCREngine interface {
	extraction.Recognizer
	RegionRecognizer
}

// Processor provides a fluent interface for reconstructing a PDF.
// Each configuration method returns a new Processor, so a base Processor
// can be shared and specialized safely.
type Processor struct {
	path     string
	options  options
	progress func(done, total int)
	raster   extraction.Rasterizer
	ocr      OCREngine
}

// clone creates a copy of the Processor with a deep copy of options
func (p *Processor) clone() *Processor {
	cp := *p
	cp.options = p.options.clone()
	return &cp
}

// Scale sets the render scale of image-space boxes. Default 2.
func (p *Processor) Scale(scale float64) *Processor {
	cp := p.clone()
	cp.options.hierarchy.Scale = scale
	return cp
}

// Workers bounds how many pages are assembled at once. Default 4.
func (p *Processor) Workers(n int) *Processor {
	cp := p.clone()
	cp.options.workers = n
	return cp
}

// Logger sets the logger shared by every stage
func (p *Processor) Logger(l zerolog.Logger) *Processor {
	cp := p.clone()
	cp.options.log = l
	return cp
}

// Strategies replaces the default extraction fallback chain
func (p *Processor) Strategies(strategies ...extraction.Strategy) *Processor {
	cp := p.clone()
	cp.options.strategies = append([]extraction.Strategy(nil), strategies...)
	return cp
}

// Variants sets the preprocessing variants tried after direct detection
func (p *Processor) Variants(variants ...string) *Processor {
	cp := p.clone()
	cp.options.variants = append([]string(nil), variants...)
	return cp
}

// Password sets the user password of an encrypted document
func (p *Processor) Password(password string) *Processor {
	cp := p.clone()
	cp.options.password = password
	return cp
}

// DPI sets the rasterization resolution used by OCR. Default 300.
func (p *Processor) DPI(dpi float64) *Processor {
	cp := p.clone()
	cp.options.dpi = dpi
	return cp
}

// StrategyTimeout bounds each extraction strategy. Default 2m.
func (p *Processor) StrategyTimeout(d time.Duration) *Processor {
	cp := p.clone()
	cp.options.orchestrator.StrategyTimeout = d
	return cp
}

// Language sets the OCR languages, "+" separated. Default "jpn+eng".
func (p *Processor) Language(lang string) *Processor {
	cp := p.clone()
	cp.options.ocrLanguage = lang
	return cp
}

// RefineText re-reads empty or garbled text regions with OCR
func (p *Processor) RefineText() *Processor {
	cp := p.clone()
	cp.options.refineText = true
	return cp
}

// Config applies loaded settings, keeping the logger
func (p *Processor) Config(cfg *config.Config) *Processor {
	cp := p.clone()
	WithConfig(cfg)(&cp.options)
	return cp
}

// Progress registers a callback invoked as pages are assembled. It may be
// called from several goroutines at once.
func (p *Processor) Progress(fn func(done, total int)) *Processor {
	cp := p.clone()
	cp.progress = fn
	return cp
}

// Rasterizer replaces the MuPDF rasterizer
func (p *Processor) Rasterizer(r extraction.Rasterizer) *Processor {
	cp := p.clone()
	cp.raster = r
	return cp
}

// OCR replaces the Tesseract engine
func (p *Processor) OCR(engine OCREngine) *Processor {
	cp := p.clone()
	cp.ocr = engine
	return cp
}

// Process extracts, classifies and assembles the document. It returns an
// error only when the file cannot be opened or ctx is cancelled; when every
// extraction strategy fails the Result is degraded and Result.Err reports
// why.
func (p *Processor) Process(ctx context.Context) (*Result, error) {
	if p.path == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	if _, err := os.Stat(p.path); err != nil {
		return nil, fmt.Errorf("open %s: %w", p.path, err)
	}

	o := p.options
	log := o.log.With().Str("source", p.path).Logger()
	res := newResult(p.path)
	src := extraction.Source{Path: p.path, Password: o.password}

	header, err := format.Detect(p.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}
	if !header.IsPDF {
		res.Warnings = append(res.Warnings, Warning{Message: "input has no PDF header"})
	}
	log.Debug().Stringer("header", header).Msg("input sniffed")

	tools, err := p.tools(o, &res.Warnings)
	if err != nil {
		return nil, err
	}
	defer tools.close()

	strategies := o.strategies
	if len(strategies) == 0 {
		strategies = tools.strategies(o)
	}

	start := time.Now()
	outcome := extraction.NewOrchestrator(strategies, o.orchestrator).WithLogger(o.log).Run(ctx, src)
	res.Status = outcome.Status
	res.MethodUsed = outcome.MethodUsed
	res.Attempts = outcome.Attempts

	if outcome.Status == extraction.AllFailed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := preprocess.PageCount(p.path)
		if err != nil {
			res.Warnings = append(res.Warnings, Warning{Message: fmt.Sprintf("page count unavailable: %v", err)})
		}
		res.PageCount = n
		log.Warn().Int("pages", n).Err(outcome.Err()).Msg("document degraded to page count")
		return res, nil
	}

	inputs := inputsFromElements(outcome.Elements)
	pl := newPipeline(o)
	pages, err := pl.buildPages(ctx, inputs, p.tick(len(inputs)))
	if err != nil {
		return nil, err
	}

	if o.refineText {
		if err := p.refine(ctx, src, pages, tools, o, res); err != nil {
			return nil, err
		}
	}

	pl.finish(pages, res)
	log.Info().Dur("took", time.Since(start)).Str("method", res.MethodUsed).Msg("document processed")
	return res, nil
}

// tick adapts the Progress callback to a per-page counter
func (p *Processor) tick(total int) func() {
	if p.progress == nil {
		return nil
	}
	var done atomic.Int64
	return func() { p.progress(int(done.Add(1)), total) }
}

// toolset holds the collaborators one Process call works with
type toolset struct {
	raster extraction.Rasterizer
	pre    *preprocess.PDFCPU
	ocr    OCREngine
	owned  *ocr.Client
	log    zerolog.Logger
}

// tools opens the OCR engine when some stage needs it. A missing engine is
// a warning, not an error: the strategies and refinement needing it are
// skipped.
func (p *Processor) tools(o options, warnings *[]Warning) (*toolset, error) {
	t := &toolset{raster: p.raster, ocr: p.ocr, log: o.log}
	if t.raster == nil {
		t.raster = raster.NewFitz()
	}
	needOCR := len(o.strategies) == 0 || o.refineText
	if t.ocr == nil && needOCR {
		client, err := ocr.NewWithLanguage(o.ocrLanguage)
		if err != nil {
			*warnings = append(*warnings, Warning{Message: fmt.Sprintf("OCR unavailable: %v", err)})
		} else {
			t.ocr = client
			t.owned = client
		}
	}
	if len(o.strategies) == 0 && len(o.variants) > 0 {
		pre, err := preprocess.New(o.variants...)
		if err != nil {
			t.close()
			return nil, err
		}
		t.pre = pre.WithLogger(o.log)
	}
	return t, nil
}

func (t *toolset) close() {
	if t.owned != nil {
		t.owned.Close()
	}
}

// strategies assembles the default fallback chain
func (t *toolset) strategies(o options) []extraction.Strategy {
	c := extraction.Collaborators{
		Detector:   pdftext.NewDetector().WithLogger(o.log),
		Rasterizer: t.raster,
		DPI:        o.dpi,
	}
	if t.pre != nil {
		c.Preprocessor = t.pre
	}
	if t.ocr != nil {
		c.Recognizer = t.ocr
	}
	return extraction.DefaultStrategies(c)
}

// refine renders every page holding an unreadable node and OCRs those
// regions
func (p *Processor) refine(ctx context.Context, src extraction.Source, pages []*model.Page, t *toolset, o options, res *Result) error {
	if t.ocr == nil {
		return nil
	}
	ratio := o.dpi / 72 / o.hierarchy.Scale
	for _, page := range pages {
		if !pageNeedsRefinement(page) {
			continue
		}
		img, _, err := t.raster.Render(ctx, src, page.Number-1, o.dpi)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			res.Warnings = append(res.Warnings, Warning{Page: page.Number, Message: fmt.Sprintf("render for text refinement: %v", err)})
			continue
		}
		n, err := RefineText(ctx, page, img, ratio, t.ocr)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			res.Warnings = append(res.Warnings, Warning{Page: page.Number, Message: fmt.Sprintf("text refinement: %v", err)})
		}
		t.log.Debug().Int("page", page.Number).Int("refined", n).Msg("text refined")
	}
	return nil
}

func pageNeedsRefinement(p *model.Page) bool {
	found := false
	p.Walk(func(n *model.HierarchyNode) bool {
		if NeedsRefinement(n) {
			found = true
		}
		return !found
	})
	return found
}
