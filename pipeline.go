package docstruct

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/docstruct/docstruct/classify"
	"github.com/docstruct/docstruct/extraction"
	"github.com/docstruct/docstruct/hierarchy"
	"github.com/docstruct/docstruct/model"
	"github.com/docstruct/docstruct/structure"
)

// MethodProvided is the MethodUsed of results built from caller-supplied
// elements
const MethodProvided = "provided"

// PageInput is one page of already-detected elements
type PageInput struct {
	Geometry model.PageGeometry
	Elements []model.DetectedElement
}

// Reconstruct runs classification, hierarchy assembly and structure
// analysis over detected elements. Pages are numbered by their position in
// pages. The only error is ctx's; a cancelled run commits no IDs past the
// last finished page and returns no result.
func Reconstruct(ctx context.Context, pages []PageInput, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	res := newResult("")
	res.MethodUsed = MethodProvided
	if err := reconstruct(ctx, o, pages, res); err != nil {
		return nil, err
	}
	return res, nil
}

func newResult(source string) *Result {
	return &Result{
		DocumentID: uuid.NewString(),
		Source:     source,
		Status:     extraction.Succeeded,
	}
}

// pipeline is the per-document state of one reconstruction
type pipeline struct {
	opts       options
	classifier *classify.Classifier
	builder    *hierarchy.Builder
	analyzer   *structure.Analyzer
	counter    *hierarchy.IDCounter
}

func newPipeline(o options) *pipeline {
	return &pipeline{
		opts:       o,
		classifier: classify.NewWithConfig(o.classify).WithLogger(o.log),
		builder:    hierarchy.NewBuilderWithConfig(o.hierarchy).WithLogger(o.log),
		analyzer:   structure.NewAnalyzerWithConfig(o.structure).WithLogger(o.log),
		counter:    hierarchy.NewIDCounter(),
	}
}

// reconstruct fills res with pages, structure and summary
func reconstruct(ctx context.Context, o options, inputs []PageInput, res *Result) error {
	p := newPipeline(o)

	pages, err := p.buildPages(ctx, inputs, nil)
	if err != nil {
		return err
	}
	p.finish(pages, res)
	return nil
}

// buildPages classifies and assembles pages in parallel, then commits IDs
// sequentially in page order. progress, if set, is called once per
// assembled page from the worker goroutines.
func (p *pipeline) buildPages(ctx context.Context, inputs []PageInput, progress func()) ([]*model.Page, error) {
	forests := make([]*hierarchy.Forest, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.opts.workers))
	for i, in := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			geom := in.Geometry
			geom.Index = i
			classified := p.classifier.ClassifyPage(in.Elements, geom)
			forests[i] = p.builder.Assemble(geom, classified)
			p.opts.log.Debug().
				Int("page", i+1).
				Int("elements", len(in.Elements)).
				Dur("took", time.Since(start)).
				Msg("page assembled")
			if progress != nil {
				progress()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("assemble pages: %w", err)
	}

	pages := make([]*model.Page, len(forests))
	for i, f := range forests {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("finalize page %d: %w", i+1, err)
		}
		pages[i] = f.Finalize(p.counter)
	}
	return pages, nil
}

// finish runs structure analysis and collects warnings
func (p *pipeline) finish(pages []*model.Page, res *Result) {
	res.Pages = pages
	res.PageCount = len(pages)
	res.Structure = p.analyzer.Analyze(pages)
	res.Summary = res.Structure.Summary
	res.Warnings = append(res.Warnings, flagWarnings(pages)...)

	p.opts.log.Info().
		Str("document_id", res.DocumentID).
		Int("pages", len(pages)).
		Int("elements", p.counter.Committed()).
		Int("sections", res.Summary.SectionCount).
		Str("type", res.Summary.DocumentType).
		Msg("document reconstructed")
}

// flagWarnings reports pages carrying garbled text or degenerate boxes
func flagWarnings(pages []*model.Page) []Warning {
	var out []Warning
	for _, p := range pages {
		var garbled, degenerate int
		p.Walk(func(n *model.HierarchyNode) bool {
			if n.Flags.Has(model.FlagGarbled) {
				garbled++
			}
			if n.Flags.Has(model.FlagDegenerate) {
				degenerate++
			}
			return true
		})
		if garbled > 0 {
			out = append(out, Warning{Page: p.Number, Message: fmt.Sprintf("%d element(s) with garbled text", garbled)})
		}
		if degenerate > 0 {
			out = append(out, Warning{Page: p.Number, Message: fmt.Sprintf("%d element(s) with degenerate bounding boxes", degenerate)})
		}
	}
	return out
}

// inputsFromElements pairs each page's elements with its geometry
func inputsFromElements(els *extraction.Elements) []PageInput {
	inputs := make([]PageInput, els.PageCount())
	for i := range inputs {
		inputs[i] = PageInput{Geometry: els.Geometry[i], Elements: els.Pages[i]}
	}
	return inputs
}
