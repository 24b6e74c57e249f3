package docstruct

import (
	"github.com/rs/zerolog"

	"github.com/docstruct/docstruct/classify"
	"github.com/docstruct/docstruct/config"
	"github.com/docstruct/docstruct/extraction"
	"github.com/docstruct/docstruct/hierarchy"
	"github.com/docstruct/docstruct/ocr"
	"github.com/docstruct/docstruct/structure"
)

// options holds pipeline configuration shared by Processor and Reconstruct
type options struct {
	workers   int
	classify  classify.Config
	hierarchy hierarchy.Config
	structure structure.Config
	log       zerolog.Logger

	// extraction only
	strategies   []extraction.Strategy
	orchestrator extraction.Config
	variants     []string
	password     string
	dpi          float64
	ocrLanguage  string
	refineText   bool
}

func defaultOptions() options {
	return options{
		workers:      4,
		classify:     classify.DefaultConfig(),
		hierarchy:    hierarchy.DefaultConfig(),
		structure:    structure.DefaultConfig(),
		log:          zerolog.Nop(),
		orchestrator: extraction.DefaultConfig(),
		variants:     []string{"normalize", "repair", "decrypt"},
		dpi:          300,
		ocrLanguage:  ocr.DefaultLanguage,
	}
}

// fromConfig applies loaded settings on top of the defaults
func fromConfig(cfg *config.Config) options {
	o := defaultOptions()
	o.workers = cfg.Pipeline.Workers
	o.classify = cfg.ClassifierConfig()
	o.hierarchy = cfg.HierarchyConfig()
	o.orchestrator = cfg.OrchestratorConfig()
	o.variants = append([]string(nil), cfg.Extraction.Variants...)
	o.password = cfg.Extraction.Password
	o.dpi = cfg.Render.DPI
	o.ocrLanguage = cfg.OCR.Language
	return o
}

// clone creates a deep copy of options
func (o options) clone() options {
	cp := o
	cp.strategies = append([]extraction.Strategy(nil), o.strategies...)
	cp.variants = append([]string(nil), o.variants...)
	cp.structure.HeadingKeywords = append([]string(nil), o.structure.HeadingKeywords...)
	return cp
}

// Option configures Reconstruct
type Option func(*options)

// WithScale sets the render scale of image-space boxes
func WithScale(scale float64) Option {
	return func(o *options) { o.hierarchy.Scale = scale }
}

// WithWorkers bounds how many pages are assembled at once
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithClassifier replaces the classifier configuration
func WithClassifier(cfg classify.Config) Option {
	return func(o *options) { o.classify = cfg }
}

// WithContainmentMargin sets the tolerance of the spatial containment test
func WithContainmentMargin(margin float64) Option {
	return func(o *options) { o.hierarchy.ContainmentMargin = margin }
}

// WithConfig applies loaded settings
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		log := o.log
		*o = fromConfig(cfg)
		o.log = log
	}
}
