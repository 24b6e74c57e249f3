package preprocess

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/rs/zerolog"

	"github.com/docstruct/docstruct/extraction"
)

// Variants offered by PDFCPU
const (
	VariantNormalize = extraction.VariantNormalize
	VariantRepair    = "repair"
	VariantDecrypt   = "decrypt"
)

// PDFCPU rewrites PDFs with pdfcpu so that a text-layer detector gets a
// second chance at documents it could not read. It satisfies
// extraction.Preprocessor.
type PDFCPU struct {
	variants []string
	tempDir  string
	log      zerolog.Logger
}

var _ extraction.Preprocessor = (*PDFCPU)(nil)

// New creates a preprocessor offering the given variants, or all of them
// when none are named.
func New(variants ...string) (*PDFCPU, error) {
	if len(variants) == 0 {
		variants = []string{VariantNormalize, VariantRepair, VariantDecrypt}
	}
	for _, v := range variants {
		switch v {
		case VariantNormalize, VariantRepair, VariantDecrypt:
		default:
			return nil, fmt.Errorf("unknown preprocessing variant %q", v)
		}
	}
	return &PDFCPU{variants: variants, log: zerolog.Nop()}, nil
}

// WithTempDir returns a copy that writes rewritten files under dir
func (p *PDFCPU) WithTempDir(dir string) *PDFCPU {
	cp := *p
	cp.tempDir = dir
	return &cp
}

// WithLogger returns a copy that logs to l
func (p *PDFCPU) WithLogger(l zerolog.Logger) *PDFCPU {
	cp := *p
	cp.log = l.With().Str("component", "preprocess").Logger()
	return &cp
}

// Variants returns the configured variant names
func (p *PDFCPU) Variants() []string {
	return append([]string(nil), p.variants...)
}

// Preprocess writes a rewritten copy of src and returns it with a cleanup
// func that removes the copy.
func (p *PDFCPU) Preprocess(ctx context.Context, src extraction.Source, variant string) (extraction.Source, func(), error) {
	if err := ctx.Err(); err != nil {
		return extraction.Source{}, nil, err
	}

	dir, err := os.MkdirTemp(p.tempDir, "docstruct-"+variant+"-*")
	if err != nil {
		return extraction.Source{}, nil, fmt.Errorf("create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }
	out := filepath.Join(dir, filepath.Base(src.Path))

	switch variant {
	case VariantNormalize:
		err = normalize(src.Path, out)
	case VariantRepair:
		err = repair(src.Path, out)
	case VariantDecrypt:
		err = decrypt(src, out)
	default:
		err = fmt.Errorf("unknown variant %q", variant)
	}
	if err != nil {
		cleanup()
		return extraction.Source{}, nil, err
	}

	p.log.Debug().Str("variant", variant).Str("in", src.Path).Str("out", out).Msg("document rewritten")
	// the rewritten copy is never encrypted
	return extraction.Source{Path: out}, cleanup, nil
}

func relaxed() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// normalize validates and optimizes the document, dropping redundant
// objects and rebuilding the cross-reference table.
func normalize(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	conf := relaxed()
	conf.Optimize = true
	pctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return fmt.Errorf("pdfcpu optimize: %w", err)
	}
	return writeContext(pctx, out)
}

// repair validates leniently and writes the document back out without
// optimizing. The writer always emits a fresh cross-reference table, which
// is what broken offsets need; object streams and resources are left as
// they were.
func repair(in, out string) error {
	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	conf := relaxed()
	conf.Optimize = false
	pctx, err := api.ReadAndValidate(f, conf)
	if err != nil {
		return fmt.Errorf("pdfcpu read: %w", err)
	}
	return writeContext(pctx, out)
}

func decrypt(src extraction.Source, out string) error {
	conf := relaxed()
	conf.UserPW = src.Password
	conf.OwnerPW = src.Password
	if err := api.DecryptFile(src.Path, out, conf); err != nil {
		return fmt.Errorf("pdfcpu decrypt: %w", err)
	}
	return nil
}

func writeContext(pctx *model.Context, out string) error {
	w, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := api.WriteContext(pctx, w); err != nil {
		w.Close()
		return fmt.Errorf("pdfcpu write: %w", err)
	}
	return w.Close()
}

// PageCount reads the page count with pdfcpu. It is used to report page
// counts for degraded results when no strategy could extract anything.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := api.PageCount(f, relaxed())
	if err != nil {
		return 0, fmt.Errorf("pdfcpu page count: %w", err)
	}
	return n, nil
}
