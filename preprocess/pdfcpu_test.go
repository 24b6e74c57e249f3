package preprocess

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstruct/docstruct/extraction"
)

func TestNewVariants(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	assert.Equal(t, []string{"normalize", "repair", "decrypt"}, p.Variants())

	p, err = New("repair")
	require.NoError(t, err)
	assert.Equal(t, []string{"repair"}, p.Variants())

	_, err = New("shred")
	assert.Error(t, err)
}

func TestVariantsAreCopied(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	v := p.Variants()
	v[0] = "changed"
	assert.Equal(t, "normalize", p.Variants()[0])
}

func TestPreprocessFailureCleansUp(t *testing.T) {
	tmp := t.TempDir()
	bogus := filepath.Join(tmp, "bogus.pdf")
	require.NoError(t, os.WriteFile(bogus, []byte("not a pdf"), 0o644))

	work := t.TempDir()
	p, err := New()
	require.NoError(t, err)
	p = p.WithTempDir(work)

	for _, v := range p.Variants() {
		t.Run(v, func(t *testing.T) {
			_, cleanup, err := p.Preprocess(context.Background(), extraction.Source{Path: bogus}, v)
			assert.Error(t, err)
			assert.Nil(t, cleanup)

			entries, err := os.ReadDir(work)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestPreprocessCancelled(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = p.Preprocess(ctx, extraction.Source{Path: "x.pdf"}, VariantNormalize)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPageCountMissingFile(t *testing.T) {
	_, err := PageCount(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

// ============================================================================
// Fixture Tests
// ============================================================================

const fixture = "testdata/two-pages.pdf"

func TestPageCount(t *testing.T) {
	n, err := PageCount(fixture)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRewriteVariants(t *testing.T) {
	work := t.TempDir()
	p, err := New(VariantNormalize, VariantRepair)
	require.NoError(t, err)
	p = p.WithTempDir(work)

	for _, v := range p.Variants() {
		t.Run(v, func(t *testing.T) {
			src := extraction.Source{Path: fixture, Password: "unused"}
			out, cleanup, err := p.Preprocess(context.Background(), src, v)
			require.NoError(t, err)
			require.NotNil(t, cleanup)

			assert.NotEqual(t, fixture, out.Path)
			assert.Empty(t, out.Password, "rewritten copies are unencrypted")
			assert.Equal(t, "two-pages.pdf", filepath.Base(out.Path))

			n, err := PageCount(out.Path)
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			cleanup()
			_, err = os.Stat(out.Path)
			assert.ErrorIs(t, err, os.ErrNotExist)
		})
	}

	entries, err := os.ReadDir(work)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
