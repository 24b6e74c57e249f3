package coords

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/docstruct/docstruct/model"
)

func TestToImageSpace(t *testing.T) {
	tests := []struct {
		name   string
		in     model.BBox
		height float64
		scale  float64
		role   model.Role
		want   model.BBox
	}{
		{
			name:   "title at top of A4",
			in:     model.NewBBox(50, 780, 300, 800),
			height: 842, scale: 1, role: model.RoleTitle,
			want: model.NewBBox(50, 42, 300, 62),
		},
		{
			name:   "text scaled by two",
			in:     model.NewBBox(50, 700, 500, 770),
			height: 842, scale: 2, role: model.RoleText,
			want: model.NewBBox(100, 144, 1000, 284),
		},
		{
			name:   "inverted input is swapped",
			in:     model.NewBBox(300, 800, 50, 780),
			height: 842, scale: 1, role: model.RoleText,
			want: model.NewBBox(50, 42, 300, 62),
		},
		{
			name:   "figure is not flipped",
			in:     model.NewBBox(10, 100, 200, 300),
			height: 842, scale: 2, role: model.RoleFigure,
			want: model.NewBBox(20, 200, 400, 600),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToImageSpace(tt.in, tt.height, tt.scale, tt.role))
		})
	}
}

func TestToPDFSpaceZeroScale(t *testing.T) {
	assert.Equal(t, model.BBox{}, ToPDFSpace(model.NewBBox(1, 2, 3, 4), 842, 0, model.RoleText))
}

func TestContains(t *testing.T) {
	table := model.NewBBox(0, 0, 200, 100)

	tests := []struct {
		name   string
		inner  model.BBox
		margin float64
		want   bool
	}{
		{"exact tile", model.NewBBox(0, 0, 100, 50), DefaultMargin, true},
		{"same box", table, 0, true},
		{"overhang within margin", model.NewBBox(-4, -4, 204, 104), DefaultMargin, true},
		{"overhang beyond margin", model.NewBBox(-6, 0, 100, 50), DefaultMargin, false},
		{"disjoint", model.NewBBox(300, 300, 310, 310), DefaultMargin, false},
		{"inverted inner", model.NewBBox(100, 50, 0, 0), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Contains(table, tt.inner, tt.margin))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name       string
		in         model.BBox
		want       model.BBox
		degenerate bool
	}{
		{"valid", model.NewBBox(0, 0, 10, 10), model.NewBBox(0, 0, 10, 10), false},
		{"inverted but valid", model.NewBBox(10, 10, 0, 0), model.NewBBox(0, 0, 10, 10), false},
		{"zero width", model.NewBBox(5, 0, 5, 10), model.NewBBox(5, 0, 5, 0), true},
		{"nan corner", model.NewBBox(math.NaN(), 3, 7, 9), model.NewBBox(7, 3, 7, 3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, degenerate := Sanitize(tt.in)
			assert.Equal(t, tt.degenerate, degenerate)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHelpers(t *testing.T) {
	b := model.NewBBox(0, 0, 40, 10)
	assert.Equal(t, 400.0, Area(b))
	assert.Equal(t, 4.0, AspectRatio(b))
	assert.Equal(t, model.Point{X: 20, Y: 5}, Center(b))
	assert.Equal(t, 2.0, ScaleForDPI(144))
	assert.InDelta(t, 0.0, VerticalRatio(model.NewBBox(0, 842, 10, 842), 842), 1e-9)
	assert.InDelta(t, 1.0, VerticalRatio(model.NewBBox(0, 0, 10, 0), 842), 1e-9)
}

// ============================================================================
// Property Tests
// ============================================================================

func drawBox(t *rapid.T, label string) model.BBox {
	x1 := rapid.Float64Range(0, 1000).Draw(t, label+".x1")
	y1 := rapid.Float64Range(0, 1000).Draw(t, label+".y1")
	w := rapid.Float64Range(0, 500).Draw(t, label+".w")
	h := rapid.Float64Range(0, 500).Draw(t, label+".h")
	return model.NewBBox(x1, y1, x1+w, y1+h)
}

func drawIntBox(t *rapid.T, label string) model.BBox {
	x1 := rapid.IntRange(0, 600).Draw(t, label+".x1")
	y1 := rapid.IntRange(0, 800).Draw(t, label+".y1")
	w := rapid.IntRange(0, 300).Draw(t, label+".w")
	h := rapid.IntRange(0, 300).Draw(t, label+".h")
	return model.NewBBox(float64(x1), float64(y1), float64(x1+w), float64(y1+h))
}

func TestPropertyRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := drawBox(t, "box")
		height := rapid.Float64Range(100, 2000).Draw(t, "height")
		scale := rapid.Float64Range(0.25, 4).Draw(t, "scale")
		role := rapid.SampledFrom(model.Roles()).Draw(t, "role")

		back := ToPDFSpace(ToImageSpace(b, height, scale, role), height, scale, role)
		const eps = 1e-6
		if math.Abs(back.X1-b.X1) > eps || math.Abs(back.Y1-b.Y1) > eps ||
			math.Abs(back.X2-b.X2) > eps || math.Abs(back.Y2-b.Y2) > eps {
			t.Fatalf("round trip %v -> %v", b, back)
		}
	})
}

func TestPropertyNormalizedOrdering(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := model.NewBBox(
			rapid.Float64Range(-1000, 1000).Draw(t, "x1"),
			rapid.Float64Range(-1000, 1000).Draw(t, "y1"),
			rapid.Float64Range(-1000, 1000).Draw(t, "x2"),
			rapid.Float64Range(-1000, 1000).Draw(t, "y2"),
		)
		height := rapid.Float64Range(1, 2000).Draw(t, "height")
		scale := rapid.Float64Range(0.25, 4).Draw(t, "scale")
		role := rapid.SampledFrom(model.Roles()).Draw(t, "role")

		img := ToImageSpace(b, height, scale, role)
		if img.X1 > img.X2 || img.Y1 > img.Y2 {
			t.Fatalf("image box not ordered: %v", img)
		}
	})
}

func TestPropertyContainsReflexive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := drawBox(t, "box")
		margin := rapid.Float64Range(0, 20).Draw(t, "margin")
		if !Contains(b, b, margin) {
			t.Fatalf("%v does not contain itself with margin %v", b, margin)
		}
	})
}

func TestPropertyContainsMarginMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		outer := drawBox(t, "outer")
		inner := drawBox(t, "inner")
		m1 := rapid.Float64Range(0, 20).Draw(t, "m1")
		m2 := m1 + rapid.Float64Range(0, 20).Draw(t, "extra")
		if Contains(outer, inner, m1) && !Contains(outer, inner, m2) {
			t.Fatalf("containment lost when margin grew from %v to %v", m1, m2)
		}
	})
}

func TestPropertyContainsAntisymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawIntBox(t, "a")
		b := drawIntBox(t, "b")
		if Contains(a, b, 0) && Contains(b, a, 0) && a != b {
			t.Fatalf("mutual containment of distinct boxes %v and %v", a, b)
		}
	})
}

func TestPropertyContainmentPreserved(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		outer := drawIntBox(t, "outer")
		inner := drawIntBox(t, "inner")
		role := rapid.SampledFrom([]model.Role{model.RoleTable, model.RoleList, model.RoleText}).Draw(t, "role")

		pdf := Contains(outer, inner, 0)
		img := Contains(ToImageSpace(outer, 842, 1, role), ToImageSpace(inner, 842, 1, role), 0)
		if pdf != img {
			t.Fatalf("containment differs across spaces: pdf=%v image=%v", pdf, img)
		}
	})
}
