package pdftext

import (
	"math"
	"sort"
	"strings"

	"github.com/docstruct/docstruct/classify"
	"github.com/docstruct/docstruct/model"
)

// Fragment is a positioned run of text from a page's content stream.
// X and Y locate the baseline start in PDF space.
type Fragment struct {
	Text     string
	X        float64
	Y        float64
	Width    float64
	FontSize float64
}

// Config holds configuration for text-layer detection
type Config struct {
	// LineHeightTolerance is the Y-distance tolerance for grouping fragments
	// into lines as a fraction of font size
	// Default: 0.5
	LineHeightTolerance float64

	// SpaceThreshold is the horizontal gap, as a fraction of font size,
	// above which a space is inserted between fragments
	// Default: 0.25
	SpaceThreshold float64

	// VerticalGapThreshold is the baseline distance, as a fraction of font
	// size, beyond which a new block starts
	// Default: 1.6
	VerticalGapThreshold float64

	// FontSizeTolerance is the font size difference (points) allowed within
	// one block
	// Default: 1.0
	FontSizeTolerance float64

	// TitleRatio and HeadingRatio are font size multiples of the body text
	// size that mark a block as a title or a section heading
	// Default: 1.5, 1.2
	TitleRatio   float64
	HeadingRatio float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		LineHeightTolerance:  0.5,
		SpaceThreshold:       0.25,
		VerticalGapThreshold: 1.6,
		FontSizeTolerance:    1.0,
		TitleRatio:           1.5,
		HeadingRatio:         1.2,
	}
}

type line struct {
	frags    []Fragment
	text     string
	bbox     model.BBox
	baseline float64
	fontSize float64
}

type block struct {
	lines    []line
	bbox     model.BBox
	fontSize float64
}

// Elements groups fragments into lines, lines into blocks, and returns one
// detected element per block in top-to-bottom order.
func Elements(frags []Fragment, cfg Config) []model.DetectedElement {
	frags = usable(frags)
	if len(frags) == 0 {
		return nil
	}

	body := bodyFontSize(frags)
	lines := groupIntoLines(frags, cfg)
	blocks := groupIntoBlocks(lines, cfg)

	out := make([]model.DetectedElement, 0, len(blocks))
	for i, b := range blocks {
		texts := make([]string, len(b.lines))
		for j, l := range b.lines {
			texts[j] = l.text
		}
		el := model.Ingest(hintForSize(b.fontSize, body, cfg), b.bbox, strings.Join(texts, "\n"))
		el.Order = i
		out = append(out, el)
	}
	return out
}

func usable(frags []Fragment) []Fragment {
	out := frags[:0:0]
	for _, f := range frags {
		if strings.TrimSpace(f.Text) == "" && f.Width <= 0 {
			continue
		}
		if f.FontSize <= 0 {
			f.FontSize = 1
		}
		out = append(out, f)
	}
	return out
}

// bodyFontSize is the font size carrying the most characters
func bodyFontSize(frags []Fragment) float64 {
	weight := make(map[float64]int)
	for _, f := range frags {
		weight[math.Round(f.FontSize*2)/2] += len([]rune(f.Text))
	}
	best, bestN := 0.0, -1
	for size, n := range weight {
		if n > bestN || (n == bestN && size < best) {
			best, bestN = size, n
		}
	}
	return best
}

func hintForSize(size, body float64, cfg Config) string {
	if body <= 0 {
		return ""
	}
	switch r := size / body; {
	case r >= cfg.TitleRatio:
		return "title"
	case r >= cfg.HeadingRatio:
		return "section_header"
	default:
		return ""
	}
}

// groupIntoLines buckets fragments by baseline, top of page first, and
// orders each line left to right.
func groupIntoLines(frags []Fragment, cfg Config) []line {
	sorted := append([]Fragment(nil), frags...)
	sort.SliceStable(sorted, func(i, j int) bool {
		tol := math.Max(sorted[i].FontSize, sorted[j].FontSize) * cfg.LineHeightTolerance
		if d := sorted[i].Y - sorted[j].Y; math.Abs(d) > tol {
			return d > 0
		}
		return false
	})

	var groups [][]Fragment
	var current []Fragment
	var sumY float64
	for _, f := range sorted {
		if len(current) > 0 {
			avgY := sumY / float64(len(current))
			if math.Abs(f.Y-avgY) > f.FontSize*cfg.LineHeightTolerance {
				groups = append(groups, current)
				current, sumY = nil, 0
			}
		}
		current = append(current, f)
		sumY += f.Y
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	lines := make([]line, len(groups))
	for i, g := range groups {
		sort.SliceStable(g, func(a, b int) bool { return g[a].X < g[b].X })
		lines[i] = buildLine(g, cfg)
	}
	return lines
}

func buildLine(frags []Fragment, cfg Config) line {
	var sb strings.Builder
	l := line{frags: frags}
	var sumY float64
	for i, f := range frags {
		if i > 0 {
			prev := frags[i-1]
			if gap := f.X - (prev.X + prev.Width); gap > f.FontSize*cfg.SpaceThreshold {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(f.Text)
		sumY += f.Y
		l.fontSize = math.Max(l.fontSize, f.FontSize)

		fb := fragmentBox(f)
		if i == 0 {
			l.bbox = fb
		} else {
			l.bbox = l.bbox.Union(fb)
		}
	}
	l.text = strings.TrimSpace(sb.String())
	l.baseline = sumY / float64(len(frags))
	return l
}

// fragmentBox approximates the glyph box from baseline and font size
func fragmentBox(f Fragment) model.BBox {
	return model.NewBBox(f.X, f.Y-0.2*f.FontSize, f.X+math.Max(f.Width, 0), f.Y+0.8*f.FontSize)
}

// groupIntoBlocks merges consecutive lines into paragraphs. A line starts a
// new block when the vertical gap is too large, the font size changes, or
// the line opens a list item.
func groupIntoBlocks(lines []line, cfg Config) []block {
	var blocks []block
	for _, l := range lines {
		if l.text == "" {
			continue
		}
		if n := len(blocks); n > 0 && continues(blocks[n-1], l, cfg) {
			b := &blocks[n-1]
			b.lines = append(b.lines, l)
			b.bbox = b.bbox.Union(l.bbox)
			continue
		}
		blocks = append(blocks, block{lines: []line{l}, bbox: l.bbox, fontSize: l.fontSize})
	}
	return blocks
}

func continues(b block, l line, cfg Config) bool {
	prev := b.lines[len(b.lines)-1]
	if math.Abs(prev.fontSize-l.fontSize) > cfg.FontSizeTolerance {
		return false
	}
	if prev.baseline-l.baseline > l.fontSize*cfg.VerticalGapThreshold {
		return false
	}
	return !classify.IsListItemText(l.text)
}
