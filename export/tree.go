package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/docstruct/docstruct"
	"github.com/docstruct/docstruct/model"
)

// previewRunes bounds the text shown per node in the tree view
const previewRunes = 60

// Tree writes res as an indented outline, one node per line
func Tree(w io.Writer, res *docstruct.Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Document %s: %s", res.DocumentID, res.Status)
	if res.MethodUsed != "" {
		fmt.Fprintf(bw, " via %s", res.MethodUsed)
	}
	fmt.Fprintf(bw, ", %d page(s)\n", res.PageCount)

	for _, p := range res.Pages {
		fmt.Fprintf(bw, "\nPage %d (%.0fx%.0f)\n", p.Number, p.Width, p.Height)
		for _, r := range p.Roots {
			writeNode(bw, r, 1)
		}
	}

	if res.Structure != nil && len(res.Structure.Sections) > 0 {
		fmt.Fprintln(bw, "\nSections")
		byID := make(map[string]*model.Section, len(res.Structure.Sections))
		for _, s := range res.Structure.Sections {
			byID[s.ID] = s
		}
		for _, s := range res.Structure.TopLevelSections() {
			writeSection(bw, s, byID, 1)
		}
	}

	for _, warn := range res.Warnings {
		fmt.Fprintf(bw, "warning: %s\n", warn)
	}
	return bw.Flush()
}

func writeNode(w io.Writer, n *model.HierarchyNode, depth int) {
	fmt.Fprintf(w, "%s[%s] %s", indent(depth), n.Role, n.ID)
	if text := Preview(n.Text, previewRunes); text != "" {
		fmt.Fprintf(w, " %q", text)
	}
	if flags := n.Flags.Names(); len(flags) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(flags, ", "))
	}
	fmt.Fprintln(w)
	for _, c := range n.Children {
		writeNode(w, c, depth+1)
	}
}

func writeSection(w io.Writer, s *model.Section, byID map[string]*model.Section, depth int) {
	fmt.Fprintf(w, "%s%s %s (p%d-%d): %s\n", indent(depth), s.ID, s.Title, s.StartPage, s.EndPage, s.Summary)
	for _, id := range s.Subsections {
		if sub, ok := byID[id]; ok {
			writeSection(w, sub, byID, depth+1)
		}
	}
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// Preview collapses whitespace in s and cuts it to at most n runes
func Preview(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
