package export

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/docstruct/docstruct"
	"github.com/docstruct/docstruct/model"
	"github.com/docstruct/docstruct/render"
)

const stylesheet = `
body { font-family: sans-serif; margin: 2em; }
nav { border-bottom: 1px solid #ccc; margin-bottom: 1em; }
ul.tree, ul.tree ul { list-style: none; padding-left: 1.2em; }
li.node { margin: 0.2em 0; }
.role { display: inline-block; min-width: 8em; font-size: 0.8em; font-weight: bold; }
.id { color: #888; font-size: 0.8em; margin-right: 0.5em; }
.flag { color: #c00; font-size: 0.8em; margin-left: 0.5em; }
`

// HTML writes res as a standalone page: a table of contents followed by
// every page's element tree, each element tagged with its role color.
func HTML(w io.Writer, res *docstruct.Result) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	head.AppendChild(withText(element(atom.Title), documentTitle(res)))
	head.AppendChild(withText(element(atom.Style), stylesheet))
	root.AppendChild(head)

	body := element(atom.Body)
	root.AppendChild(body)
	body.AppendChild(withText(element(atom.H1), documentTitle(res)))
	body.AppendChild(withText(element(atom.P, attr("class", "summary")), summaryLine(res)))

	if nav := tableOfContents(res); nav != nil {
		body.AppendChild(nav)
	}
	for _, p := range res.Pages {
		body.AppendChild(pageSection(p))
	}
	if len(res.Warnings) > 0 {
		list := element(atom.Ul, attr("class", "warnings"))
		for _, warn := range res.Warnings {
			list.AppendChild(withText(element(atom.Li), warn.String()))
		}
		body.AppendChild(list)
	}

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}

func documentTitle(res *docstruct.Result) string {
	if res.Source != "" {
		return res.Source
	}
	return res.DocumentID
}

func summaryLine(res *docstruct.Result) string {
	line := fmt.Sprintf("%s, %d page(s)", res.Status, res.PageCount)
	if res.MethodUsed != "" {
		line += ", extracted via " + res.MethodUsed
	}
	if res.Summary.DocumentType != "" {
		line += fmt.Sprintf(", %s (confidence %.2f)", res.Summary.DocumentType, res.Summary.StructureConfidence)
	}
	return line
}

func tableOfContents(res *docstruct.Result) *html.Node {
	if res.Structure == nil || len(res.Structure.Navigation.TableOfContents) == 0 {
		return nil
	}
	byID := make(map[string]*model.Section, len(res.Structure.Sections))
	for _, s := range res.Structure.Sections {
		byID[s.ID] = s
	}

	nav := element(atom.Nav)
	nav.AppendChild(withText(element(atom.H2), "Contents"))
	list := element(atom.Ul, attr("class", "toc"))
	for _, e := range res.Structure.Navigation.TableOfContents {
		href := "#page-" + fmt.Sprint(e.Page)
		if s, ok := byID[e.SectionID]; ok && s.HeadingID != "" {
			href = "#" + s.HeadingID
		}
		li := element(atom.Li, attr("class", fmt.Sprintf("level-%d", e.Level)))
		li.AppendChild(withText(element(atom.A, attr("href", href)), e.Title))
		li.AppendChild(text(fmt.Sprintf(" (p. %d)", e.Page)))
		list.AppendChild(li)
	}
	nav.AppendChild(list)
	return nav
}

func pageSection(p *model.Page) *html.Node {
	sec := element(atom.Section, attr("class", "page"), attr("id", fmt.Sprintf("page-%d", p.Number)))
	sec.AppendChild(withText(element(atom.H2), fmt.Sprintf("Page %d", p.Number)))
	if len(p.Roots) == 0 {
		return sec
	}
	list := element(atom.Ul, attr("class", "tree"))
	for _, r := range p.Roots {
		list.AppendChild(nodeItem(r))
	}
	sec.AppendChild(list)
	return sec
}

func nodeItem(n *model.HierarchyNode) *html.Node {
	c := render.RoleColor(n.Role)
	li := element(atom.Li,
		attr("class", "node role-"+n.Role.String()),
		attr("id", n.ID),
		attr("style", fmt.Sprintf("border-left: 3px solid #%02x%02x%02x; padding-left: 0.4em", c.R, c.G, c.B)),
	)
	li.AppendChild(withText(element(atom.Span, attr("class", "role")), render.Label(&model.HierarchyNode{Role: n.Role, List: n.List, Cell: n.Cell})))
	li.AppendChild(withText(element(atom.Span, attr("class", "id")), n.ID))
	if t := strings.TrimSpace(n.Text); t != "" {
		li.AppendChild(text(t))
	}
	for _, f := range n.Flags.Names() {
		li.AppendChild(withText(element(atom.Span, attr("class", "flag")), f))
	}
	if len(n.Children) > 0 {
		list := element(atom.Ul)
		for _, child := range n.Children {
			list.AppendChild(nodeItem(child))
		}
		li.AppendChild(list)
	}
	return li
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(text(s))
	return n
}
