package structure

import (
	"fmt"
	"strings"

	"github.com/docstruct/docstruct/model"
)

// StartTitle names the section holding content that precedes the first heading
const StartTitle = "Document Start"

// buildSections splits the flow at every heading. Content before the first
// heading goes into a leading untitled section. Sections nest by heading
// level the way an outline does: a section is a subsection of the nearest
// earlier section with a lower level.
func buildSections(flow []*model.HierarchyNode) []*model.Section {
	var sections []*model.Section
	var current *model.Section
	counts := make(map[*model.Section]*roleCounter)

	for _, n := range flow {
		if n.Role.IsHeading() {
			current = &model.Section{
				ID:        fmt.Sprintf("section_%d", len(sections)+1),
				Title:     n.Text,
				Level:     n.Level,
				StartPage: n.Page,
				EndPage:   n.Page,
				HeadingID: n.ID,
				Content:   []string{},
			}
			sections = append(sections, current)
			counts[current] = &roleCounter{}
			continue
		}

		if current == nil {
			current = &model.Section{
				ID:        fmt.Sprintf("section_%d", len(sections)+1),
				Title:     StartTitle,
				StartPage: n.Page,
				EndPage:   n.Page,
				Content:   []string{},
			}
			sections = append(sections, current)
			counts[current] = &roleCounter{}
		}
		current.Content = append(current.Content, n.ID)
		current.EndPage = n.Page
		counts[current].add(n.Role)
	}

	for _, s := range sections {
		s.Summary = counts[s].summary()
	}
	nestSections(sections)
	return sections
}

// nestSections fills Subsections using a stack of open sections
func nestSections(sections []*model.Section) {
	var stack []*model.Section
	for _, s := range sections {
		if s.HeadingID == "" {
			continue
		}
		for len(stack) > 0 && stack[len(stack)-1].Level >= s.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Subsections = append(parent.Subsections, s.ID)
		}
		stack = append(stack, s)
	}
}

// roleCounter counts roles in first-seen order
type roleCounter struct {
	order  []model.Role
	counts map[model.Role]int
}

func (c *roleCounter) add(r model.Role) {
	if c.counts == nil {
		c.counts = make(map[model.Role]int)
	}
	if c.counts[r] == 0 {
		c.order = append(c.order, r)
	}
	c.counts[r]++
}

// summary renders counts such as "2 texts, 1 table"
func (c *roleCounter) summary() string {
	if len(c.order) == 0 {
		return "No content"
	}
	parts := make([]string, len(c.order))
	for i, r := range c.order {
		n := c.counts[r]
		if n > 1 {
			parts[i] = fmt.Sprintf("%d %ss", n, r)
		} else {
			parts[i] = fmt.Sprintf("1 %s", r)
		}
	}
	return strings.Join(parts, ", ")
}
