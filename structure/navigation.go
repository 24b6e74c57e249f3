package structure

import (
	"sort"

	"github.com/docstruct/docstruct/model"
)

func buildNavigation(sections []*model.Section) model.NavigationMap {
	nav := model.NavigationMap{
		TableOfContents: []model.TOCEntry{},
		PageIndex:       make(map[int][]string),
		ReadingOrder:    make([]string, 0, len(sections)),
	}

	lastPage := 0
	for _, s := range sections {
		if s.HeadingID != "" {
			nav.TableOfContents = append(nav.TableOfContents, model.TOCEntry{
				SectionID: s.ID,
				Title:     s.Title,
				Page:      s.StartPage,
				Level:     s.Level,
			})
		}
		lastPage = max(lastPage, s.EndPage)
	}

	for page := 1; page <= lastPage; page++ {
		ids := []string{}
		for _, s := range sections {
			if s.StartPage <= page && page <= s.EndPage {
				ids = append(ids, s.ID)
			}
		}
		nav.PageIndex[page] = ids
	}

	ordered := append([]*model.Section(nil), sections...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].StartPage < ordered[j].StartPage
	})
	for _, s := range ordered {
		nav.ReadingOrder = append(nav.ReadingOrder, s.ID)
	}
	return nav
}

func buildStatistics(pages []*model.Page, sections []*model.Section) model.Statistics {
	stats := model.Statistics{
		ElementsByRole:  make(map[string]int),
		ElementsPerPage: make(map[int]int),
	}
	for _, p := range pages {
		if p == nil {
			continue
		}
		p.Walk(func(n *model.HierarchyNode) bool {
			stats.ElementsByRole[n.Role.String()]++
			stats.ElementsPerPage[p.Number]++
			return true
		})
	}

	if len(sections) > 0 {
		total := 0
		for _, s := range sections {
			total += len(s.Content)
		}
		stats.AverageElementsPerSection = float64(total) / float64(len(sections))
	}
	return stats
}
