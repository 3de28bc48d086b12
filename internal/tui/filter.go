package tui

import (
	"github.com/quietloop/sona/internal/domain"
	"github.com/sahilm/fuzzy"
)

// listSource adapts a ListItem slice to fuzzy.Source for in-view filtering
type listSource []domain.ListItem

func (s listSource) String(i int) string { return s[i].GetTitle() }
func (s listSource) Len() int            { return len(s) }

// filterItems narrows items to those fuzzy-matching the query, best first.
// An empty query returns the items unchanged.
func filterItems(items []domain.ListItem, query string) []domain.ListItem {
	if query == "" {
		return items
	}
	matches := fuzzy.FindFrom(query, listSource(items))
	out := make([]domain.ListItem, 0, len(matches))
	for _, m := range matches {
		out = append(out, items[m.Index])
	}
	return out
}
