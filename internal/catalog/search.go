package catalog

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/quietloop/sona/internal/domain"
)

// SearchResult is a ranked catalog match
type SearchResult struct {
	Item     domain.ListItem
	CourseID string // set when the item is a course
	TrackID  string // set when the item is an ambience track
	Rank     int    // lower is better
}

// Search ranks courses and ambience tracks against the query using
// normalized fuzzy matching (diacritic- and case-insensitive).
func (c *Catalog) Search(query string) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	var items []domain.ListItem
	for _, course := range c.courses {
		items = append(items, course)
	}
	for _, cat := range c.categories {
		for _, track := range cat.Tracks {
			items = append(items, track)
		}
	}

	titles := make([]string, len(items))
	for i, item := range items {
		titles[i] = item.GetTitle()
	}

	ranks := fuzzy.RankFindNormalizedFold(query, titles)
	sort.Sort(ranks)

	results := make([]SearchResult, 0, len(ranks))
	for _, r := range ranks {
		item := items[r.OriginalIndex]
		res := SearchResult{Item: item, Rank: r.Distance}
		switch item.GetItemType() {
		case "course":
			res.CourseID = item.GetID()
		case "track":
			res.TrackID = item.GetID()
		}
		results = append(results, res)
	}
	return results
}
