// Package services contains the stateless relevance scorer for the content
// bounded context. It is a deliberately cheap additive ranker, not a general
// IR engine: it runs on every content detail page render.
package services

import (
	"sort"

	"github.com/ghuser/beanbridge/services/content/domain/models"
)

// Scoring constants. A candidate earns TagMatchScore per shared tag (counted,
// not boolean) and a flat CategoryMatchScore when its category equals the
// query category.
const (
	TagMatchScore      = 2
	CategoryMatchScore = 3
	DefaultLimit       = 3
)

// ScoredItem pairs a candidate with its relevance score.
type ScoredItem struct {
	Item  models.ContentItem
	Score int
}

// RankRelated scores candidates against the query tags and category, drops
// the current item and anything with no relevance signal, and returns at most
// limit items ordered by descending score. Ties keep encounter order
// (stable sort), so results are deterministic for a fixed candidate slice.
func RankRelated(candidates []models.ContentItem, currentSlug string, tags []string, category string, limit int) []ScoredItem {
	if limit <= 0 {
		limit = DefaultLimit
	}

	querySet := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		querySet[t] = struct{}{}
	}

	scored := make([]ScoredItem, 0, len(candidates))
	for _, c := range candidates {
		if c.Slug == currentSlug {
			continue
		}

		score := 0
		for _, t := range c.Tags {
			if _, ok := querySet[t]; ok {
				score += TagMatchScore
			}
		}
		if category != "" && c.Category == category {
			score += CategoryMatchScore
		}

		if score <= 0 {
			continue
		}
		scored = append(scored, ScoredItem{Item: c, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
