package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/beanbridge/pkg/cache"
	"github.com/ghuser/beanbridge/pkg/logger"
	contentdomain "github.com/ghuser/beanbridge/services/content/domain"
	"github.com/ghuser/beanbridge/services/content/domain/models"
	"github.com/ghuser/beanbridge/services/content/domain/repositories"
	domainsvcs "github.com/ghuser/beanbridge/services/content/domain/services"
)

// candidateCacheTTL bounds the staleness of the per-locale candidate universe.
// CMS syncs land every few minutes, so a short TTL is enough.
const candidateCacheTTL = 5 * time.Minute

// RelatedQuery describes the page asking for related content.
type RelatedQuery struct {
	Slug     string
	Locale   string
	Tags     []string
	Category string
	Limit    int
}

// ContentService serves related-content queries for page renderers. The
// candidate universe per locale is cached in Redis; scoring itself is
// in-process and cheap.
type ContentService struct {
	repo    repositories.ContentRepository
	redis   *pkgcache.RedisClient
	log     logger.Logger
	locales map[string]struct{}
}

// NewContentService wires a ContentService. redis may be nil; every query then
// reads the candidate list from the store.
func NewContentService(repo repositories.ContentRepository, redis *pkgcache.RedisClient, log logger.Logger, locales []string) *ContentService {
	set := make(map[string]struct{}, len(locales))
	for _, l := range locales {
		set[l] = struct{}{}
	}
	return &ContentService{repo: repo, redis: redis, log: log, locales: set}
}

// GetRelated ranks the locale's published items against the query and returns
// the top summaries. An unknown slug is not an error: the caller's page may
// simply be unindexed yet, and it scores like any other query. An unsupported
// locale is not an error either — the store's exact locale match yields an
// empty candidate set, so the result is simply empty.
func (s *ContentService) GetRelated(ctx context.Context, q RelatedQuery) ([]models.Summary, error) {
	if q.Slug == "" {
		return nil, contentdomain.ErrMissingSlug
	}
	if _, ok := s.locales[q.Locale]; !ok {
		s.log.DebugContext(ctx, "related-content query for unconfigured locale", "locale", q.Locale)
	}

	candidates, err := s.candidates(ctx, q.Locale)
	if err != nil {
		return nil, err
	}

	scored := domainsvcs.RankRelated(candidates, q.Slug, q.Tags, q.Category, q.Limit)

	summaries := make([]models.Summary, 0, len(scored))
	for _, sc := range scored {
		item := sc.Item
		summaries = append(summaries, models.Summary{
			Slug:        item.Slug,
			Kind:        item.Kind,
			Locale:      item.Locale,
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL(),
			Category:    item.Category,
			Tags:        item.Tags,
			Score:       sc.Score,
		})
	}
	return summaries, nil
}

// candidates returns the locale's published items, via the Redis cache when
// available. Cache failures degrade to a direct store read.
func (s *ContentService) candidates(ctx context.Context, locale string) ([]models.ContentItem, error) {
	key := "content:candidates:" + locale

	if s.redis != nil {
		data, err := s.redis.Client().Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var items []models.ContentItem
			if err := json.Unmarshal(data, &items); err == nil {
				return items, nil
			}
		case err != redis.Nil:
			s.log.WarnContext(ctx, "content candidate cache read failed", "locale", locale, "error", err)
		}
	}

	items, err := s.repo.ListByLocale(ctx, locale)
	if err != nil {
		return nil, fmt.Errorf("load content candidates: %w", err)
	}

	if s.redis != nil {
		if payload, err := json.Marshal(items); err == nil {
			if err := s.redis.Client().Set(ctx, key, payload, candidateCacheTTL).Err(); err != nil {
				s.log.WarnContext(ctx, "content candidate cache write failed", "locale", locale, "error", err)
			}
		}
	}
	return items, nil
}
