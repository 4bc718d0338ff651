package repositories

import (
	"context"

	"github.com/ghuser/beanbridge/services/content/domain/models"
)

// ContentRepository is the read-only store interface for published content.
// Implementations must already exclude unpublished/draft items and filter by
// exact locale match — an unsupported locale simply yields an empty slice.
type ContentRepository interface {
	// ListByLocale returns the full published candidate universe for a locale
	// across all content kinds.
	ListByLocale(ctx context.Context, locale string) ([]models.ContentItem, error)
}
