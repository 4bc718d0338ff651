package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ghuser/beanbridge/pkg/database"
	"github.com/ghuser/beanbridge/services/content/domain/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ContentRepository implements repositories.ContentRepository against
// PostgreSQL. Content rows are synced in from the CMS; this side only reads.
type ContentRepository struct {
	db *database.Database
}

// NewContentRepository returns a ContentRepository backed by the given pool.
func NewContentRepository(db *database.Database) *ContentRepository {
	return &ContentRepository{db: db}
}

// ListByLocale returns all published items for the locale, newest first.
// Unknown locales match nothing and return an empty slice.
func (r *ContentRepository) ListByLocale(ctx context.Context, locale string) ([]models.ContentItem, error) {
	query, args, err := psql.
		Select("slug", "kind", "locale", "title", "description", "excerpt",
			"category", "tags", "published_at", "featured").
		From("content_items").
		Where(sq.Eq{"locale": locale, "published": true}).
		OrderBy("published_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build content query: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list content for locale %s: %w", locale, err)
	}
	defer rows.Close()

	items := []models.ContentItem{}
	for rows.Next() {
		var item models.ContentItem
		var tags pq.StringArray
		if err := rows.Scan(
			&item.Slug, &item.Kind, &item.Locale, &item.Title, &item.Description,
			&item.Excerpt, &item.Category, &tags, &item.PublishedAt, &item.Featured,
		); err != nil {
			return nil, fmt.Errorf("scan content item: %w", err)
		}
		item.Tags = tags
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate content items: %w", err)
	}
	return items, nil
}
