package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/ghuser/beanbridge/pkg/logger"
	contentdomain "github.com/ghuser/beanbridge/services/content/domain"
	"github.com/ghuser/beanbridge/services/content/domain/models"
)

type fakeContentRepo struct {
	byLocale map[string][]models.ContentItem
	calls    int
	err      error
}

func (f *fakeContentRepo) ListByLocale(_ context.Context, locale string) ([]models.ContentItem, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.byLocale[locale], nil
}

func contentItem(slug, locale, category string, tags ...string) models.ContentItem {
	return models.ContentItem{
		Slug:        slug,
		Kind:        models.KindArticle,
		Locale:      locale,
		Title:       slug,
		Category:    category,
		Tags:        tags,
		PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testContentService(repo *fakeContentRepo) *ContentService {
	log := logger.FromSlog(slog.New(slog.DiscardHandler))
	return NewContentService(repo, nil, log, []string{"en", "de", "fr", "es"})
}

func TestGetRelated(t *testing.T) {
	repo := &fakeContentRepo{byLocale: map[string][]models.ContentItem{
		"en": {
			contentItem("ethiopia-guide", "en", "sourcing", "arabica", "origins"),
			contentItem("brew-ratios", "en", "brewing", "arabica"),
			contentItem("container-logistics", "en", "logistics", "shipping"),
		},
	}}
	svc := testContentService(repo)

	got, err := svc.GetRelated(context.Background(), RelatedQuery{
		Slug:     "current-page",
		Locale:   "en",
		Tags:     []string{"arabica"},
		Category: "sourcing",
		Limit:    3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d summaries, want 2", len(got))
	}
	if got[0].Slug != "ethiopia-guide" || got[0].Score != 5 {
		t.Errorf("top result = %s(%d), want ethiopia-guide(5)", got[0].Slug, got[0].Score)
	}
	if got[1].Slug != "brew-ratios" || got[1].Score != 2 {
		t.Errorf("second result = %s(%d), want brew-ratios(2)", got[1].Slug, got[1].Score)
	}
	if got[0].URL != "/en/blog/ethiopia-guide" {
		t.Errorf("URL = %q", got[0].URL)
	}
}

func TestGetRelatedValidation(t *testing.T) {
	svc := testContentService(&fakeContentRepo{})

	t.Run("missing slug", func(t *testing.T) {
		_, err := svc.GetRelated(context.Background(), RelatedQuery{Locale: "en"})
		if !errors.Is(err, contentdomain.ErrMissingSlug) {
			t.Fatalf("error = %v, want ErrMissingSlug", err)
		}
	})

}

func TestGetRelatedUnsupportedLocale(t *testing.T) {
	repo := &fakeContentRepo{byLocale: map[string][]models.ContentItem{
		"en": {contentItem("ethiopia-guide", "en", "sourcing", "arabica")},
	}}
	svc := testContentService(repo)

	got, err := svc.GetRelated(context.Background(), RelatedQuery{
		Slug:   "x",
		Locale: "pt",
		Tags:   []string{"arabica"},
	})
	if err != nil {
		t.Fatalf("unsupported locale must not be an error, got: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d summaries for an unpublished locale, want 0", len(got))
	}
	if repo.calls != 1 {
		t.Fatalf("store queried %d times, want 1 (exact locale match yields the empty set)", repo.calls)
	}
}

func TestGetRelatedEmptyUniverse(t *testing.T) {
	repo := &fakeContentRepo{byLocale: map[string][]models.ContentItem{}}
	svc := testContentService(repo)

	got, err := svc.GetRelated(context.Background(), RelatedQuery{Slug: "x", Locale: "de"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d summaries from an empty locale, want 0", len(got))
	}
}

func TestGetRelatedRepoError(t *testing.T) {
	repo := &fakeContentRepo{err: errors.New("db down")}
	svc := testContentService(repo)

	if _, err := svc.GetRelated(context.Background(), RelatedQuery{Slug: "x", Locale: "en"}); err == nil {
		t.Fatal("expected error when the store is unavailable")
	}
}
