package services

import (
	"github.com/ghuser/beanbridge/pkg/app"
	"github.com/ghuser/beanbridge/services/content/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
type Services struct {
	Content *ContentService
}

// New wires the content application services with infrastructure from the
// Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewContentRepository(a.Db)
	return &Services{
		Content: NewContentService(repo, a.Redis, a.Logger, a.Cfg.Locales()),
	}
}
