package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/beanbridge/pkg/app"
	"github.com/ghuser/beanbridge/services/content/application/handlers"
	appsvcs "github.com/ghuser/beanbridge/services/content/application/services"
)

// ContentRoutes registers content endpoints on the provided chi router.
func ContentRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Route("/content", func(r chi.Router) {
		r.Get("/related", handlers.NewGetRelatedHandler(svcs).Execute)
	})
}
