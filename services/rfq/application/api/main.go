package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/beanbridge/pkg/app"
	"github.com/ghuser/beanbridge/pkg/auth"
	"github.com/ghuser/beanbridge/services/rfq/application/handlers"
	appsvcs "github.com/ghuser/beanbridge/services/rfq/application/services"
)

// RFQRoutes registers RFQ endpoints on the provided chi router.
// Submission is public; everything else sits behind the admin session.
func RFQRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)

	r.Route("/rfq", func(r chi.Router) {
		r.Post("/", handlers.NewPostRFQHandler(svcs).Execute)
	})

	r.Route("/admin/rfq", func(r chi.Router) {
		r.Use(auth.RequireAdmin(a.SessionStore, a.Logger))
		r.Get("/", handlers.NewListRFQsHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetRFQHandler(svcs).Execute)
		r.Patch("/{id}/status", handlers.NewPatchRFQStatusHandler(svcs).Execute)
	})
}
