package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/storefront/pkg/app"
	"github.com/ghuser/storefront/services/shop/application/handlers"
	appsvcs "github.com/ghuser/storefront/services/shop/application/services"
)

// ShopRoutes registers member, item and order endpoints on the provided chi router.
func ShopRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Group(func(r chi.Router) {
		r.Route("/members", func(r chi.Router) {
			r.Post("/", handlers.NewPostMemberHandler(svcs).Execute)
			r.Get("/", handlers.NewGetMembersHandler(svcs).Execute)
		})
		r.Route("/items", func(r chi.Router) {
			r.Post("/", handlers.NewPostItemHandler(svcs).Execute)
			r.Get("/", handlers.NewGetItemsHandler(svcs).List)
			r.Get("/{id}", handlers.NewGetItemsHandler(svcs).Get)
			r.Put("/{id}", handlers.NewPutItemHandler(svcs).Execute)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", handlers.NewPostOrderHandler(svcs).Execute)
			r.Get("/", handlers.NewGetOrdersHandler(svcs).Search)
			r.Get("/{id}", handlers.NewGetOrdersHandler(svcs).Get)
			r.Post("/{id}/cancel", handlers.NewCancelOrderHandler(svcs).Execute)
		})
	})
}
