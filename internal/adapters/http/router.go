package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires every marketplace route. Mutating operations require a
// bearer token; market snapshots and report routes are read-only and open.
func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware(h.logger))

	r.Get("/healthz", h.healthz)
	r.Get("/readyz", h.readyz)

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware)

			r.Post("/users", h.register)
			r.Put("/users/me/role", h.changeRole)

			r.Post("/products", h.publishProduct)
			r.Get("/products/mine", h.listOwnProducts)

			r.Post("/orders", h.createOrder)
			r.Post("/orders/{id}/ship", h.markShipped)
			r.Post("/orders/{id}/receive", h.markReceived)
			r.Post("/orders/{id}/cancellation-request", h.requestCancellation)
			r.Post("/orders/{id}/rate-seller", h.rateSeller)
			r.Post("/orders/{id}/rate-buyer", h.rateBuyer)
		})

		r.Get("/users/{identity}", h.getUser)
		r.Get("/users/{identity}/registered", h.isRegistered)
		r.Get("/products/seller/{identity}", h.listProductsBySeller)

		r.Route("/market", func(r chi.Router) {
			r.Get("/users", h.listAllUsers)
			r.Get("/products", h.listAllProducts)
			r.Get("/orders", h.listAllOrders)
			r.Get("/counts", h.marketCounts)
		})

		if h.reports != nil {
			r.Route("/reports", func(r chi.Router) {
				r.Get("/top-sellers", h.topSellers)
				r.Get("/top-buyers", h.topBuyers)
				r.Get("/top-products", h.topProductsSold)
				r.Get("/users/{identity}/order-count", h.totalOrdersFor)
			})
		}
	})

	return r
}
