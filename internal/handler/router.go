package handler

import (
	"net/http"

	"sainaman-be/internal/logger"
	"sainaman-be/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the HTTP surface. Cart routes require a bearer token,
// checkout and its confirmation read stay public, admin routes additionally
// require the admin role.
func NewRouter(cartH *CartHandler, orderH *OrderHandler, paymentH *PaymentHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.RateLimitMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/", cartH.Get)
			r.Post("/add", cartH.Add)
			r.Post("/update", cartH.Update)
			r.Post("/remove", cartH.Remove)
			r.Post("/clear", cartH.Clear)
		})

		r.Post("/orders", orderH.Create)
		r.Get("/orders/{id}", orderH.Get)

		r.Route("/user", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/orders", orderH.ListMine)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)
			r.Patch("/orders/{id}/status", orderH.UpdateStatus)
		})

		r.Route("/payment", func(r chi.Router) {
			r.Post("/order", paymentH.CreateOrder)
			r.Post("/verify", paymentH.Verify)
		})
	})

	return r
}
