package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/httpserver/handlers"
)

func init() { Register(registerFavicon) }

func registerFavicon(r chi.Router, d deps.Deps) {
	r.Get("/api/favicon/{host}", handlers.GetFavicon(d))
	r.With(adminChain(d)...).Post("/api/favicon/refresh", handlers.RefreshFavicons(d))
}
