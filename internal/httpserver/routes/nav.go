package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/httpserver/handlers"
)

func init() { Register(registerNav) }

func registerNav(r chi.Router, d deps.Deps) {
	r.Get("/api/nav", handlers.GetNav(d))

	admin := r.With(adminChain(d)...)
	admin.Put("/api/nav", handlers.SaveNav(d))
	admin.Delete("/api/nav", handlers.ResetNav(d))
}
