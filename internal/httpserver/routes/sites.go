package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/httpserver/handlers"
)

func init() { Register(registerSites) }

func registerSites(r chi.Router, d deps.Deps) {
	admin := r.With(adminChain(d)...)

	admin.Post("/api/sites", handlers.AddSite(d))
	admin.Put("/api/sites", handlers.UpdateSite(d))
	admin.Post("/api/sites/delete", handlers.DeleteSite(d))
	admin.Post("/api/sites/move", handlers.MoveSite(d))
	admin.Post("/api/sites/batch", handlers.BatchSites(d))
}
