package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/httpserver/handlers"
)

func init() { Register(registerImport) }

func registerImport(r chi.Router, d deps.Deps) {
	r.With(adminChain(d)...).Post("/api/import", handlers.ImportBookmarks(d))
}
