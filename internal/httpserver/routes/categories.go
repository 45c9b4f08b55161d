package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/httpserver/handlers"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	admin := r.With(adminChain(d)...)

	// Legacy pre-hierarchy endpoints: root-level categories by id.
	admin.Post("/api/categories", handlers.CreateCategory(d))
	admin.Put("/api/categories/{id}", handlers.UpdateCategory(d))
	admin.Delete("/api/categories/{id}", handlers.DeleteCategory(d))

	// Hierarchical endpoints: any tree path via address payloads.
	admin.Post("/api/tree/category", handlers.AddSubcategory(d))
	admin.Put("/api/tree/category", handlers.EditTreeCategory(d))
	admin.Post("/api/tree/category/delete", handlers.DeleteTreeCategory(d))
	admin.Post("/api/tree/reorder", handlers.Reorder(d))
}
