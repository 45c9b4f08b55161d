package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/httpserver/deps"
)

type categoryPayload struct {
	addressPayload
	ID    string  `json:"id,omitempty"`
	Title string  `json:"title"`
	Icon  *string `json:"icon,omitempty"`
}

// CreateCategory is the legacy pre-hierarchy endpoint: it creates a
// top-level category by id, keeping Uncategorized last.
func CreateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p categoryPayload
		if err := decodeJSON(r, &p); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		icon := ""
		if p.Icon != nil {
			icon = *p.Icon
		}
		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			return domain.AddCategory(working, p.ID, p.Title, icon)
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, newMutationResponse(plan, doc))
	}
}

// UpdateCategory is the legacy root-level rename/icon edit by id.
func UpdateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var p categoryPayload
		if err := decodeJSON(r, &p); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			return domain.EditCategory(working, domain.IDAddress(id), p.Title, p.Icon)
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newMutationResponse(plan, doc))
	}
}

// DeleteCategory is the legacy root-level delete by id; the whole subtree
// goes with it.
func DeleteCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			return domain.DeleteCategory(working, domain.IDAddress(id))
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newMutationResponse(plan, doc))
	}
}

// AddSubcategory appends a child category under any tree path.
func AddSubcategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p categoryPayload
		if err := decodeJSON(r, &p); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		addr, err := p.address()
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		icon := ""
		if p.Icon != nil {
			icon = *p.Icon
		}
		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			return domain.AddSubcategory(working, addr, p.ID, p.Title, icon)
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, newMutationResponse(plan, doc))
	}
}

// EditTreeCategory renames or re-icons a category at any tree path.
func EditTreeCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p categoryPayload
		if err := decodeJSON(r, &p); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		addr, err := p.address()
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			return domain.EditCategory(working, addr, p.Title, p.Icon)
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newMutationResponse(plan, doc))
	}
}

// DeleteTreeCategory removes a category subtree at any tree path.
func DeleteTreeCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p addressPayload
		if err := decodeJSON(r, &p); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		addr, err := p.address()
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			return domain.DeleteCategory(working, addr)
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newMutationResponse(plan, doc))
	}
}

type reorderPayload struct {
	addressPayload
	Order []string `json:"order"`
	// Target selects what gets reordered under the address:
	// "categories" (default) or "sites".
	Target string `json:"target,omitempty"`
}

// Reorder permutes sibling categories (under any path, or the root list
// when the path is empty) or one category's site list.
func Reorder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p reorderPayload
		if err := decodeJSON(r, &p); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		addr, err := p.address()
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			if p.Target == "sites" {
				return domain.ReorderSites(working, addr, p.Order)
			}
			return domain.ReorderCategories(working, addr, p.Order)
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newMutationResponse(plan, doc))
	}
}
