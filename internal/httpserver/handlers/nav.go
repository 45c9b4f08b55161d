package handlers

import (
	"net/http"
	"time"

	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/logger"
)

type navResponse struct {
	Document  *domain.Document `json:"document"`
	UpdatedAt *time.Time       `json:"updatedAt,omitempty"`
}

// GetNav serves the whole navigation tree. When the store holds no
// document yet, the bundled default is served and persisted so later
// partial writes have a base document to patch.
func GetNav(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := d.Store.NewSession()

		doc, err := sess.Document(ctx)
		if err != nil {
			// Reads may fall back to the bundled defaults for display.
			d.Logger.Warn("serving default document, store unreachable", logger.Error(err))
			writeJSON(w, http.StatusOK, navResponse{Document: d.DefaultDocument()})
			return
		}

		if doc == nil {
			doc = d.DefaultDocument()
			if err := sess.WriteDocument(ctx, doc); err != nil {
				// First-read auto-persist is best effort; the page still renders.
				d.Logger.Warn("failed to persist default document", logger.Error(err))
			}
		}

		resp := navResponse{Document: doc}
		if updated, err := d.Store.LastUpdated(ctx); err == nil && !updated.IsZero() {
			resp.UpdatedAt = &updated
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// SaveNav accepts a whole admin-edited tree and persists it with the
// cheapest write the diff against the stored tree allows.
func SaveNav(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var incoming domain.Document
		if err := decodeJSON(r, &incoming); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			working.Profile = incoming.Profile
			working.Categories = incoming.Categories
			domain.EnsureUncategorized(working)
			return nil
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newMutationResponse(plan, doc))
	}
}

// ResetNav wipes every persisted key under the navigation keyspace and
// the favicon keyspace.
func ResetNav(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.Reset(r.Context()); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		d.Logger.Info("navigation store reset")
		writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
	}
}
