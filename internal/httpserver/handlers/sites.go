package handlers

import (
	"net/http"

	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/httpserver/deps"
)

type sitePayload struct {
	addressPayload
	Site      *domain.SiteInput `json:"site,omitempty"`
	SiteTitle string            `json:"siteTitle,omitempty"`
	Patch     *domain.SitePatch `json:"patch,omitempty"`
	Dest      *addressPayload   `json:"dest,omitempty"`
}

// AddSite appends one link to the addressed category; an empty path
// routes it to Uncategorized.
func AddSite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p sitePayload
		if err := decodeJSON(r, &p); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		if p.Site == nil {
			writeDomainError(w, d.Logger, domain.Validationf("site payload is required"))
			return
		}
		addr, err := p.address()
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			return domain.AddSite(working, addr, *p.Site)
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, newMutationResponse(plan, doc))
	}
}

// UpdateSite merges a patch over the addressed site, found by title
// within its category (first match when titles collide).
func UpdateSite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p sitePayload
		if err := decodeJSON(r, &p); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		if p.Patch == nil {
			writeDomainError(w, d.Logger, domain.Validationf("patch payload is required"))
			return
		}
		addr, err := p.address()
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			return domain.UpdateSite(working, addr, p.SiteTitle, *p.Patch)
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newMutationResponse(plan, doc))
	}
}

// DeleteSite removes the addressed site from its category.
func DeleteSite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p sitePayload
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
			return domain.DeleteSite(working, addr, p.SiteTitle)
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newMutationResponse(plan, doc))
	}
}

// MoveSite moves a site between categories; an absent destination routes
// it to Uncategorized.
func MoveSite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p sitePayload
		if err := decodeJSON(r, &p); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		addr, err := p.address()
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		dest := domain.IDAddress()
		if p.Dest != nil {
			if dest, err = p.Dest.address(); err != nil {
				writeDomainError(w, d.Logger, err)
				return
			}
		}

		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			return domain.MoveSite(working, addr, p.SiteTitle, dest)
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, newMutationResponse(plan, doc))
	}
}

type batchPayload struct {
	Items []domain.BatchSiteItem `json:"items"`
}

type batchResponse struct {
	Plan   string             `json:"plan"`
	Result domain.BatchResult `json:"result"`
	Stats  domain.Stats       `json:"stats"`
}

// BatchSites applies a bulk of site operations against one working copy
// and persists whatever subset succeeded in a single pass. Per-item
// failures are reported, not fatal.
func BatchSites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p batchPayload
		if err := decodeJSON(r, &p); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		if len(p.Items) == 0 {
			writeDomainError(w, d.Logger, domain.Validationf("batch requires at least one item"))
			return
		}

		var result domain.BatchResult
		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			result = domain.ApplySiteBatch(working, p.Items)
			return nil
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, batchResponse{
			Plan:   plan.Kind.String(),
			Result: result,
			Stats:  doc.Stats(),
		})
	}
}
