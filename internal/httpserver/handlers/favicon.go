package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/favicon"
	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/logger"
)

// GetFavicon serves a host's cached favicon bytes, kicking off an async
// refresh when the cache entry is stale or missing. A miss answers 404;
// the client falls back to its placeholder icon and retries later.
func GetFavicon(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host := chi.URLParam(r, "host")
		if !favicon.ValidHost(host) {
			writeDomainError(w, d.Logger, domain.Validationf("invalid favicon host %q", host))
			return
		}

		blob, stale, err := d.Favicons.Cached(r.Context(), host)
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		if stale {
			d.Favicons.RefreshAsync(host)
		}
		if blob == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", blob.ContentType)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		_, _ = w.Write(blob.Data)
	}
}

type refreshResponse struct {
	Refreshed int      `json:"refreshed"`
	Failed    []string `json:"failed,omitempty"`
}

// RefreshFavicons refreshes the favicon of every host referenced by the
// current tree, in parallel, with per-host failures isolated.
func RefreshFavicons(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := d.Store.NewSession()
		doc, err := sess.Document(ctx)
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		if doc == nil {
			doc = d.DefaultDocument()
		}

		var hosts []string
		for siteURL := range doc.SiteURLs() {
			if u, err := url.Parse(siteURL); err == nil && u.Host != "" {
				hosts = append(hosts, u.Host)
			}
		}
		// Hosts that only exist in the favicon cache (their sites were
		// edited away) stay in the sweep until a reset clears them.
		if cached, err := d.Store.FaviconHosts(ctx); err == nil {
			hosts = append(hosts, cached...)
		} else {
			d.Logger.Debug("failed to list cached favicon hosts", logger.Error(err))
		}

		results := d.Favicons.RefreshAll(ctx, hosts)
		resp := refreshResponse{}
		for host, err := range results {
			if err != nil {
				resp.Failed = append(resp.Failed, host)
				d.Logger.Debug("favicon refresh failed",
					logger.String("host", host),
					logger.Error(err))
				continue
			}
			resp.Refreshed++
		}

		d.Logger.Info("favicon refresh-all finished",
			logger.Int("refreshed", resp.Refreshed),
			logger.Int("failed", len(resp.Failed)))
		writeJSON(w, http.StatusOK, resp)
	}
}
