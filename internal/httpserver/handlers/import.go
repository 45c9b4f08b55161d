package handlers

import (
	"io"
	"net/http"

	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/importer"
	"github.com/kerval/navdock/internal/logger"
	"github.com/kerval/navdock/internal/utils"
)

// maxImportBytes caps uploaded bookmark files.
const maxImportBytes = 10 << 20

type importResponse struct {
	Plan       string       `json:"plan"`
	SitesAdded int          `json:"sitesAdded"`
	Stats      domain.Stats `json:"stats"`
}

// ImportBookmarks parses an uploaded bookmark-export HTML document and
// merges it into (or replaces) the current tree, de-duplicating by url
// across the whole tree. The file arrives as the raw request body or as
// a multipart "file" part; ?mode=merge|replace selects the strategy.
func ImportBookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := r.URL.Query().Get("mode")
		if mode == "" {
			mode = importer.ModeMerge
		}

		body, err := importBody(r)
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		defer utils.Close(body)

		parsed, err := importer.Parse(io.LimitReader(body, maxImportBytes))
		if err != nil {
			writeDomainError(w, d.Logger, domain.Validationf("unreadable bookmark file: %v", err))
			return
		}
		if len(parsed.Categories) == 0 && len(parsed.Loose) == 0 {
			writeDomainError(w, d.Logger, domain.Validationf("no bookmarks found in upload"))
			return
		}

		var added int
		plan, doc, err := applyTreeMutation(r.Context(), d, func(working *domain.Document) error {
			n, err := importer.Apply(working, parsed, mode)
			added = n
			return err
		})
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		d.Logger.Info("bookmark import applied",
			logger.String("mode", mode),
			logger.Int("sites_added", added))
		writeJSON(w, http.StatusOK, importResponse{
			Plan:       plan.Kind.String(),
			SitesAdded: added,
			Stats:      doc.Stats(),
		})
	}
}

func importBody(r *http.Request) (io.ReadCloser, error) {
	ct := r.Header.Get("Content-Type")
	if len(ct) >= 19 && ct[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			return nil, domain.Validationf("invalid multipart upload: %v", err)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, domain.Validationf("multipart upload is missing a \"file\" part")
		}
		return file, nil
	}
	return r.Body, nil
}
