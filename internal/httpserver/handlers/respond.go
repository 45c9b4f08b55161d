package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses:
// validation 400, not-found 404, conflict 409, storage-unavailable 503,
// anything else 500.
func writeDomainError(w http.ResponseWriter, log logger.Logger, err error) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		conflict   *domain.ConflictError
		storage    *domain.StorageUnavailableError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &validation):
		status = http.StatusBadRequest
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &conflict):
		status = http.StatusConflict
	case errors.As(err, &storage):
		status = http.StatusServiceUnavailable
		log.Error("storage unavailable", logger.Error(err))
	default:
		log.Error("request failed", logger.Error(err))
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return domain.Validationf("invalid json body: %v", err)
	}
	return nil
}
