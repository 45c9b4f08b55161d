package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/logger"
)

func TestWriteDomainError(t *testing.T) {
	log := logger.New("error", true)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: domain.Validationf("bad input"), wantStatus: http.StatusBadRequest},
		{name: "not found", err: domain.NotFoundf("category X"), wantStatus: http.StatusNotFound},
		{name: "conflict", err: domain.Conflictf("duplicate url"), wantStatus: http.StatusConflict},
		{name: "storage unavailable", err: domain.StorageUnavailable("read", errors.New("dial refused")), wantStatus: http.StatusServiceUnavailable},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
		{name: "wrapped validation", err: domain.StorageUnavailable("write", domain.Validationf("nested")), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeDomainError(rec, log, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q, want application/json", ct)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error == "" {
				t.Error("error body is empty")
			}
		})
	}
}

func TestAddressPayload(t *testing.T) {
	tests := []struct {
		name     string
		payload  addressPayload
		wantKind domain.PathKind
		wantLen  int
	}{
		{
			name:     "id path default",
			payload:  addressPayload{Path: []string{"dev", "cloud"}},
			wantKind: domain.IDPath,
			wantLen:  2,
		},
		{
			name:     "title path",
			payload:  addressPayload{Kind: "title", Path: []string{"Dev"}},
			wantKind: domain.TitlePath,
			wantLen:  1,
		},
		{
			name:     "explicit index kind",
			payload:  addressPayload{Kind: "index", Indices: []int{0, 1}},
			wantKind: domain.IndexPath,
			wantLen:  2,
		},
		{
			name:     "indices imply index path",
			payload:  addressPayload{Indices: []int{2}},
			wantKind: domain.IndexPath,
			wantLen:  1,
		},
		{
			name:     "empty payload is the root",
			payload:  addressPayload{},
			wantKind: domain.IDPath,
			wantLen:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := tt.payload.address()
			if err != nil {
				t.Fatalf("address() error: %v", err)
			}
			if addr.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", addr.Kind, tt.wantKind)
			}
			if addr.Len() != tt.wantLen {
				t.Errorf("len = %d, want %d", addr.Len(), tt.wantLen)
			}
		})
	}

	t.Run("unknown kind rejected", func(t *testing.T) {
		_, err := addressPayload{Kind: "xpath"}.address()
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("error = %v, want ValidationError", err)
		}
	})
}
