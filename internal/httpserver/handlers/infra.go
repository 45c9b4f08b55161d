package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/kerval/navdock/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Categories *int   `json:"categories,omitempty"`
	Sites      *int   `json:"sites,omitempty"`
	LastWrite  string `json:"last_write,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		redisStatus := checkRedis(d)
		docStatus := checkDocument(d, redisStatus.OK)

		components := map[string]componentStatus{
			"redis":    redisStatus,
			"document": docStatus,
		}

		mode := "ok"
		if !redisStatus.OK {
			// Reads fall back to defaults; writes fail loudly.
			mode = "degraded"
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(infraResponse{
			Mode:       mode,
			Components: components,
		})
	}
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:    false,
			Mode:  "degraded",
			Error: "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:    false,
			Mode:  "degraded",
			Error: "timeout",
		}
	}

	return componentStatus{
		OK:   true,
		Mode: "optimal",
	}
}

func checkDocument(d deps.Deps, redisOK bool) componentStatus {
	if !redisOK {
		return componentStatus{OK: false, Mode: "defaults-only"}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sess := d.Store.NewSession()
	doc, err := sess.Document(ctx)
	if err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}
	if doc == nil {
		return componentStatus{OK: true, Mode: "uninitialized"}
	}

	stats := doc.Stats()
	status := componentStatus{
		OK:         true,
		Categories: &stats.Categories,
		Sites:      &stats.Sites,
	}
	if updated, err := d.Store.LastUpdated(ctx); err == nil && !updated.IsZero() {
		status.LastWrite = updated.Format("2006-01-02 15:04:05")
	}
	return status
}
