package handlers

import (
	"context"
	"errors"

	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/logger"
	redisstore "github.com/kerval/navdock/internal/store/redis"
)

// applyTreeMutation is the shared flow of every tree edit: load the
// current document through a per-request session, repair the reserved
// Uncategorized category, run the mutation on a working copy, plan the
// cheapest write against the stored document and execute it.
//
// The session (and its read cache) lives exactly as long as the request.
func applyTreeMutation(ctx context.Context, d deps.Deps, mutate func(*domain.Document) error) (domain.WritePlan, *domain.Document, error) {
	sess := d.Store.NewSession()

	stored, err := sess.Document(ctx)
	if err != nil {
		return domain.WritePlan{}, nil, err
	}
	base := stored
	if base == nil {
		base = d.DefaultDocument()
	}

	working := base.Clone()
	_, repaired := domain.EnsureUncategorized(working)
	if err := mutate(working); err != nil {
		return domain.WritePlan{}, nil, err
	}

	plan := persistencePlan(stored, working, repaired)

	switch plan.Kind {
	case domain.PlanNone:
		// Skip the write entirely.
	case domain.PlanPartial:
		if err := sess.WriteFolderSitesBulk(ctx, plan.Updates); err != nil {
			if !errors.Is(err, redisstore.ErrStalePath) {
				return plan, nil, err
			}
			// Should not happen after a structural-equality diff; write
			// the whole document rather than dropping the update.
			d.Logger.Warn("partial write hit a stale title path, falling back to full write")
			plan = domain.WritePlan{Kind: domain.PlanFull}
			if err := sess.WriteDocument(ctx, working); err != nil {
				return plan, nil, err
			}
		}
	case domain.PlanFull:
		if err := sess.WriteDocument(ctx, working); err != nil {
			return plan, nil, err
		}
	}

	d.Logger.Debug("tree mutation persisted",
		logger.String("plan", plan.Kind.String()),
		logger.Int("partial_updates", len(plan.Updates)))
	return plan, working, nil
}

// persistencePlan picks the write strategy for a mutation. A repaired
// Uncategorized shape must reach the store even when the diff against the
// stored document reports nothing or sites only: nil-vs-empty slices are
// invisible to the planner, and a partial write splices site lists into
// the stored tree, which would carry the broken shape forward.
func persistencePlan(stored, working *domain.Document, repaired bool) domain.WritePlan {
	plan := domain.BuildWritePlan(stored, working)
	if repaired && plan.Kind != domain.PlanFull {
		plan = domain.WritePlan{Kind: domain.PlanFull}
	}
	return plan
}

// mutationResponse is the common response of mutating endpoints.
type mutationResponse struct {
	Plan  string       `json:"plan"`
	Stats domain.Stats `json:"stats"`
}

func newMutationResponse(plan domain.WritePlan, doc *domain.Document) mutationResponse {
	return mutationResponse{
		Plan:  plan.Kind.String(),
		Stats: doc.Stats(),
	}
}
