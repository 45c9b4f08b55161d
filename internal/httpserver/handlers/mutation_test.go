package handlers

import (
	"testing"

	"github.com/kerval/navdock/internal/domain"
)

// storedWithBrokenFallback models a persisted tree whose Uncategorized
// node lost its empty slices (e.g. written by an older client as null).
func storedWithBrokenFallback() *domain.Document {
	return &domain.Document{
		Categories: []*domain.CategoryNode{
			{
				ID:    "dev",
				Title: "Dev",
				Sites: []domain.SiteEntry{
					{Title: "GitHub", URL: "https://github.com"},
				},
				Children: []*domain.CategoryNode{},
			},
			{
				ID:    domain.UncategorizedID,
				Title: domain.UncategorizedTitle,
				Icon:  domain.DefaultCategoryIcon,
				// Sites and Children deliberately nil.
			},
		},
	}
}

func TestPersistencePlanEscalatesRepairs(t *testing.T) {
	t.Run("site edit after shape repair forces a full write", func(t *testing.T) {
		stored := storedWithBrokenFallback()
		working := stored.Clone()
		_, repaired := domain.EnsureUncategorized(working)
		if !repaired {
			t.Fatal("fixture did not trigger a repair")
		}
		if err := domain.AddSite(working, domain.IDAddress(), domain.SiteInput{
			Title: "Hello", URL: "https://example.com",
		}); err != nil {
			t.Fatalf("AddSite: %v", err)
		}

		// The raw diff sees only a site-list change; nil vs empty slices
		// never reach the planner's comparisons.
		if raw := domain.BuildWritePlan(stored, working); raw.Kind != domain.PlanPartial {
			t.Fatalf("raw plan = %s, want partial", raw.Kind)
		}

		if plan := persistencePlan(stored, working, repaired); plan.Kind != domain.PlanFull {
			t.Errorf("plan = %s, want full so the repair persists", plan.Kind)
		}
	})

	t.Run("no-op edit after shape repair forces a full write", func(t *testing.T) {
		stored := storedWithBrokenFallback()
		working := stored.Clone()
		_, repaired := domain.EnsureUncategorized(working)
		if !repaired {
			t.Fatal("fixture did not trigger a repair")
		}

		if plan := persistencePlan(stored, working, repaired); plan.Kind != domain.PlanFull {
			t.Errorf("plan = %s, want full", plan.Kind)
		}
	})

	t.Run("healthy tree keeps the cheap plans", func(t *testing.T) {
		stored := storedWithBrokenFallback()
		domain.EnsureUncategorized(stored)

		working := stored.Clone()
		_, repaired := domain.EnsureUncategorized(working)
		if repaired {
			t.Fatal("healthy tree reported a repair")
		}

		if plan := persistencePlan(stored, working, repaired); plan.Kind != domain.PlanNone {
			t.Errorf("no-op plan = %s, want none", plan.Kind)
		}

		if err := domain.AddSite(working, domain.IDAddress("dev"), domain.SiteInput{
			Title: "GitLab", URL: "https://gitlab.com",
		}); err != nil {
			t.Fatalf("AddSite: %v", err)
		}
		if plan := persistencePlan(stored, working, repaired); plan.Kind != domain.PlanPartial {
			t.Errorf("site-edit plan = %s, want partial", plan.Kind)
		}
	})
}
