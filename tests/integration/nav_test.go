package integration

import (
	"strings"
	"testing"

	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/importer"
	"github.com/kerval/navdock/internal/sources/defaults"
)

// TestAdminSessionFlow walks a realistic admin editing session end to end:
// seed document, structural edits, site edits, and the persistence plan
// chosen for each step.
func TestAdminSessionFlow(t *testing.T) {
	config, err := defaults.NewLoader("").Load()
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	stored := defaults.NewMapper().MapDocument(config)

	step := func(name string, wantPlan domain.PlanKind, mutate func(doc *domain.Document) error) {
		t.Helper()
		working := stored.Clone()
		if err := mutate(working); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		plan := domain.BuildWritePlan(stored, working)
		if plan.Kind != wantPlan {
			t.Fatalf("%s: plan = %s, want %s", name, plan.Kind, wantPlan)
		}
		// Simulate last-write-wins persistence.
		stored = working
	}

	step("add category", domain.PlanFull, func(doc *domain.Document) error {
		return domain.AddCategory(doc, "work", "Work", "💼")
	})

	step("add subcategory", domain.PlanFull, func(doc *domain.Document) error {
		return domain.AddSubcategory(doc, domain.IDAddress("work"), "ci", "CI", "")
	})

	step("add site", domain.PlanPartial, func(doc *domain.Document) error {
		return domain.AddSite(doc, domain.IDAddress("work", "ci"), domain.SiteInput{
			Title: "Pipelines", URL: "https://ci.example.com",
		})
	})

	step("add second site", domain.PlanPartial, func(doc *domain.Document) error {
		return domain.AddSite(doc, domain.IDAddress("work"), domain.SiteInput{
			Title: "Mail", URL: "https://mail.example.com",
		})
	})

	step("move site to fallback", domain.PlanPartial, func(doc *domain.Document) error {
		return domain.MoveSite(doc, domain.IDAddress("work"), "Mail", domain.IDAddress())
	})

	step("rename category", domain.PlanFull, func(doc *domain.Document) error {
		return domain.EditCategory(doc, domain.IDAddress("work"), "Work Stuff", nil)
	})

	// The rename must not have broken id addressing.
	if _, err := domain.Resolve(stored, domain.IDAddress("work", "ci")); err != nil {
		t.Fatalf("id path broken after rename: %v", err)
	}

	step("delete subtree", domain.PlanFull, func(doc *domain.Document) error {
		return domain.DeleteCategory(doc, domain.IDAddress("work"))
	})

	// The moved site survived in Uncategorized.
	unc, changed := domain.EnsureUncategorized(stored)
	if changed {
		t.Error("Uncategorized needed repair after a normal session")
	}
	if i, _ := domain.FindSiteByURL(unc, "https://mail.example.com"); i < 0 {
		t.Error("moved site lost from Uncategorized")
	}
}

// TestImportThenEditFlow imports a browser export into a seeded tree and
// keeps editing, checking the invariants that matter across layers.
func TestImportThenEditFlow(t *testing.T) {
	export := `<DL><p>
	<DT><H3>Imported Stuff</H3>
	<DL><p>
		<DT><A HREF="https://one.example.com">One</A>
		<DT><A HREF="https://go.dev">Go</A>
	</DL><p>
	<DT><A HREF="https://loose.example.com">Loose</A>
</DL><p>`

	config, err := defaults.NewLoader("").Load()
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	doc := defaults.NewMapper().MapDocument(config)
	before := doc.Stats()

	parsed, err := importer.Parse(strings.NewReader(export))
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	added, err := importer.Apply(doc, parsed, importer.ModeMerge)
	if err != nil {
		t.Fatalf("apply import: %v", err)
	}

	// https://go.dev is already in the seed and must be de-duplicated.
	if added != 2 {
		t.Errorf("added = %d, want 2", added)
	}
	after := doc.Stats()
	if after.Sites != before.Sites+2 {
		t.Errorf("site count %d -> %d, want +2", before.Sites, after.Sites)
	}
	if !doc.Categories[len(doc.Categories)-1].IsUncategorized() {
		t.Fatal("Uncategorized displaced from the end")
	}

	// Imported categories are addressable by their generated id.
	res, err := domain.Resolve(doc, domain.IDAddress("imported-stuff"))
	if err != nil {
		t.Fatalf("resolve imported category: %v", err)
	}
	if len(res.Node.Sites) != 1 {
		t.Errorf("imported category holds %d sites, want 1 after dedup", len(res.Node.Sites))
	}

	// And editable like any other category.
	if err := domain.DeleteSite(doc, domain.IDAddress("imported-stuff"), "One"); err != nil {
		t.Errorf("delete imported site: %v", err)
	}
}

// TestBatchAgainstStaleState models a client submitting a batch built from
// an outdated tree: items against vanished paths fail individually while
// the rest apply.
func TestBatchAgainstStaleState(t *testing.T) {
	doc := &domain.Document{Categories: []*domain.CategoryNode{
		{ID: "alpha", Title: "Alpha", Sites: []domain.SiteEntry{
			{Title: "A1", URL: "https://a1.example.com"},
		}},
	}}

	result := domain.ApplySiteBatch(doc, []domain.BatchSiteItem{
		{Op: domain.BatchOpAdd, Path: []string{"alpha"}, Site: &domain.SiteInput{Title: "A2", URL: "https://a2.example.com"}},
		{Op: domain.BatchOpDelete, Path: []string{"beta"}, SiteTitle: "Gone"},
		{Op: domain.BatchOpMove, Path: []string{"alpha"}, SiteTitle: "A1", DestPath: nil},
	})

	if result.Added != 1 || result.Moved != 1 {
		t.Errorf("result = %+v, want one add and one move", result)
	}
	if len(result.Errors) != 1 || result.Errors[0].Index != 1 {
		t.Fatalf("errors = %+v, want exactly the stale delete", result.Errors)
	}

	// The move with an empty destination provisioned Uncategorized.
	last := doc.Categories[len(doc.Categories)-1]
	if !last.IsUncategorized() {
		t.Fatal("empty destination did not provision Uncategorized")
	}
	if i, _ := domain.FindSiteByURL(last, "https://a1.example.com"); i < 0 {
		t.Error("moved site missing from Uncategorized")
	}
}
