package defaults

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kerval/navdock/internal/domain"
)

func TestLoadBuiltinWhenNoFileConfigured(t *testing.T) {
	config, err := NewLoader("").Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if config.Profile.Title == "" {
		t.Error("builtin seed has no profile title")
	}
	if len(config.Categories) == 0 {
		t.Fatal("builtin seed has no categories")
	}
	if len(config.Categories[0].Sites) == 0 {
		t.Error("builtin seed has no sites")
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `profile:
  title: My Links
  subtitle: home
categories:
  - id: work
    title: Work
    icon: "💼"
    sites:
      - title: Mail
        url: https://mail.example.com
    children:
      - title: Docs
        sites:
          - title: Wiki
            url: https://wiki.example.com
`
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	config, err := NewLoader(path).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if config.Profile.Title != "My Links" {
		t.Errorf("profile title = %q, want My Links", config.Profile.Title)
	}
	if len(config.Categories) != 1 || config.Categories[0].ID != "work" {
		t.Fatalf("categories = %+v", config.Categories)
	}
	if len(config.Categories[0].Children) != 1 || config.Categories[0].Children[0].Title != "Docs" {
		t.Errorf("children = %+v", config.Categories[0].Children)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.yaml")).Load(); err == nil {
			t.Error("Load() succeeded on a missing file")
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("categories: [title: {"), 0o600); err != nil {
			t.Fatalf("write temp file: %v", err)
		}
		if _, err := NewLoader(path).Load(); err == nil {
			t.Error("Load() succeeded on malformed yaml")
		}
	})
}

func TestMapDocument(t *testing.T) {
	config := &Config{
		Profile: ProfileConfig{Title: "My Links"},
		Categories: []CategoryConfig{
			{
				ID:    "work",
				Title: "Work",
				Sites: []SiteConfig{
					{Title: "Mail", URL: "https://mail.example.com"},
					{Title: "No URL"},
					{URL: "https://no-title.example.com"},
				},
			},
			{Title: ""},
		},
	}

	doc := NewMapper().MapDocument(config)

	if doc.Profile.Title != "My Links" {
		t.Errorf("profile title = %q", doc.Profile.Title)
	}
	// Untitled category dropped, Uncategorized appended.
	if len(doc.Categories) != 2 {
		t.Fatalf("categories = %d, want 2", len(doc.Categories))
	}
	work := doc.Categories[0]
	if work.Icon != domain.DefaultCategoryIcon {
		t.Errorf("icon = %q, want defaulted", work.Icon)
	}
	if len(work.Sites) != 1 {
		t.Fatalf("sites = %d, want 1 (incomplete entries dropped)", len(work.Sites))
	}
	if work.Sites[0].Description != "Mail website" {
		t.Errorf("description = %q, want defaulted", work.Sites[0].Description)
	}
	if !doc.Categories[1].IsUncategorized() {
		t.Error("Uncategorized not provisioned last")
	}
}

func TestMapDocumentBuiltinRoundTrip(t *testing.T) {
	doc := NewMapper().MapDocument(builtin())
	stats := doc.Stats()
	if stats.Categories < 2 || stats.Sites == 0 {
		t.Errorf("seed stats = %+v, want at least one category plus Uncategorized", stats)
	}
	last := doc.Categories[len(doc.Categories)-1]
	if !last.IsUncategorized() {
		t.Error("seed document must end with Uncategorized")
	}
}
