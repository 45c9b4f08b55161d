package domain

import (
	"errors"
	"strings"
	"testing"
)

// sampleDoc builds a small tree used across the package tests:
//
//	Dev (id=dev)
//	  Cloud (id=cloud)
//	    Storage (no id)
//	Media (no id)
//	Uncategorized (id=uncategorized)
func sampleDoc() *Document {
	return &Document{
		Profile: Profile{Title: "Home"},
		Categories: []*CategoryNode{
			{
				ID:    "dev",
				Title: "Dev",
				Icon:  "💻",
				Sites: []SiteEntry{
					{Title: "GitHub", URL: "https://github.com", Description: "GitHub website"},
					{Title: "Go Docs", URL: "https://go.dev", Description: "Go Docs website"},
				},
				Children: []*CategoryNode{
					{
						ID:    "cloud",
						Title: "Cloud",
						Sites: []SiteEntry{
							{Title: "AWS", URL: "https://aws.amazon.com"},
						},
						Children: []*CategoryNode{
							{
								Title:    "Storage",
								Sites:    []SiteEntry{{Title: "S3", URL: "https://s3.console.aws.amazon.com"}},
								Children: []*CategoryNode{},
							},
						},
					},
				},
			},
			{
				Title:    "Media",
				Sites:    []SiteEntry{{Title: "YouTube", URL: "https://youtube.com"}},
				Children: []*CategoryNode{},
			},
			{
				ID:       UncategorizedID,
				Title:    UncategorizedTitle,
				Icon:     DefaultCategoryIcon,
				Sites:    []SiteEntry{},
				Children: []*CategoryNode{},
			},
		},
	}
}

func TestResolveEquivalentPaths(t *testing.T) {
	doc := sampleDoc()

	// The same node must resolve identically through all three schemes.
	tests := []struct {
		name      string
		addr      Address
		wantTitle string
		wantPos   int
	}{
		{name: "index path to nested", addr: IndexAddress(0, 0, 0), wantTitle: "Storage", wantPos: 0},
		{name: "title path to nested", addr: TitleAddress("Dev", "Cloud", "Storage"), wantTitle: "Storage", wantPos: 0},
		{name: "id path to nested", addr: IDAddress("dev", "cloud", "Storage"), wantTitle: "Storage", wantPos: 0},
		{name: "index path to top level", addr: IndexAddress(1), wantTitle: "Media", wantPos: 1},
		{name: "id path falls back to title", addr: IDAddress("Media"), wantTitle: "Media", wantPos: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Resolve(doc, tt.addr)
			if err != nil {
				t.Fatalf("Resolve(%s) error: %v", tt.addr.String(), err)
			}
			if res.Node.Title != tt.wantTitle {
				t.Errorf("Resolve(%s).Node.Title = %q, want %q", tt.addr.String(), res.Node.Title, tt.wantTitle)
			}
			if res.Position != tt.wantPos {
				t.Errorf("Resolve(%s).Position = %d, want %d", tt.addr.String(), res.Position, tt.wantPos)
			}
		})
	}
}

func TestResolveSameNodeAllSchemes(t *testing.T) {
	doc := sampleDoc()

	byIndex, err := Resolve(doc, IndexAddress(0, 0))
	if err != nil {
		t.Fatalf("index resolve: %v", err)
	}
	byTitle, err := Resolve(doc, TitleAddress("Dev", "Cloud"))
	if err != nil {
		t.Fatalf("title resolve: %v", err)
	}
	byID, err := Resolve(doc, IDAddress("dev", "cloud"))
	if err != nil {
		t.Fatalf("id resolve: %v", err)
	}

	if byIndex.Node != byTitle.Node || byTitle.Node != byID.Node {
		t.Error("the three addressing schemes resolved different nodes")
	}
	if byIndex.Parent != byTitle.Parent || byTitle.Parent != byID.Parent {
		t.Error("the three addressing schemes resolved different parents")
	}
}

func TestResolveNotFound(t *testing.T) {
	doc := sampleDoc()

	tests := []struct {
		name string
		addr Address
	}{
		{name: "empty address", addr: TitleAddress()},
		{name: "index out of range", addr: IndexAddress(7)},
		{name: "negative index", addr: IndexAddress(-1)},
		{name: "unknown title", addr: TitleAddress("Nope")},
		{name: "partial match only", addr: TitleAddress("Dev", "Nope")},
		{name: "descends past a leaf", addr: IndexAddress(1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(doc, tt.addr)
			var nf *NotFoundError
			if !errors.As(err, &nf) {
				t.Errorf("Resolve(%s) error = %v, want NotFoundError", tt.addr.String(), err)
			}
		})
	}
}

func TestResolveDepthCap(t *testing.T) {
	doc := sampleDoc()
	keys := make([]string, MaxDepth+1)
	for i := range keys {
		keys[i] = "Dev"
	}

	_, err := Resolve(doc, TitleAddress(keys...))
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("Resolve on over-deep address = %v, want NotFoundError", err)
	}
}

func TestTitlePathTo(t *testing.T) {
	doc := sampleDoc()

	path, err := TitlePathTo(doc, IDAddress("dev", "cloud", "Storage"))
	if err != nil {
		t.Fatalf("TitlePathTo() error: %v", err)
	}
	if got := strings.Join(path, "/"); got != "Dev/Cloud/Storage" {
		t.Errorf("TitlePathTo() = %q, want %q", got, "Dev/Cloud/Storage")
	}
}

func TestFindSiteByTitleFirstMatch(t *testing.T) {
	cat := &CategoryNode{
		Title: "Dup",
		Sites: []SiteEntry{
			{Title: "Mirror", URL: "https://a.example.com"},
			{Title: "Mirror", URL: "https://b.example.com"},
		},
	}

	idx, site := FindSiteByTitle(cat, "Mirror")
	if idx != 0 {
		t.Errorf("FindSiteByTitle() index = %d, want 0", idx)
	}
	if site == nil || site.URL != "https://a.example.com" {
		t.Errorf("FindSiteByTitle() returned %+v, want the first entry", site)
	}

	if idx, site := FindSiteByTitle(cat, "Missing"); idx != -1 || site != nil {
		t.Errorf("FindSiteByTitle(missing) = (%d, %+v), want (-1, nil)", idx, site)
	}
}

func TestFindSiteByURL(t *testing.T) {
	doc := sampleDoc()
	dev := doc.Categories[0]

	idx, site := FindSiteByURL(dev, "https://go.dev")
	if idx != 1 || site == nil || site.Title != "Go Docs" {
		t.Errorf("FindSiteByURL() = (%d, %+v), want index 1 Go Docs", idx, site)
	}
	if idx, _ := FindSiteByURL(dev, "https://nope.example.com"); idx != -1 {
		t.Errorf("FindSiteByURL(unknown) index = %d, want -1", idx)
	}
}

func TestAddressString(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want string
	}{
		{name: "index path", addr: IndexAddress(0, 2, 1), want: "[0/2/1]"},
		{name: "title path", addr: TitleAddress("Dev", "Cloud"), want: "Dev/Cloud"},
		{name: "empty", addr: IndexAddress(), want: "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
