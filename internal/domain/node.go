package domain

import "time"

// MaxDepth caps every recursive walk over the category tree.
// The model itself allows unbounded nesting; the cap bounds stack usage
// against pathological or adversarial documents.
const MaxDepth = 50

const (
	// UncategorizedID is the stable id of the reserved fallback category.
	UncategorizedID = "uncategorized"
	// UncategorizedTitle is the display title of the reserved fallback category.
	UncategorizedTitle = "Uncategorized"
	// DefaultCategoryIcon is used when a category carries no icon of its own.
	DefaultCategoryIcon = "📁"
)

// FaviconMaxAge is the reference staleness threshold for cached favicons.
const FaviconMaxAge = 7 * 24 * time.Hour

// SiteEntry is a single link held by a category.
//
// Title and URL are required. Within one category's direct Sites list no
// two entries may share a URL; that invariant is enforced at insert time
// only, never globally across the tree.
type SiteEntry struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`

	// Icon is a short glyph or an image URL/data-URL.
	Icon string `json:"icon,omitempty"`

	// Favicon points at a cached icon image, typically a synthetic path
	// keyed by the site's URL host.
	Favicon string `json:"favicon,omitempty"`

	// FaviconUpdatedAt is the unix-millisecond timestamp of the last
	// favicon cache refresh. Zero means never refreshed.
	FaviconUpdatedAt int64 `json:"faviconUpdatedAt,omitempty"`
}

// CategoryNode is one level of the navigation tree.
//
// A node may hold direct Sites and nested Children at the same time; both
// are valid simultaneously and rendered separately.
type CategoryNode struct {
	// ID is an optional stable short identifier, unique among siblings
	// when present. Assigned at creation, never reassigned.
	ID string `json:"id,omitempty"`

	// Title is the display name. It doubles as an address key when ID is
	// absent, so it should be unique among direct siblings; that
	// uniqueness is not enforced.
	Title string `json:"title"`

	// Icon is a short glyph or an image URL/data-URL.
	Icon string `json:"icon,omitempty"`

	// Sites are the direct children links of this category only.
	Sites []SiteEntry `json:"sites"`

	// Children are the nested subcategories, in display order.
	Children []*CategoryNode `json:"children"`
}

// Profile is the small header block rendered above the tree.
type Profile struct {
	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
}

// Document is the whole persisted navigation tree: one profile plus one
// root-level list of top-level categories.
type Document struct {
	Profile    Profile         `json:"profile"`
	Categories []*CategoryNode `json:"categories"`
}

// Key returns the addressing key of the node: its id, falling back to the
// title when no id is set.
func (c *CategoryNode) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.Title
}

// IsUncategorized reports whether the node is the reserved fallback
// category, matched by fixed id first and fixed title second.
func (c *CategoryNode) IsUncategorized() bool {
	if c.ID != "" {
		return c.ID == UncategorizedID
	}
	return c.Title == UncategorizedTitle
}

// Clone returns a deep copy of the node and its entire subtree.
func (c *CategoryNode) Clone() *CategoryNode {
	if c == nil {
		return nil
	}
	out := &CategoryNode{
		ID:    c.ID,
		Title: c.Title,
		Icon:  c.Icon,
	}
	if c.Sites != nil {
		out.Sites = make([]SiteEntry, len(c.Sites))
		copy(out.Sites, c.Sites)
	}
	if c.Children != nil {
		out.Children = make([]*CategoryNode, len(c.Children))
		for i, child := range c.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Profile: d.Profile}
	if d.Categories != nil {
		out.Categories = make([]*CategoryNode, len(d.Categories))
		for i, c := range d.Categories {
			out.Categories[i] = c.Clone()
		}
	}
	return out
}

// Walk visits every category in the document top-down, passing the node
// together with its title path from the root. Recursion stops at MaxDepth.
func (d *Document) Walk(visit func(titlePath []string, node *CategoryNode)) {
	walkNodes(d.Categories, nil, 0, visit)
}

func walkNodes(nodes []*CategoryNode, prefix []string, depth int, visit func([]string, *CategoryNode)) {
	if depth >= MaxDepth {
		return
	}
	for _, n := range nodes {
		path := append(append([]string{}, prefix...), n.Title)
		visit(path, n)
		walkNodes(n.Children, path, depth+1, visit)
	}
}

// Stats summarizes a document for health and admin views.
type Stats struct {
	Categories int `json:"categories"`
	Sites      int `json:"sites"`
}

// Stats counts categories and sites across the whole tree.
func (d *Document) Stats() Stats {
	var s Stats
	d.Walk(func(_ []string, node *CategoryNode) {
		s.Categories++
		s.Sites += len(node.Sites)
	})
	return s
}

// SiteURLs returns the set of every site URL reachable in the document.
func (d *Document) SiteURLs() map[string]bool {
	urls := make(map[string]bool)
	d.Walk(func(_ []string, node *CategoryNode) {
		for _, site := range node.Sites {
			urls[site.URL] = true
		}
	})
	return urls
}
