package domain

import (
	"fmt"
	"regexp"
)

// idPattern is the restricted charset for stable category ids.
var idPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidateCategoryID checks the restricted id charset (lowercase letters,
// digits, hyphen).
func ValidateCategoryID(id string) error {
	if id == "" {
		return Validationf("category id is required")
	}
	if !idPattern.MatchString(id) {
		return Validationf("category id %q must contain only lowercase letters, digits and hyphens", id)
	}
	return nil
}

// DefaultDescription generates the placeholder description used when a
// site is created without one.
func DefaultDescription(title string) string {
	return fmt.Sprintf("%s website", title)
}

// EnsureUncategorized locates the reserved fallback category, repairing
// its shape (icon, sites, children) and creating it at the end of the
// root list if missing. It is idempotent and runs at the start of every
// mutating operation; the reported change flag tells the caller whether
// the repair itself needs persisting.
func EnsureUncategorized(doc *Document) (*CategoryNode, bool) {
	for _, c := range doc.Categories {
		if !c.IsUncategorized() {
			continue
		}
		changed := false
		if c.ID == "" {
			c.ID = UncategorizedID
			changed = true
		}
		if c.Icon == "" {
			c.Icon = DefaultCategoryIcon
			changed = true
		}
		if c.Sites == nil {
			c.Sites = []SiteEntry{}
			changed = true
		}
		if c.Children == nil {
			c.Children = []*CategoryNode{}
			changed = true
		}
		return c, changed
	}

	node := &CategoryNode{
		ID:       UncategorizedID,
		Title:    UncategorizedTitle,
		Icon:     DefaultCategoryIcon,
		Sites:    []SiteEntry{},
		Children: []*CategoryNode{},
	}
	doc.Categories = append(doc.Categories, node)
	return node, true
}

// AddCategory appends a new top-level category, inserting it before the
// reserved Uncategorized node when that node is present so Uncategorized
// stays last.
func AddCategory(doc *Document, id, title, icon string) error {
	if err := ValidateCategoryID(id); err != nil {
		return err
	}
	if title == "" {
		return Validationf("category title is required")
	}
	for _, c := range doc.Categories {
		if c.ID == id {
			return Conflictf("category id %q already exists", id)
		}
	}

	node := &CategoryNode{
		ID:       id,
		Title:    title,
		Icon:     icon,
		Sites:    []SiteEntry{},
		Children: []*CategoryNode{},
	}
	for i, c := range doc.Categories {
		if c.IsUncategorized() {
			doc.Categories = append(doc.Categories[:i], append([]*CategoryNode{node}, doc.Categories[i:]...)...)
			return nil
		}
	}
	doc.Categories = append(doc.Categories, node)
	return nil
}

// AddSubcategory appends a new empty child under the addressed category.
// The id is optional; when present it must match the restricted charset
// and be unique among the new node's siblings.
func AddSubcategory(doc *Document, parent Address, id, title, icon string) error {
	if title == "" {
		return Validationf("category title is required")
	}
	if id != "" {
		if err := ValidateCategoryID(id); err != nil {
			return err
		}
	}
	res, err := Resolve(doc, parent)
	if err != nil {
		return err
	}
	if len(res.TitlePath) >= MaxDepth {
		return Validationf("category nesting deeper than %d levels", MaxDepth)
	}
	if id != "" {
		for _, sib := range res.Node.Children {
			if sib.ID == id {
				return Conflictf("category id %q already exists under %s", id, parent.String())
			}
		}
	}
	res.Node.Children = append(res.Node.Children, &CategoryNode{
		ID:       id,
		Title:    title,
		Icon:     icon,
		Sites:    []SiteEntry{},
		Children: []*CategoryNode{},
	})
	return nil
}

// EditCategory renames the addressed category and, when icon is non-nil,
// replaces its icon in place. The id is never reassigned.
func EditCategory(doc *Document, addr Address, title string, icon *string) error {
	if title == "" {
		return Validationf("category title is required")
	}
	res, err := Resolve(doc, addr)
	if err != nil {
		return err
	}
	res.Node.Title = title
	if icon != nil {
		res.Node.Icon = *icon
	}
	return nil
}

// DeleteCategory removes the addressed node and its entire subtree.
func DeleteCategory(doc *Document, addr Address) error {
	res, err := Resolve(doc, addr)
	if err != nil {
		return err
	}
	if res.Parent == nil {
		doc.Categories = append(doc.Categories[:res.Position], doc.Categories[res.Position+1:]...)
	} else {
		res.Parent.Children = append(res.Parent.Children[:res.Position], res.Parent.Children[res.Position+1:]...)
	}
	return nil
}

// ReorderCategories replaces the child list under parent (the root list
// when parent is empty) with the order given by keys (ids falling back to
// titles). Any existing child not mentioned keeps its relative order and
// is appended at the end, so a stale proposal never silently drops data.
// Unknown keys are ignored.
func ReorderCategories(doc *Document, parent Address, order []string) error {
	owner, siblings, err := siblingsOf(doc, parent)
	if err != nil {
		return err
	}
	reordered := permuteCategories(siblings, order)
	if owner == nil {
		doc.Categories = reordered
	} else {
		owner.Children = reordered
	}
	return nil
}

func permuteCategories(siblings []*CategoryNode, order []string) []*CategoryNode {
	claimed := make([]bool, len(siblings))
	out := make([]*CategoryNode, 0, len(siblings))
	for _, key := range order {
		for i, sib := range siblings {
			if !claimed[i] && sib.Key() == key {
				claimed[i] = true
				out = append(out, sib)
				break
			}
		}
	}
	for i, sib := range siblings {
		if !claimed[i] {
			out = append(out, sib)
		}
	}
	return out
}

// ReorderSites replaces the addressed category's site list with the order
// given by keys. A key matches a site's url first (unique within the
// category) and falls back to the first unclaimed title match. Unmatched
// existing sites are appended at the end.
func ReorderSites(doc *Document, cat Address, order []string) error {
	res, err := Resolve(doc, cat)
	if err != nil {
		return err
	}
	sites := res.Node.Sites
	claimed := make([]bool, len(sites))
	out := make([]SiteEntry, 0, len(sites))
	for _, key := range order {
		idx := -1
		for i := range sites {
			if !claimed[i] && sites[i].URL == key {
				idx = i
				break
			}
		}
		if idx < 0 {
			for i := range sites {
				if !claimed[i] && sites[i].Title == key {
					idx = i
					break
				}
			}
		}
		if idx >= 0 {
			claimed[idx] = true
			out = append(out, sites[idx])
		}
	}
	for i := range sites {
		if !claimed[i] {
			out = append(out, sites[i])
		}
	}
	res.Node.Sites = out
	return nil
}

// SiteInput is the payload for creating a site.
type SiteInput struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// SitePatch merges provided fields over an existing site, preserving
// unspecified ones.
type SitePatch struct {
	Title       *string `json:"title,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Favicon     *string `json:"favicon,omitempty"`
}

// destination resolves the target category of a site operation. An empty
// address means "no destination specified" and routes to the reserved
// Uncategorized category, creating and repairing it on demand.
func destination(doc *Document, cat Address) (*CategoryNode, error) {
	if cat.IsRoot() {
		node, _ := EnsureUncategorized(doc)
		return node, nil
	}
	res, err := Resolve(doc, cat)
	if err != nil {
		return nil, err
	}
	return res.Node, nil
}

// AddSite appends a new site to the addressed category, defaulting the
// description from the title when omitted.
func AddSite(doc *Document, cat Address, in SiteInput) error {
	if in.Title == "" {
		return Validationf("site title is required")
	}
	if in.URL == "" {
		return Validationf("site url is required")
	}
	node, err := destination(doc, cat)
	if err != nil {
		return err
	}
	if i, _ := FindSiteByURL(node, in.URL); i >= 0 {
		return Conflictf("url %q already exists in category %q", in.URL, node.Title)
	}
	desc := in.Description
	if desc == "" {
		desc = DefaultDescription(in.Title)
	}
	node.Sites = append(node.Sites, SiteEntry{
		Title:       in.Title,
		URL:         in.URL,
		Description: desc,
		Icon:        in.Icon,
	})
	return nil
}

// UpdateSite merges patch over the first site titled siteTitle in the
// addressed category.
func UpdateSite(doc *Document, cat Address, siteTitle string, patch SitePatch) error {
	res, err := Resolve(doc, cat)
	if err != nil {
		return err
	}
	idx, site := FindSiteByTitle(res.Node, siteTitle)
	if site == nil {
		return NotFoundf("site %q in category %q", siteTitle, res.Node.Title)
	}
	if patch.Title != nil {
		if *patch.Title == "" {
			return Validationf("site title is required")
		}
		site.Title = *patch.Title
	}
	if patch.URL != nil {
		if *patch.URL == "" {
			return Validationf("site url is required")
		}
		if j, _ := FindSiteByURL(res.Node, *patch.URL); j >= 0 && j != idx {
			return Conflictf("url %q already exists in category %q", *patch.URL, res.Node.Title)
		}
		site.URL = *patch.URL
	}
	if patch.Description != nil {
		site.Description = *patch.Description
	}
	if patch.Icon != nil {
		site.Icon = *patch.Icon
	}
	if patch.Favicon != nil {
		site.Favicon = *patch.Favicon
	}
	return nil
}

// DeleteSite removes the first site titled siteTitle from the addressed
// category.
func DeleteSite(doc *Document, cat Address, siteTitle string) error {
	res, err := Resolve(doc, cat)
	if err != nil {
		return err
	}
	idx, site := FindSiteByTitle(res.Node, siteTitle)
	if site == nil {
		return NotFoundf("site %q in category %q", siteTitle, res.Node.Title)
	}
	res.Node.Sites = append(res.Node.Sites[:idx], res.Node.Sites[idx+1:]...)
	return nil
}

// MoveSite removes the first site titled siteTitle from the source
// category and appends it to the destination, preserving all other
// fields. The append is skipped when the destination already holds that
// url, so a move into a category that already has the link de-duplicates
// instead of conflicting.
func MoveSite(doc *Document, src Address, siteTitle string, dst Address) error {
	srcRes, err := Resolve(doc, src)
	if err != nil {
		return err
	}
	idx, site := FindSiteByTitle(srcRes.Node, siteTitle)
	if site == nil {
		return NotFoundf("site %q in category %q", siteTitle, srcRes.Node.Title)
	}
	dstNode, err := destination(doc, dst)
	if err != nil {
		return err
	}

	moved := *site
	srcRes.Node.Sites = append(srcRes.Node.Sites[:idx], srcRes.Node.Sites[idx+1:]...)
	if i, _ := FindSiteByURL(dstNode, moved.URL); i < 0 {
		dstNode.Sites = append(dstNode.Sites, moved)
	}
	return nil
}
