package importer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/kerval/navdock/internal/domain"
)

// Apply merges or replaces a parse result into an existing document and
// returns how many sites were added. Sites are de-duplicated by url
// across the whole resulting tree.
func Apply(doc *domain.Document, res *ParseResult, mode string) (int, error) {
	switch mode {
	case ModeMerge:
		return merge(doc, res), nil
	case ModeReplace:
		return replace(doc, res), nil
	default:
		return 0, domain.Validationf("unknown import mode %q", mode)
	}
}

func merge(doc *domain.Document, res *ParseResult) int {
	seen := doc.SiteURLs()
	added := 0

	for _, imported := range res.Categories {
		target := findRootCategory(doc, imported.Title)
		if target == nil {
			assignIDs(imported, rootIDs(doc))
			insertBeforeUncategorized(doc, pruned(imported, seen, &added))
			continue
		}
		added += mergeInto(target, imported, seen, 0)
	}

	if len(res.Loose) > 0 {
		uncat, _ := domain.EnsureUncategorized(doc)
		for _, site := range res.Loose {
			if seen[site.URL] {
				continue
			}
			seen[site.URL] = true
			uncat.Sites = append(uncat.Sites, site)
			added++
		}
	}
	return added
}

func replace(doc *domain.Document, res *ParseResult) int {
	seen := make(map[string]bool)
	added := 0

	categories := make([]*domain.CategoryNode, 0, len(res.Categories))
	ids := make(map[string]bool)
	for _, imported := range res.Categories {
		assignIDs(imported, ids)
		categories = append(categories, pruned(imported, seen, &added))
	}
	doc.Categories = categories

	uncat, _ := domain.EnsureUncategorized(doc)
	for _, site := range res.Loose {
		if seen[site.URL] {
			continue
		}
		seen[site.URL] = true
		uncat.Sites = append(uncat.Sites, site)
		added++
	}
	return added
}

// mergeInto folds an imported category into an existing one with the same
// title, recursing into children that match and appending the rest.
func mergeInto(target, imported *domain.CategoryNode, seen map[string]bool, depth int) int {
	if depth >= domain.MaxDepth {
		return 0
	}
	added := 0
	for _, site := range imported.Sites {
		if seen[site.URL] {
			continue
		}
		seen[site.URL] = true
		target.Sites = append(target.Sites, site)
		added++
	}
	for _, child := range imported.Children {
		match := findChild(target, child.Title)
		if match == nil {
			target.Children = append(target.Children, pruned(child, seen, &added))
			continue
		}
		added += mergeInto(match, child, seen, depth+1)
	}
	return added
}

// pruned strips already-seen urls from an imported subtree and counts the
// survivors into added.
func pruned(node *domain.CategoryNode, seen map[string]bool, added *int) *domain.CategoryNode {
	kept := node.Sites[:0]
	for _, site := range node.Sites {
		if seen[site.URL] {
			continue
		}
		seen[site.URL] = true
		kept = append(kept, site)
		*added++
	}
	node.Sites = kept
	for _, child := range node.Children {
		pruned(child, seen, added)
	}
	return node
}

// assignIDs gives imported top-level categories stable ids derived from
// their titles, suffixed with a short random token on collision.
func assignIDs(node *domain.CategoryNode, taken map[string]bool) {
	if node.ID != "" {
		return
	}
	id := slugify(node.Title)
	if id == "" || taken[id] {
		id = strings.TrimRight(id+"-"+uuid.NewString()[:8], "-")
	}
	taken[id] = true
	node.ID = id
}

func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func rootIDs(doc *domain.Document) map[string]bool {
	ids := make(map[string]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		if c.ID != "" {
			ids[c.ID] = true
		}
	}
	return ids
}

func findRootCategory(doc *domain.Document, title string) *domain.CategoryNode {
	for _, c := range doc.Categories {
		if c.Title == title {
			return c
		}
	}
	return nil
}

func findChild(parent *domain.CategoryNode, title string) *domain.CategoryNode {
	for _, c := range parent.Children {
		if c.Title == title {
			return c
		}
	}
	return nil
}

func insertBeforeUncategorized(doc *domain.Document, node *domain.CategoryNode) {
	for i, c := range doc.Categories {
		if c.IsUncategorized() {
			doc.Categories = append(doc.Categories[:i], append([]*domain.CategoryNode{node}, doc.Categories[i:]...)...)
			return
		}
	}
	doc.Categories = append(doc.Categories, node)
}
