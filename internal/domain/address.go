package domain

import (
	"strconv"
	"strings"
)

// PathKind selects one of the three interchangeable addressing schemes.
type PathKind int

const (
	// IndexPath addresses a node by zero-based child indices from the
	// root list down.
	IndexPath PathKind = iota
	// TitlePath addresses a node by title values from the root down.
	TitlePath
	// IDPath addresses a node by stable ids, falling back to the title
	// for nodes lacking an id.
	IDPath
)

// Address names a tree position. Addresses are never persisted; they are
// computed against the current in-memory tree and become invalid as soon
// as the structure changes. Callers must not cache an index path across a
// mutation.
type Address struct {
	Kind    PathKind
	Indices []int    // used when Kind == IndexPath
	Keys    []string // used when Kind == TitlePath or IDPath
}

// IndexAddress builds an index-path address.
func IndexAddress(indices ...int) Address {
	return Address{Kind: IndexPath, Indices: indices}
}

// TitleAddress builds a title-path address.
func TitleAddress(keys ...string) Address {
	return Address{Kind: TitlePath, Keys: keys}
}

// IDAddress builds an id-path address.
func IDAddress(keys ...string) Address {
	return Address{Kind: IDPath, Keys: keys}
}

// Len returns the number of levels the address descends.
func (a Address) Len() int {
	if a.Kind == IndexPath {
		return len(a.Indices)
	}
	return len(a.Keys)
}

// IsRoot reports whether the address names the root category list itself
// rather than any node in it.
func (a Address) IsRoot() bool { return a.Len() == 0 }

func (a Address) String() string {
	if a.Kind == IndexPath {
		parts := make([]string, len(a.Indices))
		for i, idx := range a.Indices {
			parts[i] = strconv.Itoa(idx)
		}
		return "[" + strings.Join(parts, "/") + "]"
	}
	return strings.Join(a.Keys, "/")
}

// Resolution is a live reference into the tree: the target node, its
// parent (nil when the target sits in the root list) and its position in
// the parent's child list.
type Resolution struct {
	Parent    *CategoryNode
	Node      *CategoryNode
	Position  int
	TitlePath []string
}

// keyOf extracts the matching key for one addressing scheme. The three
// schemes share a single resolver so that any node reachable by one kind
// of path resolves identically via the equivalent paths of the other two
// kinds.
func keyOf(kind PathKind, node *CategoryNode) string {
	switch kind {
	case TitlePath:
		return node.Title
	case IDPath:
		return node.Key()
	default:
		return ""
	}
}

// Resolve walks the document along addr and returns a live reference to
// the addressed node. Any out-of-range index or unmatched key at any
// level yields a NotFoundError immediately; there are no partial matches.
// Key-based levels match by linear scan, first match wins.
func Resolve(doc *Document, addr Address) (*Resolution, error) {
	if addr.IsRoot() {
		return nil, NotFoundf("empty address")
	}
	if addr.Len() > MaxDepth {
		return nil, NotFoundf("address deeper than %d levels", MaxDepth)
	}

	siblings := doc.Categories
	var parent *CategoryNode
	var node *CategoryNode
	var pos int
	titlePath := make([]string, 0, addr.Len())

	for level := 0; level < addr.Len(); level++ {
		pos = -1
		if addr.Kind == IndexPath {
			idx := addr.Indices[level]
			if idx >= 0 && idx < len(siblings) {
				pos = idx
			}
		} else {
			want := addr.Keys[level]
			for i, sib := range siblings {
				if keyOf(addr.Kind, sib) == want {
					pos = i
					break
				}
			}
		}
		if pos < 0 {
			return nil, NotFoundf("category %s (level %d)", addr.String(), level)
		}
		if node != nil {
			parent = node
		}
		node = siblings[pos]
		titlePath = append(titlePath, node.Title)
		siblings = node.Children
	}

	return &Resolution{
		Parent:    parent,
		Node:      node,
		Position:  pos,
		TitlePath: titlePath,
	}, nil
}

// TitlePathTo converts an address of any kind into its canonical title
// path. Downstream partial writes address categories by title path only,
// so id- and index-based addresses go through this before persistence.
func TitlePathTo(doc *Document, addr Address) ([]string, error) {
	res, err := Resolve(doc, addr)
	if err != nil {
		return nil, err
	}
	return res.TitlePath, nil
}

// siblingsOf returns the child list addressed by addr together with the
// owning node (nil for the root list). An empty address names the root
// list itself.
func siblingsOf(doc *Document, addr Address) (*CategoryNode, []*CategoryNode, error) {
	if addr.IsRoot() {
		return nil, doc.Categories, nil
	}
	res, err := Resolve(doc, addr)
	if err != nil {
		return nil, nil, err
	}
	return res.Node, res.Node.Children, nil
}

// FindSiteByTitle scans a category's direct sites for an exact title
// match. Site titles are not guaranteed unique within a category; when
// titles collide the first match is returned. That ambiguity is accepted
// for compatibility and deliberately not "fixed" by enforcing uniqueness.
func FindSiteByTitle(cat *CategoryNode, title string) (int, *SiteEntry) {
	for i := range cat.Sites {
		if cat.Sites[i].Title == title {
			return i, &cat.Sites[i]
		}
	}
	return -1, nil
}

// FindSiteByURL scans a category's direct sites for an exact url match.
// URLs are unique within a category, so at most one entry can match.
func FindSiteByURL(cat *CategoryNode, url string) (int, *SiteEntry) {
	for i := range cat.Sites {
		if cat.Sites[i].URL == url {
			return i, &cat.Sites[i]
		}
	}
	return -1, nil
}
