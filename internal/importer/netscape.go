// Package importer turns a Netscape bookmark-export HTML document (the
// format every major browser exports) into the navigation tree shape.
package importer

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/kerval/navdock/internal/domain"
)

// Modes for applying an import to an existing document.
const (
	ModeMerge   = "merge"
	ModeReplace = "replace"
)

// ParseResult is the tree extracted from a bookmark export. Links that
// sit outside any folder are collected separately and routed to the
// reserved Uncategorized category at apply time.
type ParseResult struct {
	Categories []*domain.CategoryNode
	Loose      []domain.SiteEntry
}

// Parse reads a bookmark-export HTML document and builds category nodes
// from its folder (H3/DL) structure and site entries from its anchors.
func Parse(r io.Reader) (*ParseResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmark html: %w", err)
	}

	result := &ParseResult{}
	dl := findFirstElement(doc, "dl")
	if dl == nil {
		// Some exports omit the outer DL; fall back to scanning the
		// whole document for loose anchors.
		collectAnchors(doc, &result.Loose)
		return result, nil
	}

	cats, loose := walkFolderList(dl, 0)
	result.Categories = cats
	result.Loose = loose
	return result, nil
}

// walkFolderList walks one DL level: H3 entries open folders whose
// contents are the following nested DL, anchors become sites.
func walkFolderList(dl *html.Node, depth int) ([]*domain.CategoryNode, []domain.SiteEntry) {
	var cats []*domain.CategoryNode
	var sites []domain.SiteEntry
	if depth >= domain.MaxDepth {
		return cats, sites
	}

	for dt := dl.FirstChild; dt != nil; dt = dt.NextSibling {
		if dt.Type != html.ElementNode {
			continue
		}
		// Folders and links both live in DT elements, but tolerate
		// exports that drop the DT wrapper.
		var h3, anchor, nested *html.Node
		switch dt.Data {
		case "dt", "dd", "p":
			h3 = findDirectChild(dt, "h3")
			anchor = findDirectChild(dt, "a")
			nested = findDirectChild(dt, "dl")
		case "h3":
			h3 = dt
		case "a":
			anchor = dt
		case "dl":
			// Stray nested list: fold its contents into this level.
			c, s := walkFolderList(dt, depth+1)
			cats = append(cats, c...)
			sites = append(sites, s...)
			continue
		default:
			continue
		}

		if h3 != nil {
			node := &domain.CategoryNode{
				Title:    nodeText(h3),
				Icon:     domain.DefaultCategoryIcon,
				Sites:    []domain.SiteEntry{},
				Children: []*domain.CategoryNode{},
			}
			if node.Title == "" {
				node.Title = "Imported"
			}
			if nested == nil {
				nested = followingList(h3)
			}
			if nested != nil {
				node.Children, node.Sites = walkFolderList(nested, depth+1)
			}
			cats = append(cats, node)
			continue
		}

		if anchor != nil {
			if site, ok := siteFromAnchor(anchor); ok {
				sites = append(sites, site)
			}
		}
	}
	return cats, sites
}

func siteFromAnchor(a *html.Node) (domain.SiteEntry, bool) {
	var site domain.SiteEntry
	for _, attr := range a.Attr {
		switch strings.ToLower(attr.Key) {
		case "href":
			site.URL = attr.Val
		case "icon":
			site.Icon = attr.Val
		}
	}
	site.Title = nodeText(a)
	if site.URL == "" || !strings.Contains(site.URL, "://") {
		return site, false
	}
	if site.Title == "" {
		site.Title = site.URL
	}
	site.Description = domain.DefaultDescription(site.Title)
	return site, true
}

// followingList returns the next DL after an H3, covering exports that
// place the folder's list as a sibling of the heading.
func followingList(h3 *html.Node) *html.Node {
	for n := h3.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode && n.Data == "dl" {
			return n
		}
	}
	return nil
}

func findDirectChild(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
	}
	return nil
}

func findFirstElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirstElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func collectAnchors(n *html.Node, out *[]domain.SiteEntry) {
	if n.Type == html.ElementNode && n.Data == "a" {
		if site, ok := siteFromAnchor(n); ok {
			*out = append(*out, site)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectAnchors(c, out)
	}
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
