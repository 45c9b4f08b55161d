package defaults

import (
	"github.com/kerval/navdock/internal/domain"
)

// Mapper converts a defaults Config into a domain.Document.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapDocument builds the seed document, normalizing node shapes and
// provisioning the reserved Uncategorized category.
func (m *Mapper) MapDocument(config *Config) *domain.Document {
	doc := &domain.Document{
		Profile: domain.Profile{
			Title:    config.Profile.Title,
			Subtitle: config.Profile.Subtitle,
			Avatar:   config.Profile.Avatar,
		},
		Categories: mapCategories(config.Categories, 0),
	}
	domain.EnsureUncategorized(doc)
	return doc
}

func mapCategories(configs []CategoryConfig, depth int) []*domain.CategoryNode {
	if depth >= domain.MaxDepth {
		return []*domain.CategoryNode{}
	}
	nodes := make([]*domain.CategoryNode, 0, len(configs))
	for _, c := range configs {
		if c.Title == "" {
			continue
		}
		icon := c.Icon
		if icon == "" {
			icon = domain.DefaultCategoryIcon
		}
		node := &domain.CategoryNode{
			ID:       c.ID,
			Title:    c.Title,
			Icon:     icon,
			Sites:    make([]domain.SiteEntry, 0, len(c.Sites)),
			Children: mapCategories(c.Children, depth+1),
		}
		for _, s := range c.Sites {
			if s.Title == "" || s.URL == "" {
				continue
			}
			desc := s.Description
			if desc == "" {
				desc = domain.DefaultDescription(s.Title)
			}
			node.Sites = append(node.Sites, domain.SiteEntry{
				Title:       s.Title,
				URL:         s.URL,
				Description: desc,
				Icon:        s.Icon,
			})
		}
		nodes = append(nodes, node)
	}
	return nodes
}
