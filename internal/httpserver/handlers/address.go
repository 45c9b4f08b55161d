package handlers

import (
	"github.com/kerval/navdock/internal/domain"
)

// addressPayload is how requests name a tree position. Path carries keys
// for title- or id-path addressing; Indices carries an index path. Kind
// selects the scheme explicitly ("id", "title", "index") and defaults to
// id-path, or index-path when only Indices is set.
type addressPayload struct {
	Kind    string   `json:"kind,omitempty"`
	Path    []string `json:"path,omitempty"`
	Indices []int    `json:"indices,omitempty"`
}

func (p addressPayload) address() (domain.Address, error) {
	switch p.Kind {
	case "", "id":
		if p.Kind == "" && len(p.Path) == 0 && len(p.Indices) > 0 {
			return domain.IndexAddress(p.Indices...), nil
		}
		return domain.IDAddress(p.Path...), nil
	case "title":
		return domain.TitleAddress(p.Path...), nil
	case "index":
		return domain.IndexAddress(p.Indices...), nil
	default:
		return domain.Address{}, domain.Validationf("unknown address kind %q", p.Kind)
	}
}
