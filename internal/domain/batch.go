package domain

// Batch site operation names.
const (
	BatchOpAdd    = "add"
	BatchOpUpdate = "update"
	BatchOpDelete = "delete"
	BatchOpMove   = "move"
)

// BatchSiteItem is one entry of a bulk site mutation. Paths are id paths
// (stable ids falling back to titles); an empty path routes the item to
// the reserved Uncategorized category where the operation allows it.
type BatchSiteItem struct {
	Op        string     `json:"op"`
	Path      []string   `json:"path"`
	SiteTitle string     `json:"siteTitle,omitempty"`
	DestPath  []string   `json:"destPath,omitempty"`
	Site      *SiteInput `json:"site,omitempty"`
	Patch     *SitePatch `json:"patch,omitempty"`
}

// BatchItemError records one failed batch item without aborting the rest.
type BatchItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BatchResult summarizes a bulk site mutation. Partial success is
// expected: failed items are collected, successful ones counted.
type BatchResult struct {
	Added   int              `json:"added"`
	Updated int              `json:"updated"`
	Deleted int              `json:"deleted"`
	Moved   int              `json:"moved"`
	Errors  []BatchItemError `json:"errors,omitempty"`
}

// Applied reports how many items succeeded.
func (r BatchResult) Applied() int {
	return r.Added + r.Updated + r.Deleted + r.Moved
}

// ApplySiteBatch applies each item against the working document in order.
// Per-item errors are accumulated and do not abort the remaining items;
// the caller persists whatever subset succeeded in a single pass.
func ApplySiteBatch(doc *Document, items []BatchSiteItem) BatchResult {
	var result BatchResult
	for i, item := range items {
		if err := applyBatchItem(doc, item, &result); err != nil {
			result.Errors = append(result.Errors, BatchItemError{Index: i, Error: err.Error()})
		}
	}
	return result
}

func applyBatchItem(doc *Document, item BatchSiteItem, result *BatchResult) error {
	addr := IDAddress(item.Path...)
	switch item.Op {
	case BatchOpAdd:
		if item.Site == nil {
			return Validationf("add item requires a site payload")
		}
		if err := AddSite(doc, addr, *item.Site); err != nil {
			return err
		}
		result.Added++
	case BatchOpUpdate:
		if item.Patch == nil {
			return Validationf("update item requires a patch payload")
		}
		if err := UpdateSite(doc, addr, item.SiteTitle, *item.Patch); err != nil {
			return err
		}
		result.Updated++
	case BatchOpDelete:
		if err := DeleteSite(doc, addr, item.SiteTitle); err != nil {
			return err
		}
		result.Deleted++
	case BatchOpMove:
		if err := MoveSite(doc, addr, item.SiteTitle, IDAddress(item.DestPath...)); err != nil {
			return err
		}
		result.Moved++
	default:
		return Validationf("unknown batch op %q", item.Op)
	}
	return nil
}
