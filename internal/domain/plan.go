package domain

import "slices"

// PlanKind classifies how a proposed document change must be persisted.
type PlanKind int

const (
	// PlanNone means old and new documents are identical; the write is
	// skipped entirely. Skipping is a required optimization, not
	// cosmetic: it avoids needless key-value writes.
	PlanNone PlanKind = iota
	// PlanPartial means only site lists changed; persistence rewrites
	// the affected categories' site lists, addressed by title path.
	PlanPartial
	// PlanFull means structure or metadata changed anywhere; the whole
	// document is rewritten.
	PlanFull
)

func (k PlanKind) String() string {
	switch k {
	case PlanNone:
		return "none"
	case PlanPartial:
		return "partial"
	default:
		return "full"
	}
}

// SiteListUpdate replaces one category's direct site list, addressed by
// its canonical title path.
type SiteListUpdate struct {
	TitlePath []string    `json:"titlePath"`
	Sites     []SiteEntry `json:"sites"`
}

// WritePlan is the persistence strategy chosen for a document change.
type WritePlan struct {
	Kind    PlanKind
	Updates []SiteListUpdate // populated only for PlanPartial
}

// BuildWritePlan compares an old and a proposed new document and picks
// the cheapest persistence strategy.
//
// Site-list edits are the overwhelming majority of admin actions and cost
// one cheap write touching only the affected title paths. Structural
// edits (add/delete/rename/reorder categories) are rare and cost a full
// rewrite for simplicity. Metadata edits (title/icon) also force a full
// rewrite; they are infrequent and touch node identity, so that path is
// deliberately not optimized.
func BuildWritePlan(oldDoc, newDoc *Document) WritePlan {
	if oldDoc == nil {
		return WritePlan{Kind: PlanFull}
	}
	if oldDoc.Profile != newDoc.Profile {
		return WritePlan{Kind: PlanFull}
	}
	if !structureEqual(oldDoc.Categories, newDoc.Categories, 0) {
		return WritePlan{Kind: PlanFull}
	}
	if !metadataEqual(oldDoc.Categories, newDoc.Categories) {
		return WritePlan{Kind: PlanFull}
	}

	updates, ok := collectSiteUpdates(oldDoc.Categories, newDoc.Categories, nil, 0, nil)
	if !ok {
		// Internal inconsistency while walking trees that were just
		// proven structurally equal. Fall back to a full write rather
		// than silently dropping the update.
		return WritePlan{Kind: PlanFull}
	}
	if len(updates) == 0 {
		return WritePlan{Kind: PlanNone}
	}
	return WritePlan{Kind: PlanPartial, Updates: updates}
}

// structureEqual compares, for every node at every depth, the pair
// (id, title) and the ordered shape of its child list, ignoring sites and
// icons. Trees deeper than MaxDepth are treated as unequal, which routes
// pathological documents to the safe full-write path.
func structureEqual(a, b []*CategoryNode, depth int) bool {
	if depth >= MaxDepth {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Title != b[i].Title {
			return false
		}
		if !structureEqual(a[i].Children, b[i].Children, depth+1) {
			return false
		}
	}
	return true
}

// metadataEqual compares (id, title, icon) per node. It assumes the trees
// are already structurally equal, so the walk is lockstep.
func metadataEqual(a, b []*CategoryNode) bool {
	for i := range a {
		if a[i].Icon != b[i].Icon {
			return false
		}
		if !metadataEqual(a[i].Children, b[i].Children) {
			return false
		}
	}
	return true
}

// collectSiteUpdates walks both trees in lockstep and records every node
// whose sites array differs by full ordered-array inequality: any change
// in membership, order or field values counts.
func collectSiteUpdates(a, b []*CategoryNode, prefix []string, depth int, acc []SiteListUpdate) ([]SiteListUpdate, bool) {
	if depth >= MaxDepth {
		return acc, false
	}
	if len(a) != len(b) {
		return acc, false
	}
	for i := range a {
		path := append(append([]string{}, prefix...), b[i].Title)
		if !slices.Equal(a[i].Sites, b[i].Sites) {
			sites := make([]SiteEntry, len(b[i].Sites))
			copy(sites, b[i].Sites)
			acc = append(acc, SiteListUpdate{TitlePath: path, Sites: sites})
		}
		var ok bool
		acc, ok = collectSiteUpdates(a[i].Children, b[i].Children, path, depth+1, acc)
		if !ok {
			return acc, false
		}
	}
	return acc, true
}
