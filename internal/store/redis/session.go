package redis

import (
	"context"
	"fmt"

	"github.com/kerval/navdock/internal/domain"
)

// ErrStalePath is returned by WriteFolderSitesBulk when a title path in a
// partial update no longer resolves against the stored document. The diff
// that produced the update proved structural equality, so this signals an
// internal inconsistency; callers fall back to a full-document write
// rather than dropping the update.
var ErrStalePath = fmt.Errorf("partial update addresses a vanished title path")

// documentBackend is the slice of the store a session reads and writes
// through.
type documentBackend interface {
	ReadDocument(ctx context.Context) (*domain.Document, error)
	WriteDocument(ctx context.Context, doc *domain.Document) error
}

// Session scopes a read cache to one logical operation. The first whole-
// document read is reused by every subsequent read within the same
// session; the session must be discarded when the operation ends so a
// later request never sees data a concurrent writer has replaced.
type Session struct {
	store  documentBackend
	doc    *domain.Document
	loaded bool
}

// NewSession starts a cold per-operation session.
func (s *Store) NewSession() *Session {
	return &Session{store: s}
}

// Document returns the current tree, reading it from the backend at most
// once per session. Nil means the document was never initialized.
func (se *Session) Document(ctx context.Context) (*domain.Document, error) {
	if se.loaded {
		return se.doc, nil
	}
	doc, err := se.store.ReadDocument(ctx)
	if err != nil {
		return nil, err
	}
	se.doc = doc
	se.loaded = true
	return doc, nil
}

// WriteDocument performs a full-document write and keeps the session
// cache coherent with what was just written.
func (se *Session) WriteDocument(ctx context.Context, doc *domain.Document) error {
	if err := se.store.WriteDocument(ctx, doc); err != nil {
		return err
	}
	se.doc = doc
	se.loaded = true
	return nil
}

// ReadFolderSites reads the whole document (through the session cache)
// and resolves down to one category's direct site list.
func (se *Session) ReadFolderSites(ctx context.Context, titlePath []string) ([]domain.SiteEntry, error) {
	doc, err := se.Document(ctx)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.NotFoundf("document not initialized")
	}
	res, err := domain.Resolve(doc, domain.TitleAddress(titlePath...))
	if err != nil {
		return nil, err
	}
	return res.Node.Sites, nil
}

// WriteFolderSitesBulk applies every site-list replacement in memory by
// title-path walk and performs exactly one whole-document write for the
// entire batch. It never issues one write per update.
func (se *Session) WriteFolderSitesBulk(ctx context.Context, updates []domain.SiteListUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	doc, err := se.Document(ctx)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrStalePath
	}

	next := doc.Clone()
	for _, u := range updates {
		res, err := domain.Resolve(next, domain.TitleAddress(u.TitlePath...))
		if err != nil {
			return ErrStalePath
		}
		sites := make([]domain.SiteEntry, len(u.Sites))
		copy(sites, u.Sites)
		res.Node.Sites = sites
	}
	return se.WriteDocument(ctx, next)
}
