package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/kerval/navdock/internal/domain"
)

// fakeDocumentBackend is an in-memory documentBackend that counts
// backend round trips.
type fakeDocumentBackend struct {
	doc     *domain.Document
	reads   int
	writes  int
	readErr error
}

func (b *fakeDocumentBackend) ReadDocument(_ context.Context) (*domain.Document, error) {
	b.reads++
	if b.readErr != nil {
		return nil, b.readErr
	}
	return b.doc, nil
}

func (b *fakeDocumentBackend) WriteDocument(_ context.Context, doc *domain.Document) error {
	b.writes++
	b.doc = doc
	return nil
}

func navDoc() *domain.Document {
	return &domain.Document{
		Categories: []*domain.CategoryNode{
			{
				ID:    "dev",
				Title: "Dev",
				Sites: []domain.SiteEntry{
					{Title: "GitHub", URL: "https://github.com"},
				},
				Children: []*domain.CategoryNode{
					{
						Title: "Cloud",
						Sites: []domain.SiteEntry{
							{Title: "AWS", URL: "https://aws.amazon.com"},
						},
						Children: []*domain.CategoryNode{},
					},
				},
			},
		},
	}
}

func TestSessionDocumentReadsBackendOnce(t *testing.T) {
	backend := &fakeDocumentBackend{doc: navDoc()}
	sess := &Session{store: backend}
	ctx := context.Background()

	first, err := sess.Document(ctx)
	if err != nil {
		t.Fatalf("Document() error: %v", err)
	}
	second, err := sess.Document(ctx)
	if err != nil {
		t.Fatalf("Document() second call error: %v", err)
	}
	if first != second {
		t.Error("cached read returned a different document")
	}
	if backend.reads != 1 {
		t.Errorf("backend reads = %d, want 1", backend.reads)
	}
}

func TestSessionReadFolderSites(t *testing.T) {
	backend := &fakeDocumentBackend{doc: navDoc()}
	sess := &Session{store: backend}
	ctx := context.Background()

	sites, err := sess.ReadFolderSites(ctx, []string{"Dev", "Cloud"})
	if err != nil {
		t.Fatalf("ReadFolderSites() error: %v", err)
	}
	if len(sites) != 1 || sites[0].URL != "https://aws.amazon.com" {
		t.Errorf("sites = %+v, want the Cloud list", sites)
	}

	// A second folder read within the same session reuses the cache.
	if _, err := sess.ReadFolderSites(ctx, []string{"Dev"}); err != nil {
		t.Fatalf("ReadFolderSites() second call error: %v", err)
	}
	if backend.reads != 1 {
		t.Errorf("backend reads = %d, want 1", backend.reads)
	}

	_, err = sess.ReadFolderSites(ctx, []string{"Dev", "Nope"})
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("unknown path error = %v, want NotFoundError", err)
	}
}

func TestSessionReadFolderSitesUninitialized(t *testing.T) {
	sess := &Session{store: &fakeDocumentBackend{}}

	_, err := sess.ReadFolderSites(context.Background(), []string{"Dev"})
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("error = %v, want NotFoundError on uninitialized document", err)
	}
}

func TestSessionWriteFolderSitesBulk(t *testing.T) {
	t.Run("one backend write for the whole batch", func(t *testing.T) {
		backend := &fakeDocumentBackend{doc: navDoc()}
		sess := &Session{store: backend}
		ctx := context.Background()

		updates := []domain.SiteListUpdate{
			{TitlePath: []string{"Dev"}, Sites: []domain.SiteEntry{}},
			{TitlePath: []string{"Dev", "Cloud"}, Sites: []domain.SiteEntry{
				{Title: "AWS", URL: "https://aws.amazon.com"},
				{Title: "GCS", URL: "https://console.cloud.google.com"},
			}},
		}
		if err := sess.WriteFolderSitesBulk(ctx, updates); err != nil {
			t.Fatalf("WriteFolderSitesBulk() error: %v", err)
		}
		if backend.writes != 1 {
			t.Errorf("backend writes = %d, want exactly 1", backend.writes)
		}

		if len(backend.doc.Categories[0].Sites) != 0 {
			t.Errorf("Dev sites = %+v, want emptied", backend.doc.Categories[0].Sites)
		}
		if n := len(backend.doc.Categories[0].Children[0].Sites); n != 2 {
			t.Errorf("Cloud sites = %d, want 2", n)
		}

		// The cache stays coherent with what was written.
		doc, err := sess.Document(ctx)
		if err != nil {
			t.Fatalf("Document() error: %v", err)
		}
		if doc != backend.doc {
			t.Error("session cache diverged from the written document")
		}
	})

	t.Run("vanished title path reports a stale batch", func(t *testing.T) {
		backend := &fakeDocumentBackend{doc: navDoc()}
		sess := &Session{store: backend}

		err := sess.WriteFolderSitesBulk(context.Background(), []domain.SiteListUpdate{
			{TitlePath: []string{"Gone"}, Sites: []domain.SiteEntry{}},
		})
		if !errors.Is(err, ErrStalePath) {
			t.Errorf("error = %v, want ErrStalePath", err)
		}
		if backend.writes != 0 {
			t.Errorf("backend writes = %d, want 0", backend.writes)
		}
	})

	t.Run("uninitialized document reports a stale batch", func(t *testing.T) {
		sess := &Session{store: &fakeDocumentBackend{}}

		err := sess.WriteFolderSitesBulk(context.Background(), []domain.SiteListUpdate{
			{TitlePath: []string{"Dev"}, Sites: []domain.SiteEntry{}},
		})
		if !errors.Is(err, ErrStalePath) {
			t.Errorf("error = %v, want ErrStalePath", err)
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		backend := &fakeDocumentBackend{doc: navDoc()}
		sess := &Session{store: backend}

		if err := sess.WriteFolderSitesBulk(context.Background(), nil); err != nil {
			t.Fatalf("WriteFolderSitesBulk() error: %v", err)
		}
		if backend.reads != 0 || backend.writes != 0 {
			t.Errorf("backend touched (%d reads, %d writes) for an empty batch", backend.reads, backend.writes)
		}
	})
}
