package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kerval/navdock/internal/domain"
	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for the navigation document and the
// favicon blob keyspace. The document is a single key holding the whole
// serialized tree; writes are last-write-wins with no locking or
// versioning.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store.
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// ReadDocument fetches the whole tree blob. It returns (nil, nil) when
// the document has never been initialized.
func (s *Store) ReadDocument(ctx context.Context) (*domain.Document, error) {
	data, err := s.client.Get(ctx, KeyDocument).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, domain.StorageUnavailable("read document", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &doc, nil
}

// WriteDocument overwrites the whole tree blob in a single put and stamps
// the last-updated timestamp alongside it.
func (s *Store) WriteDocument(ctx context.Context, doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, KeyDocument, data, 0)
	pipe.Set(ctx, KeyUpdatedAt, time.Now().UTC().Format(time.RFC3339), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.StorageUnavailable("write document", err)
	}
	return nil
}

// LastUpdated returns the timestamp stamped by the last document write,
// zero when the document has never been written.
func (s *Store) LastUpdated(ctx context.Context) (time.Time, error) {
	raw, err := s.client.Get(ctx, KeyUpdatedAt).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, domain.StorageUnavailable("read updated_at", err)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return t, nil
}

// Reset wipes the document, its timestamp and every cached favicon.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.client.Del(ctx, KeyDocument, KeyUpdatedAt).Err(); err != nil {
		return domain.StorageUnavailable("reset document", err)
	}

	iter := s.client.Scan(ctx, 0, KeyPrefixFavicon+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return domain.StorageUnavailable("reset favicons", err)
		}
	}
	if err := iter.Err(); err != nil {
		return domain.StorageUnavailable("reset favicons", err)
	}
	return nil
}

// Ping checks backend reachability.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return domain.StorageUnavailable("ping", err)
	}
	return nil
}
