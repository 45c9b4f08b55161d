package redis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kerval/navdock/internal/domain"
	"github.com/redis/go-redis/v9"
)

// FaviconBlob is one host's cached favicon image.
type FaviconBlob struct {
	ContentType string    `json:"contentType"`
	Data        []byte    `json:"data"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Stale reports whether the blob is older than maxAge.
func (b *FaviconBlob) Stale(maxAge time.Duration) bool {
	return time.Since(b.UpdatedAt) > maxAge
}

// ReadFavicon retrieves a host's cached favicon. It returns (nil, nil) on
// a cache miss.
func (s *Store) ReadFavicon(ctx context.Context, host string) (*FaviconBlob, error) {
	data, err := s.client.Get(ctx, FaviconKey(host)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, domain.StorageUnavailable("read favicon", err)
	}

	var blob FaviconBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, fmt.Errorf("failed to unmarshal favicon blob: %w", err)
	}
	return &blob, nil
}

// WriteFavicon stores a host's favicon bytes. The write is skipped when
// the new value is byte-identical to the stored one, so repeated refresh
// attempts do not churn the backend.
func (s *Store) WriteFavicon(ctx context.Context, host, contentType string, data []byte) error {
	existing, err := s.ReadFavicon(ctx, host)
	if err == nil && existing != nil &&
		existing.ContentType == contentType && bytes.Equal(existing.Data, data) {
		return nil
	}

	blob := FaviconBlob{
		ContentType: contentType,
		Data:        data,
		UpdatedAt:   time.Now().UTC(),
	}
	raw, err := json.Marshal(blob)
	if err != nil {
		return fmt.Errorf("failed to marshal favicon blob: %w", err)
	}
	if err := s.client.Set(ctx, FaviconKey(host), raw, 0).Err(); err != nil {
		return domain.StorageUnavailable("write favicon", err)
	}
	return nil
}

// FaviconHosts lists every host with a cached favicon.
func (s *Store) FaviconHosts(ctx context.Context) ([]string, error) {
	var hosts []string
	iter := s.client.Scan(ctx, 0, KeyPrefixFavicon+"*", 0).Iterator()
	for iter.Next(ctx) {
		hosts = append(hosts, ExtractFaviconHost(iter.Val()))
	}
	if err := iter.Err(); err != nil {
		return nil, domain.StorageUnavailable("list favicons", err)
	}
	return hosts, nil
}
