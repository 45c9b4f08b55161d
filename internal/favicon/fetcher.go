package favicon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/kerval/navdock/internal/domain"
	"github.com/kerval/navdock/internal/logger"
	redisstore "github.com/kerval/navdock/internal/store/redis"
	"github.com/kerval/navdock/internal/utils"
)

// maxIconBytes caps how much of an icon response is read.
const maxIconBytes = 1 << 20

var hostPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9.-]*[a-z0-9])?(:[0-9]+)?$`)

// BlobStore is the favicon keyspace the fetcher writes through.
type BlobStore interface {
	ReadFavicon(ctx context.Context, host string) (*redisstore.FaviconBlob, error)
	WriteFavicon(ctx context.Context, host, contentType string, data []byte) error
}

// Fetcher fetches and caches favicons per host. Failures are absorbed
// locally (logged, not surfaced) because favicon presence is cosmetic.
type Fetcher struct {
	store          BlobStore
	log            logger.Logger
	client         *http.Client
	iconServiceURL string // template with one %s for the host
	maxAge         time.Duration

	mu       sync.Mutex
	inflight map[string]bool
}

// New creates a fetcher. iconServiceURL is the primary external icon
// service, a URL template with one %s placeholder for the host; the
// target site's own /favicon.ico is the fallback.
func New(store BlobStore, log logger.Logger, iconServiceURL string, timeout, maxAge time.Duration) *Fetcher {
	if maxAge <= 0 {
		maxAge = domain.FaviconMaxAge
	}
	return &Fetcher{
		store:          store,
		log:            log,
		client:         &http.Client{Timeout: timeout},
		iconServiceURL: iconServiceURL,
		maxAge:         maxAge,
		inflight:       make(map[string]bool),
	}
}

// ValidHost reports whether host is a plausible favicon key: a bare
// hostname with optional port, no scheme, no path.
func ValidHost(host string) bool {
	return hostPattern.MatchString(redisstore.NormalizeHost(host))
}

// Cached returns the stored blob for a host plus whether it is older than
// the staleness threshold. A nil blob means cache miss.
func (f *Fetcher) Cached(ctx context.Context, host string) (*redisstore.FaviconBlob, bool, error) {
	blob, err := f.store.ReadFavicon(ctx, host)
	if err != nil {
		return nil, false, err
	}
	if blob == nil {
		return nil, true, nil
	}
	return blob, blob.Stale(f.maxAge), nil
}

// Refresh fetches a host's favicon and stores it, trying the primary icon
// service first and the host's own /favicon.ico as fallback.
func (f *Fetcher) Refresh(ctx context.Context, host string) error {
	host = redisstore.NormalizeHost(host)
	if !ValidHost(host) {
		return domain.Validationf("invalid favicon host %q", host)
	}

	candidates := []string{
		fmt.Sprintf(f.iconServiceURL, host),
		fmt.Sprintf("https://%s/favicon.ico", host),
	}

	var lastErr error
	for _, url := range candidates {
		contentType, data, err := f.fetch(ctx, url)
		if err != nil {
			lastErr = err
			f.log.Debug("favicon fetch attempt failed",
				logger.String("host", host),
				logger.String("url", url),
				logger.Error(err))
			continue
		}
		return f.store.WriteFavicon(ctx, host, contentType, data)
	}
	return fmt.Errorf("all favicon sources failed for %s: %w", host, lastErr)
}

// RefreshAsync refreshes a host in the background, de-duplicating
// concurrent refreshes of the same host. Fetch failure is non-fatal; the
// caller keeps serving the placeholder or the stale blob.
func (f *Fetcher) RefreshAsync(host string) {
	host = redisstore.NormalizeHost(host)
	f.mu.Lock()
	if f.inflight[host] {
		f.mu.Unlock()
		return
	}
	f.inflight[host] = true
	f.mu.Unlock()

	go func() {
		defer func() {
			f.mu.Lock()
			delete(f.inflight, host)
			f.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := f.Refresh(ctx, host); err != nil {
			f.log.Debug("async favicon refresh failed",
				logger.String("host", host),
				logger.Error(err))
		}
	}()
}

// RefreshAll refreshes every host in parallel. Per-host failures are
// isolated: one host's failure never aborts the others.
func (f *Fetcher) RefreshAll(ctx context.Context, hosts []string) map[string]error {
	results := make(map[string]error, len(hosts))
	var mu sync.Mutex
	var wg sync.WaitGroup

	seen := make(map[string]bool, len(hosts))
	for _, raw := range hosts {
		host := redisstore.NormalizeHost(raw)
		if host == "" || seen[host] {
			continue
		}
		seen[host] = true

		wg.Add(1)
		go func(host string) {
			defer wg.Done()
			err := f.Refresh(ctx, host)
			mu.Lock()
			results[host] = err
			mu.Unlock()
		}(host)
	}
	wg.Wait()
	return results
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("request failed: %w", err)
	}
	defer utils.Close(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxIconBytes))
	if err != nil {
		return "", nil, fmt.Errorf("failed to read body: %w", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty body from %s", url)
	}

	contentType := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.TrimSpace(contentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = "image/x-icon"
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", nil, fmt.Errorf("non-image content type %q from %s", contentType, url)
	}
	return contentType, data, nil
}
