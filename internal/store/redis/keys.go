package redis

import "strings"

const (
	// KeyDocument holds the entire serialized navigation tree.
	KeyDocument = "navdock:document"
	// KeyUpdatedAt holds the last-updated timestamp of the document.
	KeyUpdatedAt = "navdock:updated_at"
	// KeyPrefixFavicon is the prefix of the per-host favicon blob keys.
	KeyPrefixFavicon = "navdock:favicon:"
)

// NormalizeHost lowercases a host for use as a favicon key.
func NormalizeHost(host string) string {
	return strings.ToLower(strings.TrimSpace(host))
}

// FaviconKey returns the Redis key for one host's cached favicon.
func FaviconKey(host string) string {
	return KeyPrefixFavicon + NormalizeHost(host)
}

// ExtractFaviconHost extracts the host from a favicon key.
func ExtractFaviconHost(key string) string {
	return strings.TrimPrefix(key, KeyPrefixFavicon)
}
