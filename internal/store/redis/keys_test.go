package redis

import "testing"

func TestFaviconKeyRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		host string
		key  string
	}{
		{name: "plain host", host: "example.com", key: "navdock:favicon:example.com"},
		{name: "normalized case", host: " Example.COM ", key: "navdock:favicon:example.com"},
		{name: "host with port", host: "localhost:8080", key: "navdock:favicon:localhost:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := FaviconKey(tt.host)
			if key != tt.key {
				t.Errorf("FaviconKey(%q) = %q, want %q", tt.host, key, tt.key)
			}
			if got := ExtractFaviconHost(key); got != NormalizeHost(tt.host) {
				t.Errorf("ExtractFaviconHost(%q) = %q, want %q", key, got, NormalizeHost(tt.host))
			}
		})
	}
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Example.COM", want: "example.com"},
		{in: "  spaced.example.com  ", want: "spaced.example.com"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := NormalizeHost(tt.in); got != tt.want {
			t.Errorf("NormalizeHost(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
