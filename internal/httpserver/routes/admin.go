package routes

import (
	"net/http"
	"time"

	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/httpserver/mw"
)

// adminChain is the middleware stack shared by every mutating admin
// endpoint: optional IP allowlist, per-IP rate limiting, session token.
func adminChain(d deps.Deps) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.AdminRateBurst,
			RefillPerIPPerMin: d.AdminRatePerMin,
			MaxEntries:        4096,
			SweepInterval:     time.Minute,
			IdleTTL:           15 * time.Minute,
			TrustProxy:        d.TrustProxy,
		}),
		mw.RequireAdmin(d.AdminSecret, d.Logger),
	}
}

// loginRateLimit is tighter than the general admin limit; login is the
// only endpoint reachable without a token.
func loginRateLimit(d deps.Deps) func(http.Handler) http.Handler {
	return mw.RateLimit(mw.RateLimitConfig{
		Burst:             5,
		RefillPerIPPerMin: 10,
		MaxEntries:        4096,
		SweepInterval:     time.Minute,
		IdleTTL:           15 * time.Minute,
		TrustProxy:        d.TrustProxy,
	})
}
