package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/httpserver/handlers"
	"github.com/kerval/navdock/internal/httpserver/mw"
)

func init() { Register(registerAuth) }

func registerAuth(r chi.Router, d deps.Deps) {
	// Login is rate limited but obviously not token-guarded.
	r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		loginRateLimit(d),
	).Post("/api/auth/login", handlers.Login(d))
}
