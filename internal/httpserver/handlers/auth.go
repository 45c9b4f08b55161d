package handlers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/kerval/navdock/internal/httpserver/deps"
	"github.com/kerval/navdock/internal/logger"
)

type loginPayload struct {
	Secret string `json:"secret"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login exchanges the shared admin secret for a short-lived session
// token. The secret itself never travels on subsequent requests.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p loginPayload
		if err := decodeJSON(r, &p); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		if subtle.ConstantTimeCompare([]byte(p.Secret), []byte(d.AdminSecret)) != 1 {
			d.Logger.Warn("admin login rejected", logger.String("remote_ip", r.RemoteAddr))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		now := d.TimeNow()
		expires := now.Add(d.TokenTTL)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		})
		signed, err := token.SignedString([]byte(d.AdminSecret))
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		d.Logger.Info("admin login", logger.String("remote_ip", r.RemoteAddr))
		writeJSON(w, http.StatusOK, loginResponse{Token: signed, ExpiresAt: expires})
	}
}
