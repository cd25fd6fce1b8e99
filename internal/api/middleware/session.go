package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"labequip/storefront/internal/config"
)

type sessionKey struct{}

// Session makes sure every request carries an RFQ session id, issuing a cookie when the
// visitor has none or presents one that is not a uuid
func Session(cfg config.SessionConfig) func(http.Handler) http.Handler {
	maxAge := int((time.Duration(cfg.TTL) * time.Minute).Seconds())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(cfg.CookieName); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}

			if id == "" {
				id = uuid.NewString()
			}

			// Refreshed on every request so the cookie outlives the idle TTL of the cart
			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   maxAge,
				HttpOnly: true,
				Secure:   cfg.SecureCookie,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
		})
	}
}

// SessionID returns the session id placed in the context by Session
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// ExpireSession tells the browser to drop the session cookie
func ExpireSession(w http.ResponseWriter, cfg config.SessionConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
