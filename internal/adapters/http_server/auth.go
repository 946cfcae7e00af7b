package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

const authCookie = "auth_token"

type ctxKey struct{}

// UserID returns the authenticated user id placed in ctx by Authenticate.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func withUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// Authenticate rejects requests without a valid token. The token is taken from
// the Authorization bearer header, falling back to the auth cookie.
func Authenticate(v domain.TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearer(r.Header.Get("Authorization"))
			if raw == "" {
				if c, err := r.Cookie(authCookie); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				writeMessage(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			uid, err := v.Verify(raw)
			if err != nil {
				log.Debug().Err(err).Msg("token rejected")
				writeMessage(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), uid)))
		})
	}
}

func bearer(h string) string {
	const p = "Bearer "
	if len(h) > len(p) && strings.EqualFold(h[:len(p)], p) {
		return strings.TrimSpace(h[len(p):])
	}
	return ""
}
