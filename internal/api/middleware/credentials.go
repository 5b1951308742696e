package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-BookingCalendar/internal/integrations/bookingapi"
)

// Credential headers exchanged with the calendar widget
const (
	HeaderRefreshToken = "X-Refresh-Token"
	HeaderAccessToken  = "X-Access-Token"
)

const msgMissingToken = "missing access token"

type contextKey string

const ownerKey contextKey = "owner"

// Credentials reads the bearer and refresh tokens of the request into a booking API session.
// A refreshed access token is sent back in X-Access-Token.
func Credentials(refresher bookingapi.TokenRefresher, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			access := bearerToken(r)
			if access == "" {
				log.Warn("%s %s - Missing bearer token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			session := bookingapi.NewTokenSession(access, r.Header.Get(HeaderRefreshToken), refresher)
			session.OnRefresh(func(fresh string) {
				w.Header().Set(HeaderAccessToken, fresh)
			})
			session.OnAuthFailure(func() {
				log.Warn("%s %s - Session expired", r.Method, r.URL.Path)
			})

			ctx := bookingapi.WithSession(r.Context(), session)
			ctx = context.WithValue(ctx, ownerKey, session.Subject())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOwner returns the user the access token was issued to. Empty for opaque tokens.
func GetOwner(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey).(string)
	return owner
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
