package bookingapi

import (
	"context"
	"time"
)

// Logger is the logging interface used by the client
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics records booking API calls
type Metrics interface {
	ObserveUpstream(endpoint string, status int, elapsed time.Duration)
}

// Session is the caller's credential pair as seen by the client.
// Refresh obtains a new access token; on failure the session is invalidated and the
// auth failure callbacks fire.
type Session interface {
	Credential() string
	Refresh(ctx context.Context) error
	Invalidate()
	OnAuthFailure(fn func())
	OnRefresh(fn func(access string))
}

// TokenRefresher exchanges a refresh token for a new access token
type TokenRefresher interface {
	RefreshToken(ctx context.Context, refresh string) (string, error)
}

// expiringSession is implemented by sessions that can tell an access token is stale before sending it
type expiringSession interface {
	Expired(now time.Time) bool
}

type sessionKey struct{}

// WithSession attaches the caller's session to ctx. Every client call made with ctx is authenticated with it.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session attached by WithSession, or nil.
func SessionFromContext(ctx context.Context) Session {
	s, _ := ctx.Value(sessionKey{}).(Session)
	return s
}
