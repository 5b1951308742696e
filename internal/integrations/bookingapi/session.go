package bookingapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/sync/singleflight"
)

// ErrNoRefreshToken is returned by Refresh when the caller did not supply a refresh token
var ErrNoRefreshToken = errors.New("bookingapi session: no refresh token")

// TokenSession holds the access/refresh pair of one incoming request.
// Concurrent calls that hit 401 together share a single refresh.
type TokenSession struct {
	mu        sync.Mutex
	access    string
	refresh   string
	refresher TokenRefresher
	group     singleflight.Group
	expired   bool

	authFailureHooks []func()
	refreshHooks     []func(access string)
}

// NewTokenSession creates a session. refresh may be empty, in which case a 401 ends the session.
func NewTokenSession(access, refresh string, refresher TokenRefresher) *TokenSession {
	return &TokenSession{
		access:    access,
		refresh:   refresh,
		refresher: refresher,
	}
}

// Credential returns the current access token.
func (s *TokenSession) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

// Refresh obtains a new access token with the refresh token. On failure the session is invalidated.
func (s *TokenSession) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do("refresh", func() (interface{}, error) {
		s.mu.Lock()
		refresh, expired := s.refresh, s.expired
		s.mu.Unlock()

		if expired {
			return nil, ErrSessionExpired
		}
		if refresh == "" {
			s.Invalidate()
			return nil, ErrNoRefreshToken
		}

		access, err := s.refresher.RefreshToken(ctx, refresh)
		if err != nil {
			s.Invalidate()
			return nil, fmt.Errorf("refresh token: %w", err)
		}

		s.mu.Lock()
		s.access = access
		hooks := append([]func(string){}, s.refreshHooks...)
		s.mu.Unlock()

		for _, fn := range hooks {
			fn(access)
		}
		return nil, nil
	})
	return err
}

// Invalidate clears both tokens and fires the auth failure hooks once.
func (s *TokenSession) Invalidate() {
	s.mu.Lock()
	if s.expired {
		s.mu.Unlock()
		return
	}
	s.expired = true
	s.access = ""
	s.refresh = ""
	hooks := append([]func(){}, s.authFailureHooks...)
	s.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// OnAuthFailure registers a callback for when the session can no longer be refreshed.
func (s *TokenSession) OnAuthFailure(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authFailureHooks = append(s.authFailureHooks, fn)
}

// OnRefresh registers a callback receiving each new access token.
func (s *TokenSession) OnRefresh(fn func(access string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshHooks = append(s.refreshHooks, fn)
}

// IsExpired reports whether the session was invalidated.
func (s *TokenSession) IsExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expired
}

// Expired reports whether the access token is a JWT whose exp claim has passed.
// Opaque tokens never count as expired here; the API decides with a 401.
func (s *TokenSession) Expired(now time.Time) bool {
	claims, ok := parseClaims(s.Credential())
	if !ok {
		return false
	}
	if _, has := claims["exp"]; !has {
		return false
	}
	return !claims.VerifyExpiresAt(now.Unix(), true)
}

// Subject returns the user the access token was issued to: the user_id claim the
// booking API puts in its tokens, or sub. Empty for opaque tokens.
func (s *TokenSession) Subject() string {
	return TokenSubject(s.Credential())
}

// TokenSubject extracts the user id from an unverified JWT.
func TokenSubject(token string) string {
	claims, ok := parseClaims(token)
	if !ok {
		return ""
	}

	for _, key := range []string{"user_id", "sub"} {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

// parseClaims reads the claims without verifying the signature. Verification belongs to the booking API.
func parseClaims(token string) (jwt.MapClaims, bool) {
	if token == "" {
		return nil, false
	}

	parser := new(jwt.Parser)
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}
