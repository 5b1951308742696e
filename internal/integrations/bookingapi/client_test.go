package bookingapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	"github.com/m04kA/SMC-BookingCalendar/pkg/logger"
)

type fakeMetrics struct {
	mu    sync.Mutex
	calls map[string][]int
}

func (m *fakeMetrics) ObserveUpstream(endpoint string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string][]int)
	}
	m.calls[endpoint] = append(m.calls[endpoint], status)
}

// fakeAPI accepts only the bearer token in valid and hands out fresh on refresh.
type fakeAPI struct {
	valid         atomic.Value
	fresh         string
	refreshStatus int
	refreshCalls  int32
	seenTokens    []string
	mu            sync.Mutex
}

func newFakeAPI(t *testing.T, valid, fresh string) (*fakeAPI, *httptest.Server) {
	t.Helper()
	api := &fakeAPI{fresh: fresh, refreshStatus: http.StatusOK}
	api.valid.Store(valid)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/accounts/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&api.refreshCalls, 1)
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Refresh != "refresh-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if api.refreshStatus != http.StatusOK {
			w.WriteHeader(api.refreshStatus)
			return
		}
		api.valid.Store(api.fresh)
		_ = json.NewEncoder(w).Encode(refreshResponse{Access: api.fresh})
	})
	mux.HandleFunc("/api/services/", func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		api.mu.Lock()
		api.seenTokens = append(api.seenTokens, token)
		api.mu.Unlock()

		if token != "Bearer "+api.valid.Load().(string) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode([]domain.Service{
			{ID: 1, Name: "Haircut", Worktime: "01:30:00", Price: "40.00"},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return api, srv
}

func newTestClient(url string, m Metrics) *Client {
	return NewClient(url+"/api", "/accounts/token/refresh/", 5*time.Second, m, logger.NewNop())
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestClient_ListServices(t *testing.T) {
	_, srv := newFakeAPI(t, "access-1", "access-2")
	m := &fakeMetrics{}
	client := newTestClient(srv.URL, m)

	session := NewTokenSession("access-1", "refresh-token", client)
	services, err := client.ListServices(WithSession(context.Background(), session))

	require.NoError(t, err)
	require.Len(t, services, 1)
	assert.Equal(t, "Haircut", services[0].Name)
	assert.Equal(t, []int{http.StatusOK}, m.calls[endpointServices])
}

func TestClient_RefreshOnceAndRetry(t *testing.T) {
	api, srv := newFakeAPI(t, "access-2", "access-2")
	client := newTestClient(srv.URL, nil)

	session := NewTokenSession("stale", "refresh-token", client)
	var refreshed string
	session.OnRefresh(func(access string) { refreshed = access })
	session.OnAuthFailure(func() { t.Fatal("auth failure must not fire") })

	services, err := client.ListServices(WithSession(context.Background(), session))

	require.NoError(t, err)
	assert.Len(t, services, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.refreshCalls))
	assert.Equal(t, "access-2", refreshed)
	assert.Equal(t, "access-2", session.Credential())
	assert.Equal(t, []string{"Bearer stale", "Bearer access-2"}, api.seenTokens)
}

func TestClient_RefreshFailureExpiresSession(t *testing.T) {
	api, srv := newFakeAPI(t, "access-2", "access-2")
	api.refreshStatus = http.StatusUnauthorized
	client := newTestClient(srv.URL, nil)

	session := NewTokenSession("stale", "refresh-token", client)
	failures := 0
	session.OnAuthFailure(func() { failures++ })

	_, err := client.ListServices(WithSession(context.Background(), session))

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, 1, failures)
	assert.True(t, session.IsExpired())
	assert.Empty(t, session.Credential())
	assert.Len(t, api.seenTokens, 1)
}

func TestClient_StillUnauthorizedAfterRefresh(t *testing.T) {
	api, srv := newFakeAPI(t, "never-valid", "access-2")
	client := newTestClient(srv.URL, nil)
	// refresh succeeds but the API keeps rejecting the new token
	srv.Config.Handler.(*http.ServeMux).HandleFunc("/api/bookings/all/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	session := NewTokenSession("stale", "refresh-token", client)
	failures := 0
	session.OnAuthFailure(func() { failures++ })

	_, err := client.ListAllBookings(WithSession(context.Background(), session))

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.refreshCalls))
	assert.Equal(t, 1, failures)
}

func TestClient_NoRefreshToken(t *testing.T) {
	api, srv := newFakeAPI(t, "access-2", "access-2")
	client := newTestClient(srv.URL, nil)

	session := NewTokenSession("stale", "", client)
	_, err := client.ListServices(WithSession(context.Background(), session))

	assert.ErrorIs(t, err, ErrSessionExpired)
	assert.Equal(t, int32(0), atomic.LoadInt32(&api.refreshCalls))
}

func TestClient_ProactiveRefreshOfExpiredJWT(t *testing.T) {
	fresh := signedToken(t, jwt.MapClaims{"user_id": 7, "exp": time.Now().Add(time.Hour).Unix()})
	api, srv := newFakeAPI(t, fresh, fresh)
	client := newTestClient(srv.URL, nil)

	expired := signedToken(t, jwt.MapClaims{"user_id": 7, "exp": time.Now().Add(-time.Minute).Unix()})
	session := NewTokenSession(expired, "refresh-token", client)

	_, err := client.ListServices(WithSession(context.Background(), session))

	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&api.refreshCalls))
	assert.Equal(t, []string{"Bearer " + fresh}, api.seenTokens)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
		detail string
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"detail":"Slot is taken"}`, want: ErrBadRequest, detail: "Slot is taken"},
		{name: "forbidden", status: http.StatusForbidden, body: `{"detail":"Admins only"}`, want: ErrForbidden, detail: "Admins only"},
		{name: "not found", status: http.StatusNotFound, want: ErrNotFound},
		{name: "unauthorized without session", status: http.StatusUnauthorized, want: ErrSessionExpired},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", want: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, nil).GetBooking(context.Background(), 5)

			assert.ErrorIs(t, err, tt.want)
			if tt.detail != "" {
				assert.Contains(t, err.Error(), tt.detail)
			}
		})
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, nil).GetBooking(context.Background(), 5)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	m := &fakeMetrics{}
	_, err := newTestClient(url, m).ListAvailability(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, []int{0}, m.calls[endpointAvailability])
}

func TestClient_CreateBooking(t *testing.T) {
	var got CreateBookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/bookings/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.Booking{ID: 99, DateTime: got.DateTime, EndTime: got.EndTime})
	}))
	defer srv.Close()

	req := CreateBookingRequest{ServiceIDs: []int64{1, 2}, DateTime: "2025-01-06T08:30:00Z", EndTime: "2025-01-06T09:15:00Z"}
	booking, err := newTestClient(srv.URL, nil).CreateBooking(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(99), booking.ID)
	assert.Equal(t, req, got)
}

func TestClient_DeleteBookingNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/admin/bookings/12/", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	assert.NoError(t, newTestClient(srv.URL, nil).DeleteBooking(context.Background(), 12))
}

func TestTokenSubject(t *testing.T) {
	assert.Equal(t, "42", TokenSubject(signedToken(t, jwt.MapClaims{"user_id": 42})))
	assert.Equal(t, "alice", TokenSubject(signedToken(t, jwt.MapClaims{"sub": "alice"})))
	assert.Empty(t, TokenSubject("opaque-token"))
	assert.Empty(t, TokenSubject(""))
}

func TestTokenSessionExpired(t *testing.T) {
	now := time.Now()

	expired := NewTokenSession(signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Second).Unix()}), "", nil)
	valid := NewTokenSession(signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}), "", nil)
	noExp := NewTokenSession(signedToken(t, jwt.MapClaims{"user_id": 1}), "", nil)
	opaque := NewTokenSession("opaque", "", nil)

	assert.True(t, expired.Expired(now))
	assert.False(t, valid.Expired(now))
	assert.False(t, noExp.Expired(now))
	assert.False(t, opaque.Expired(now))
}
