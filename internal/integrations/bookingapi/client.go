package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

// Endpoint labels used in logs and metrics
const (
	endpointAvailability       = "availability"
	endpointAllBookings        = "bookings_all"
	endpointMyBookings         = "bookings_mine"
	endpointServices           = "services"
	endpointCreateBooking      = "bookings_create"
	endpointGetBooking         = "bookings_get"
	endpointUpdateBooking      = "admin_bookings_update"
	endpointDeleteBooking      = "admin_bookings_delete"
	endpointCreateAvailability = "admin_availability_create"
	endpointRefresh            = "token_refresh"
)

// Client is the HTTP client for the salon booking API
type Client struct {
	baseURL     string
	refreshPath string
	httpClient  *http.Client
	metrics     Metrics
	log         Logger
	now         func() time.Time
}

// NewClient creates a booking API client. metrics may be nil.
func NewClient(baseURL, refreshPath string, timeout time.Duration, metrics Metrics, log Logger) *Client {
	if refreshPath == "" {
		refreshPath = "/accounts/token/refresh/"
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		refreshPath: refreshPath,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// ListAvailability returns all availability windows, GET /availability/
func (c *Client) ListAvailability(ctx context.Context) ([]domain.AvailabilityWindow, error) {
	var windows []domain.AvailabilityWindow
	if err := c.call(ctx, http.MethodGet, endpointAvailability, "/availability/", nil, &windows); err != nil {
		return nil, err
	}
	return windows, nil
}

// ListAllBookings returns every booking, GET /bookings/all/
func (c *Client) ListAllBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.call(ctx, http.MethodGet, endpointAllBookings, "/bookings/all/", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListMyBookings returns the caller's bookings, GET /bookings/mine/
func (c *Client) ListMyBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.call(ctx, http.MethodGet, endpointMyBookings, "/bookings/mine/", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ListServices returns the service catalog, GET /services/
func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var services []domain.Service
	if err := c.call(ctx, http.MethodGet, endpointServices, "/services/", nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// CreateBooking books the given services, POST /bookings/
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.call(ctx, http.MethodPost, endpointCreateBooking, "/bookings/", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBooking returns one booking with its services, GET /bookings/{id}/
func (c *Client) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.call(ctx, http.MethodGet, endpointGetBooking, fmt.Sprintf("/bookings/%d/", id), nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBooking changes a booking as an admin, PUT /admin/bookings/{id}/
func (c *Client) UpdateBooking(ctx context.Context, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	var booking domain.Booking
	if err := c.call(ctx, http.MethodPut, endpointUpdateBooking, fmt.Sprintf("/admin/bookings/%d/", id), req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// DeleteBooking removes a booking as an admin, DELETE /admin/bookings/{id}/
func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, endpointDeleteBooking, fmt.Sprintf("/admin/bookings/%d/", id), nil, nil)
}

// CreateAvailability opens a new availability window, POST /admin/availability/
func (c *Client) CreateAvailability(ctx context.Context, window domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	var created domain.AvailabilityWindow
	if err := c.call(ctx, http.MethodPost, endpointCreateAvailability, "/admin/availability/", window, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// RefreshToken exchanges a refresh token for a new access token. It never goes through a session.
func (c *Client) RefreshToken(ctx context.Context, refresh string) (string, error) {
	status, body, err := c.send(ctx, http.MethodPost, endpointRefresh, c.refreshPath, refreshRequest{Refresh: refresh}, "")
	if err != nil {
		return "", err
	}

	switch status {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusUnauthorized:
		return "", fmt.Errorf("%w: refresh rejected with status %d", ErrSessionExpired, status)
	default:
		return "", fmt.Errorf("%w: unexpected status code %d on refresh: %s", ErrInvalidResponse, status, string(body))
	}

	var resp refreshResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: failed to decode refresh response: %v", ErrInvalidResponse, err)
	}
	if resp.Access == "" {
		return "", fmt.Errorf("%w: refresh response has no access token", ErrInvalidResponse)
	}
	return resp.Access, nil
}

// call sends an authenticated request. A 401 triggers exactly one refresh and retry.
func (c *Client) call(ctx context.Context, method, endpoint, path string, in, out interface{}) error {
	session := SessionFromContext(ctx)

	// 1. Refresh a token that is already past its expiry before the first request
	if s, ok := session.(expiringSession); ok && s.Expired(c.now()) {
		c.log.Info("BookingAPI: access token expired, refreshing before %s", endpoint)
		if err := session.Refresh(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}
	}

	// 2. The request itself
	status, body, err := c.send(ctx, method, endpoint, path, in, credential(session))
	if err != nil {
		return err
	}

	// 3. One refresh and one retry on 401
	if status == http.StatusUnauthorized && session != nil {
		c.log.Warn("BookingAPI: %s returned 401, refreshing token", endpoint)
		if err := session.Refresh(ctx); err != nil {
			c.log.Warn("BookingAPI: token refresh failed: %v", err)
			return fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}

		status, body, err = c.send(ctx, method, endpoint, path, in, credential(session))
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized {
			c.log.Warn("BookingAPI: %s still unauthorized after refresh", endpoint)
			session.Invalidate()
			return fmt.Errorf("%w: unauthorized after refresh", ErrSessionExpired)
		}
	}

	return decodeResponse(status, body, out)
}

// send performs one HTTP round trip and returns the status and the full body
func (c *Client) send(ctx context.Context, method, endpoint, path string, in interface{}, token string) (int, []byte, error) {
	var reader io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(endpoint, 0, time.Since(started))
		c.log.Error("BookingAPI: %s %s failed: %v", method, path, err)
		return 0, nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.metrics.ObserveUpstream(endpoint, resp.StatusCode, time.Since(started))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read response: %v", ErrInternal, err)
	}

	return resp.StatusCode, body, nil
}

func decodeResponse(status int, body []byte, out interface{}) error {
	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
	case http.StatusNoContent:
		return nil
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, errorDetail(body))
	case http.StatusUnauthorized:
		return ErrSessionExpired
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, errorDetail(body))
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, status, string(body))
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	return nil
}

// errorDetail extracts {"detail": ...} when present and falls back to the raw body
func errorDetail(body []byte) string {
	var e ErrorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Detail != "" {
		return e.Detail
	}
	return strings.TrimSpace(string(body))
}

type noopMetrics struct{}

func (noopMetrics) ObserveUpstream(string, int, time.Duration) {}

func credential(s Session) string {
	if s == nil {
		return ""
	}
	return s.Credential()
}
