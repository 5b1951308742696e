package bookingapi

import "errors"

var (
	// ErrBadRequest is returned when the booking API rejects the payload (400)
	ErrBadRequest = errors.New("bookingapi client: bad request")

	// ErrSessionExpired is returned when the API answers 401 and the token cannot be refreshed
	ErrSessionExpired = errors.New("bookingapi client: session expired")

	// ErrForbidden is returned for 403, e.g. a non-staff user calling an admin endpoint
	ErrForbidden = errors.New("bookingapi client: forbidden")

	// ErrNotFound is returned for 404
	ErrNotFound = errors.New("bookingapi client: not found")

	// ErrInvalidResponse is returned for unexpected status codes or undecodable bodies
	ErrInvalidResponse = errors.New("bookingapi client: invalid response")

	// ErrInternal is returned when the request could not be built or sent
	ErrInternal = errors.New("bookingapi client: internal error")
)
