package bookingapi

// CreateBookingRequest is the body of POST /bookings/
type CreateBookingRequest struct {
	ServiceIDs []int64 `json:"service_ids"`
	DateTime   string  `json:"date_time"`
	EndTime    string  `json:"end_time"`
}

// UpdateBookingRequest is the body of PUT /admin/bookings/{id}/
type UpdateBookingRequest struct {
	UserID     *int64  `json:"user_id,omitempty"`
	ServiceIDs []int64 `json:"service_ids"`
	DateTime   string  `json:"date_time"`
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// ErrorResponse is the error body the booking API returns, e.g. {"detail": "..."}
type ErrorResponse struct {
	Detail string `json:"detail"`
}
