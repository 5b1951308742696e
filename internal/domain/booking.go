package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMissingBookingTime is returned when date_time or end_time is absent
	ErrMissingBookingTime = errors.New("booking has no date_time or end_time")

	// ErrInvalidBookingTime is returned when date_time or end_time cannot be parsed
	ErrInvalidBookingTime = errors.New("booking has an unparsable date_time or end_time")

	// ErrInvalidBookingUser is returned when user is neither an id nor an object with an id
	ErrInvalidBookingUser = errors.New("booking has an invalid user")
)

// Booking is a reservation as the booking API returns it. DateTime and EndTime are kept raw
// because the API may omit them; Interval resolves them.
type Booking struct {
	ID       int64        `json:"id"`
	DateTime string       `json:"date_time"`
	EndTime  string       `json:"end_time"`
	Services []Service    `json:"services"`
	User     *BookingUser `json:"user,omitempty"`
	UserName string       `json:"user_name,omitempty"`
}

// UserID returns the id of the user the booking belongs to, 0 when the API left it out.
func (b Booking) UserID() int64 {
	if b.User == nil {
		return 0
	}
	return b.User.ID
}

// BookingUser is the owner of a booking. The API sends either a bare id or a nested user object.
type BookingUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email,omitempty"`
}

func (u *BookingUser) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '{' {
		type plain BookingUser
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBookingUser, err)
		}
		*u = BookingUser(p)
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidBookingUser, data)
	}
	*u = BookingUser{ID: id}
	return nil
}

// Interval parses the booking bounds. Values without an offset are read in loc.
func (b Booking) Interval(loc *time.Location) (Interval, error) {
	if strings.TrimSpace(b.DateTime) == "" || strings.TrimSpace(b.EndTime) == "" {
		return Interval{}, fmt.Errorf("%w: booking id=%d", ErrMissingBookingTime, b.ID)
	}

	start, err := ParseInstant(b.DateTime, loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: booking id=%d date_time=%q", ErrInvalidBookingTime, b.ID, b.DateTime)
	}

	end, err := ParseInstant(b.EndTime, loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: booking id=%d end_time=%q", ErrInvalidBookingTime, b.ID, b.EndTime)
	}

	interval, err := NewInterval(start, end)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: booking id=%d ends before it starts", ErrInvalidBookingTime, b.ID)
	}

	return interval, nil
}

// ParseInstant accepts RFC 3339 (with or without fractional seconds) and the offset-less
// forms the API falls back to, which are read in loc.
func ParseInstant(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}

	for _, layout := range []string{LocalDateTime, ShortDateTime} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported datetime %q", value)
}
