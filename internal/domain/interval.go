package domain

import (
	"errors"
	"time"
)

// ErrInvalidInterval is returned when an interval does not end after it starts
var ErrInvalidInterval = errors.New("interval end must be after start")

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval validates that end is after start.
func NewInterval(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{Start: start, End: end}, nil
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// IsEmpty reports a zero or negative length interval.
func (i Interval) IsEmpty() bool {
	return !i.End.After(i.Start)
}
