package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidClockTime is returned for wall-clock strings that are neither HH:MM:SS nor HH:MM
var ErrInvalidClockTime = errors.New("invalid clock time format")

const (
	clockLayout      = "15:04:05"
	shortClockLayout = "15:04"
)

// ClockTime is a wall-clock time of day without a date, e.g. "08:30:00".
type ClockTime string

// NewClockTime formats the wall-clock part of t.
func NewClockTime(t time.Time) ClockTime {
	return ClockTime(t.Format(clockLayout))
}

// Offset returns the duration since midnight.
func (c ClockTime) Offset() (time.Duration, error) {
	t, err := time.Parse(clockLayout, string(c))
	if err != nil {
		t, err = time.Parse(shortClockLayout, string(c))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, string(c))
		}
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// On places the clock time on the given calendar day in loc. The wall clock is kept on
// daylight saving transition days.
func (c ClockTime) On(day time.Time, loc *time.Location) (time.Time, error) {
	offset, err := c.Offset()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	hour := int(offset / time.Hour)
	minute := int(offset % time.Hour / time.Minute)
	second := int(offset % time.Minute / time.Second)
	return time.Date(y, m, d, hour, minute, second, 0, loc), nil
}

// String returns the raw representation.
func (c ClockTime) String() string {
	return string(c)
}
