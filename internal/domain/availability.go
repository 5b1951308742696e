package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/pkg/types"
)

// ErrInvalidWindow is returned for availability windows with unparsable or inverted bounds
var ErrInvalidWindow = errors.New("invalid availability window")

// AvailabilityWindow is an admin-declared open interval on one calendar day, half-open [start, end).
type AvailabilityWindow struct {
	ID        int64           `json:"id,omitempty"`
	Date      string          `json:"date"`       // "2025-01-06"
	StartTime types.ClockTime `json:"start_time"` // "08:00:00"
	EndTime   types.ClockTime `json:"end_time"`   // "17:00:00"
}

// Interval resolves the window to absolute instants in the salon time zone.
func (w AvailabilityWindow) Interval(loc *time.Location) (Interval, error) {
	day, err := time.ParseInLocation(DateFormat, w.Date, loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: date %q: %v", ErrInvalidWindow, w.Date, err)
	}

	start, err := w.StartTime.On(day, loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: start_time: %v", ErrInvalidWindow, err)
	}

	end, err := w.EndTime.On(day, loc)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: end_time: %v", ErrInvalidWindow, err)
	}

	interval, err := NewInterval(start, end)
	if err != nil {
		return Interval{}, fmt.Errorf("%w: %s-%s on %s", ErrInvalidWindow, w.StartTime, w.EndTime, w.Date)
	}

	return interval, nil
}

// WindowFromInterval builds the payload for a new availability window from a selected range.
// Both ends must fall on the same day in loc.
func WindowFromInterval(i Interval, loc *time.Location) (AvailabilityWindow, error) {
	start := i.Start.In(loc)
	end := i.End.In(loc)

	if i.IsEmpty() {
		return AvailabilityWindow{}, ErrInvalidInterval
	}
	if start.Format(DateFormat) != end.Format(DateFormat) {
		return AvailabilityWindow{}, fmt.Errorf("%w: range spans more than one day", ErrInvalidWindow)
	}

	return AvailabilityWindow{
		Date:      start.Format(DateFormat),
		StartTime: types.NewClockTime(start),
		EndTime:   types.NewClockTime(end),
	}, nil
}
