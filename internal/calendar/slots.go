package calendar

import (
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

// GenerateSlots splits a window into consecutive slots of the given size starting at window.Start.
// A last slot that would run past window.End is dropped, not truncated.
func GenerateSlots(window domain.Interval, size time.Duration) []domain.Interval {
	if size <= 0 || window.IsEmpty() {
		return []domain.Interval{}
	}

	slots := make([]domain.Interval, 0, int(window.Duration()/size))
	for current := window.Start; current.Before(window.End); current = current.Add(size) {
		end := current.Add(size)
		if end.After(window.End) {
			break
		}
		slots = append(slots, domain.Interval{Start: current, End: end})
	}

	return slots
}
