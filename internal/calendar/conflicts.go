package calendar

import "github.com/m04kA/SMC-BookingCalendar/internal/domain"

// Overlaps reports whether two half-open intervals intersect.
// Intervals that only touch (a.End == b.Start) do not overlap.
func Overlaps(a, b domain.Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// OverlapsAny reports whether interval overlaps at least one of occupied.
func OverlapsAny(interval domain.Interval, occupied []domain.Interval) bool {
	for _, o := range occupied {
		if Overlaps(interval, o) {
			return true
		}
	}
	return false
}

// FilterSlots drops every slot that overlaps an occupied interval. A booking always wins,
// even a one-minute overlap removes the whole slot.
func FilterSlots(slots, occupied []domain.Interval) []domain.Interval {
	free := make([]domain.Interval, 0, len(slots))
	for _, slot := range slots {
		if OverlapsAny(slot, occupied) {
			continue
		}
		free = append(free, slot)
	}
	return free
}

// OverlapsBooked reports whether interval overlaps a booked event, own or foreign.
func OverlapsBooked(events []domain.CalendarEvent, interval domain.Interval) bool {
	for _, e := range events {
		if e.Booked() && Overlaps(interval, e.Interval()) {
			return true
		}
	}
	return false
}

// CoveredByOwnBooking reports whether a single own booking spans the whole interval.
func CoveredByOwnBooking(events []domain.CalendarEvent, interval domain.Interval) bool {
	for _, e := range events {
		if e.Mine() && !e.Start().After(interval.Start) && !e.End().Before(interval.End) {
			return true
		}
	}
	return false
}
