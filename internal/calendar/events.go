package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

// Snapshot is one fetch cycle worth of data from the booking API.
type Snapshot struct {
	Windows     []domain.AvailabilityWindow
	AllBookings []domain.Booking
	MyBookings  []domain.Booking
	Location    *time.Location
	SlotSize    time.Duration
}

// slotKey identifies a slot by instant so overlapping windows do not produce duplicates.
type slotKey struct {
	start, end int64
}

// Assemble builds the event set for a snapshot: free slots, foreign bookings and own bookings.
// Records that cannot be placed on the calendar are skipped and returned as warnings.
func Assemble(s Snapshot) ([]domain.CalendarEvent, []error) {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	size := s.SlotSize
	if size <= 0 {
		size = domain.DefaultSlotDuration
	}

	var warnings []error

	mine := make(map[int64]struct{}, len(s.MyBookings))
	for _, b := range s.MyBookings {
		mine[b.ID] = struct{}{}
	}

	events := make([]domain.CalendarEvent, 0, len(s.AllBookings)+len(s.MyBookings))
	occupied := make([]domain.Interval, 0, len(s.AllBookings)+len(s.MyBookings))

	for _, b := range s.MyBookings {
		interval, err := b.Interval(loc)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		occupied = append(occupied, interval)
		events = append(events, domain.NewOwnBookingEvent(b.ID, interval))
	}

	for _, b := range s.AllBookings {
		if _, ok := mine[b.ID]; ok {
			continue
		}
		interval, err := b.Interval(loc)
		if err != nil {
			warnings = append(warnings, err)
			continue
		}
		occupied = append(occupied, interval)
		events = append(events, domain.NewForeignBookingEvent(b.ID, interval))
	}

	seen := make(map[slotKey]struct{})
	for _, w := range s.Windows {
		window, err := w.Interval(loc)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("availability window id=%d: %w", w.ID, err))
			continue
		}
		for _, slot := range FilterSlots(GenerateSlots(window, size), occupied) {
			key := keyOf(slot)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			events = append(events, domain.NewAvailableEvent(slot))
		}
	}

	SortEvents(events)
	return events, warnings
}

// SortEvents orders events by start, then end, then kind.
func SortEvents(events []domain.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Start().Equal(b.Start()) {
			return a.Start().Before(b.Start())
		}
		if !a.End().Equal(b.End()) {
			return a.End().Before(b.End())
		}
		return a.Kind() < b.Kind()
	})
}

// MergeOwnBooking adds a freshly created booking to an event set as an own booking and
// removes the available slots it now covers.
func MergeOwnBooking(events []domain.CalendarEvent, id int64, interval domain.Interval) []domain.CalendarEvent {
	return mergeBooking(events, domain.NewOwnBookingEvent(id, interval))
}

// MoveBooking places booking id at interval, keeping whether it is own or foreign. A booking
// not in the set is added as foreign. Available slots under the new interval are removed.
func MoveBooking(events []domain.CalendarEvent, id int64, interval domain.Interval) []domain.CalendarEvent {
	moved := domain.NewForeignBookingEvent(id, interval)
	for _, e := range events {
		if eid, ok := e.ID(); ok && e.Booked() && eid == id && e.Mine() {
			moved = domain.NewOwnBookingEvent(id, interval)
			break
		}
	}
	return mergeBooking(events, moved)
}

// RemoveBooking drops booking id from the event set.
func RemoveBooking(events []domain.CalendarEvent, id int64) []domain.CalendarEvent {
	kept := make([]domain.CalendarEvent, 0, len(events))
	for _, e := range events {
		if eid, ok := e.ID(); ok && e.Booked() && eid == id {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// AddAvailability adds the free slots of a new window. Slots already present or overlapping a
// booking are skipped.
func AddAvailability(events []domain.CalendarEvent, window domain.Interval, size time.Duration) []domain.CalendarEvent {
	var booked []domain.Interval
	existing := make(map[slotKey]bool)
	for _, e := range events {
		switch {
		case e.Booked():
			booked = append(booked, e.Interval())
		case e.Kind() == domain.EventAvailable:
			existing[keyOf(e.Interval())] = true
		}
	}

	out := append(make([]domain.CalendarEvent, 0, len(events)), events...)
	for _, slot := range FilterSlots(GenerateSlots(window, size), booked) {
		if existing[keyOf(slot)] {
			continue
		}
		out = append(out, domain.NewAvailableEvent(slot))
	}
	SortEvents(out)
	return out
}

func keyOf(i domain.Interval) slotKey {
	return slotKey{start: i.Start.UnixNano(), end: i.End.UnixNano()}
}

func mergeBooking(events []domain.CalendarEvent, booking domain.CalendarEvent) []domain.CalendarEvent {
	id, _ := booking.ID()
	merged := make([]domain.CalendarEvent, 0, len(events)+1)
	for _, e := range events {
		if e.Kind() == domain.EventAvailable && Overlaps(e.Interval(), booking.Interval()) {
			continue
		}
		if eid, ok := e.ID(); ok && e.Booked() && eid == id {
			continue
		}
		merged = append(merged, e)
	}
	merged = append(merged, booking)
	SortEvents(merged)
	return merged
}
