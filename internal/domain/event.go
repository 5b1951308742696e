package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownEventKind is returned when decoding an event with an unrecognised kind
var ErrUnknownEventKind = errors.New("unknown calendar event kind")

// EventKind tags the four calendar event variants.
type EventKind string

const (
	EventAvailable      EventKind = "available"
	EventForeignBooking EventKind = "foreign_booking"
	EventOwnBooking     EventKind = "own_booking"
	EventSelection      EventKind = "selection"
)

// CalendarEvent is a derived calendar entry. The available/booked/mine flags are not stored;
// they follow from Kind, so an event can only be built through the constructors below.
type CalendarEvent struct {
	kind      EventKind
	bookingID int64
	interval  Interval
}

func NewAvailableEvent(slot Interval) CalendarEvent {
	return CalendarEvent{kind: EventAvailable, interval: slot}
}

func NewForeignBookingEvent(id int64, interval Interval) CalendarEvent {
	return CalendarEvent{kind: EventForeignBooking, bookingID: id, interval: interval}
}

func NewOwnBookingEvent(id int64, interval Interval) CalendarEvent {
	return CalendarEvent{kind: EventOwnBooking, bookingID: id, interval: interval}
}

// NewSelectionEvent builds the provisional "Selected Time" event. It always carries SelectionEventID.
func NewSelectionEvent(interval Interval) CalendarEvent {
	return CalendarEvent{kind: EventSelection, bookingID: SelectionEventID, interval: interval}
}

func (e CalendarEvent) Kind() EventKind    { return e.kind }
func (e CalendarEvent) Interval() Interval { return e.interval }
func (e CalendarEvent) Start() time.Time   { return e.interval.Start }
func (e CalendarEvent) End() time.Time     { return e.interval.End }

// ID returns the booking id for booking events and SelectionEventID for the selection.
// Available slots have no id.
func (e CalendarEvent) ID() (int64, bool) {
	switch e.kind {
	case EventForeignBooking, EventOwnBooking, EventSelection:
		return e.bookingID, true
	default:
		return 0, false
	}
}

// Available reports whether the widget may start a selection on the event.
// Own bookings stay clickable, foreign ones do not.
func (e CalendarEvent) Available() bool {
	return e.kind == EventAvailable || e.kind == EventOwnBooking || e.kind == EventSelection
}

// Booked reports whether the event blocks new selections.
func (e CalendarEvent) Booked() bool {
	return e.kind == EventForeignBooking || e.kind == EventOwnBooking
}

func (e CalendarEvent) Mine() bool {
	return e.kind == EventOwnBooking
}

func (e CalendarEvent) Title() string {
	switch e.kind {
	case EventForeignBooking:
		return TitleBooked
	case EventOwnBooking:
		return TitleOwnBooking
	case EventSelection:
		return TitleSelectedTime
	default:
		return TitleAvailable
	}
}

type eventJSON struct {
	ID        *int64    `json:"id,omitempty"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Title     string    `json:"title"`
	Kind      EventKind `json:"kind"`
	Available bool      `json:"available"`
	Booked    bool      `json:"booked"`
	Mine      bool      `json:"mine"`
}

func (e CalendarEvent) MarshalJSON() ([]byte, error) {
	out := eventJSON{
		Start:     e.interval.Start,
		End:       e.interval.End,
		Title:     e.Title(),
		Kind:      e.kind,
		Available: e.Available(),
		Booked:    e.Booked(),
		Mine:      e.Mine(),
	}
	if id, ok := e.ID(); ok {
		out.ID = &id
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores an event from its kind, id and bounds. The flags are ignored and re-derived.
func (e *CalendarEvent) UnmarshalJSON(data []byte) error {
	var in eventJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	interval := Interval{Start: in.Start, End: in.End}
	var id int64
	if in.ID != nil {
		id = *in.ID
	}

	switch in.Kind {
	case EventAvailable:
		*e = NewAvailableEvent(interval)
	case EventForeignBooking:
		*e = NewForeignBookingEvent(id, interval)
	case EventOwnBooking:
		*e = NewOwnBookingEvent(id, interval)
	case EventSelection:
		*e = NewSelectionEvent(interval)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEventKind, in.Kind)
	}
	return nil
}
