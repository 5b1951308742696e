package calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

// State of the user's in-progress booking.
type State string

const (
	StateIdle       State = "idle"
	StatePending    State = "pending"
	StateSubmitting State = "submitting"
)

// User-facing submission validation messages
const (
	MsgNoServices   = "Please select at least one service."
	MsgNoTime       = "Please select a time on the calendar."
	MsgNoDuration   = "The selected services have no duration."
	MsgOverlap      = "The selected time overlaps an existing booking."
	MsgSubmitFailed = "Failed to create booking. Please try again."
)

// Selection tracks the selected services and the provisional time range.
// Range is a single field, so at most one provisional event can exist.
type Selection struct {
	ServiceIDs    []int64          `json:"serviceIds"`
	TotalWorktime float64          `json:"totalWorktime"`
	Range         *domain.Interval `json:"range,omitempty"`
	State         State            `json:"state"`
	Succeeded     bool             `json:"succeeded"`
	LastError     string           `json:"lastError,omitempty"`
}

// NewSelection returns an idle selection.
func NewSelection() Selection {
	return Selection{ServiceIDs: []int64{}, State: StateIdle}
}

// Has reports whether the service is currently selected.
func (s *Selection) Has(serviceID int64) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// SelectedServices resolves the selected ids against the catalog, skipping unknown ones.
func (s *Selection) SelectedServices(catalog []domain.Service) []domain.Service {
	selected := make([]domain.Service, 0, len(s.ServiceIDs))
	for _, id := range s.ServiceIDs {
		if svc, ok := domain.FindService(catalog, id); ok {
			selected = append(selected, svc)
		}
	}
	return selected
}

// Toggle flips membership of a service and recomputes the total worktime.
// A pending range keeps its start and gets a new end.
func (s *Selection) Toggle(catalog []domain.Service, serviceID int64) error {
	if s.State == StateSubmitting {
		return ErrSubmitInProgress
	}
	if _, ok := domain.FindService(catalog, serviceID); !ok {
		return fmt.Errorf("%w: id=%d", ErrUnknownService, serviceID)
	}

	if s.Has(serviceID) {
		kept := make([]int64, 0, len(s.ServiceIDs))
		for _, id := range s.ServiceIDs {
			if id != serviceID {
				kept = append(kept, id)
			}
		}
		s.ServiceIDs = kept
	} else {
		s.ServiceIDs = append(s.ServiceIDs, serviceID)
	}

	s.recompute(catalog)
	s.Succeeded = false
	s.LastError = ""
	return nil
}

// Reconcile drops selected ids that are no longer in the catalog and recomputes the total.
func (s *Selection) Reconcile(catalog []domain.Service) {
	kept := make([]int64, 0, len(s.ServiceIDs))
	for _, id := range s.ServiceIDs {
		if _, ok := domain.FindService(catalog, id); ok {
			kept = append(kept, id)
		}
	}
	s.ServiceIDs = kept
	s.recompute(catalog)
}

// recompute updates the total and the pending range end. A range that would become empty
// is removed instead.
func (s *Selection) recompute(catalog []domain.Service) {
	s.TotalWorktime = SumWorktime(s.SelectedServices(catalog))
	if s.Range == nil {
		return
	}
	if s.TotalWorktime <= 0 {
		s.Range = nil
		s.State = StateIdle
		return
	}
	s.Range = &domain.Interval{Start: s.Range.Start, End: BookingEnd(s.Range.Start, s.TotalWorktime)}
}

// SelectSlot proposes [start, start+total) as the booking time. The selection is unchanged
// when it fails.
func (s *Selection) SelectSlot(events []domain.CalendarEvent, start time.Time) error {
	if s.State == StateSubmitting {
		return ErrSubmitInProgress
	}
	if s.TotalWorktime <= 0 {
		return ErrNoWorktime
	}
	return s.place(events, domain.Interval{Start: start, End: BookingEnd(start, s.TotalWorktime)})
}

// SelectRange proposes an explicit range, as when dragging across the calendar.
func (s *Selection) SelectRange(events []domain.CalendarEvent, start, end time.Time) error {
	if s.State == StateSubmitting {
		return ErrSubmitInProgress
	}
	if !end.After(start) {
		return ErrInvalidRange
	}
	return s.place(events, domain.Interval{Start: start, End: end})
}

func (s *Selection) place(events []domain.CalendarEvent, interval domain.Interval) error {
	if OverlapsBooked(events, interval) {
		return ErrSelectionOverlaps
	}
	s.Range = &interval
	s.State = StatePending
	s.Succeeded = false
	s.LastError = ""
	return nil
}

// Clear removes the provisional range.
func (s *Selection) Clear() error {
	if s.State == StateSubmitting {
		return ErrSubmitInProgress
	}
	s.Range = nil
	s.State = StateIdle
	return nil
}

// ReadyToSubmit checks the submission preconditions against the current events.
func (s *Selection) ReadyToSubmit(events []domain.CalendarEvent) error {
	switch {
	case s.State == StateSubmitting:
		return ErrSubmitInProgress
	case len(s.ServiceIDs) == 0:
		return invalid(MsgNoServices)
	case s.Range == nil:
		return invalid(MsgNoTime)
	case s.TotalWorktime <= 0 || s.Range.IsEmpty():
		return invalid(MsgNoDuration)
	case OverlapsBooked(events, *s.Range):
		return invalid(MsgOverlap)
	}
	return nil
}

// BeginSubmit moves a pending selection into submitting.
func (s *Selection) BeginSubmit() error {
	if s.State == StateSubmitting {
		return ErrSubmitInProgress
	}
	if s.State != StatePending || s.Range == nil {
		return invalid(MsgNoTime)
	}
	s.State = StateSubmitting
	s.LastError = ""
	return nil
}

// CompleteSubmit resets the selection after a successful booking.
func (s *Selection) CompleteSubmit() {
	s.ServiceIDs = []int64{}
	s.TotalWorktime = 0
	s.Range = nil
	s.State = StateIdle
	s.Succeeded = true
	s.LastError = ""
}

// FailSubmit returns to pending and keeps everything the user selected.
func (s *Selection) FailSubmit(msg string) {
	s.State = StatePending
	s.Succeeded = false
	s.LastError = msg
}

// Events returns base plus the provisional "Selected Time" event, if any.
// base is not modified.
func (s *Selection) Events(base []domain.CalendarEvent) []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, 0, len(base)+1)
	for _, e := range base {
		if e.Kind() == domain.EventSelection {
			continue
		}
		out = append(out, e)
	}
	if s.Range != nil && !s.Range.IsEmpty() {
		out = append(out, domain.NewSelectionEvent(*s.Range))
		SortEvents(out)
	}
	return out
}
