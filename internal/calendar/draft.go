package calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

// Draft is one user's calendar session: the last fetched snapshot and the selection made on it.
type Draft struct {
	ID        uuid.UUID              `json:"id"`
	Owner     string                 `json:"owner,omitempty"`
	Catalog   []domain.Service       `json:"catalog"`
	Events    []domain.CalendarEvent `json:"events"`
	Selection Selection              `json:"selection"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// NewDraft returns an empty draft with a fresh id.
func NewDraft(owner string, now time.Time) *Draft {
	return &Draft{
		ID:        uuid.New(),
		Owner:     owner,
		Catalog:   []domain.Service{},
		Events:    []domain.CalendarEvent{},
		Selection: NewSelection(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OwnedBy reports whether owner may use the draft. Drafts created with an opaque token have
// no owner and are reachable by id alone.
func (d *Draft) OwnedBy(owner string) bool {
	return d.Owner == "" || d.Owner == owner
}

// ApplySnapshot replaces the catalog and events with a new fetch result.
// Unknown services are dropped from the selection and a range that now overlaps a booking is cleared.
// A submission left unfinished is settled against the snapshot: an own booking covering the range
// completes it, otherwise the selection returns to pending.
// It reports whether the range was cleared.
func (d *Draft) ApplySnapshot(catalog []domain.Service, events []domain.CalendarEvent, now time.Time) bool {
	d.Catalog = catalog
	d.Events = events
	d.UpdatedAt = now

	if d.Selection.State == StateSubmitting {
		switch {
		case d.Selection.Range == nil:
			d.Selection.State = StateIdle
		case CoveredByOwnBooking(events, *d.Selection.Range):
			d.Selection.CompleteSubmit()
			return false
		default:
			d.Selection.FailSubmit(MsgSubmitFailed)
		}
	}

	d.Selection.Reconcile(catalog)
	if d.Selection.Range == nil {
		return false
	}
	if OverlapsBooked(events, *d.Selection.Range) {
		d.Selection.Range = nil
		d.Selection.State = StateIdle
		return true
	}
	return false
}

// View is the draft as the calendar widget renders it.
type View struct {
	DraftID              string                 `json:"draftId"`
	State                State                  `json:"state"`
	Succeeded            bool                   `json:"succeeded"`
	LastError            string                 `json:"lastError,omitempty"`
	SelectedServiceIDs   []int64                `json:"selectedServiceIds"`
	TotalWorktimeMinutes float64                `json:"totalWorktimeMinutes"`
	TotalDuration        string                 `json:"totalDuration"`
	TotalPrice           float64                `json:"totalPrice"`
	Selection            *domain.Interval       `json:"selection,omitempty"`
	Services             []domain.Service       `json:"services"`
	Events               []domain.CalendarEvent `json:"events"`
}

// View builds the widget representation, including the provisional event.
func (d *Draft) View() View {
	selected := d.Selection.SelectedServices(d.Catalog)

	ids := make([]int64, len(d.Selection.ServiceIDs))
	copy(ids, d.Selection.ServiceIDs)

	return View{
		DraftID:              d.ID.String(),
		State:                d.Selection.State,
		Succeeded:            d.Selection.Succeeded,
		LastError:            d.Selection.LastError,
		SelectedServiceIDs:   ids,
		TotalWorktimeMinutes: d.Selection.TotalWorktime,
		TotalDuration:        FormatDuration(d.Selection.TotalWorktime),
		TotalPrice:           TotalPrice(selected),
		Selection:            d.Selection.Range,
		Services:             d.Catalog,
		Events:               d.Selection.Events(d.Events),
	}
}
