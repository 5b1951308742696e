package draft

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

func sampleDraft(t *testing.T) *calendar.Draft {
	t.Helper()
	now := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	start := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)

	d := calendar.NewDraft("42", now)
	catalog := []domain.Service{{ID: 1, Name: "Haircut", Worktime: "00:45:00", Price: "25.00"}}
	d.ApplySnapshot(catalog, []domain.CalendarEvent{
		domain.NewAvailableEvent(domain.Interval{Start: start, End: start.Add(30 * time.Minute)}),
		domain.NewForeignBookingEvent(7, domain.Interval{Start: start.Add(time.Hour), End: start.Add(90 * time.Minute)}),
	}, now)
	require.NoError(t, d.Selection.Toggle(catalog, 1))
	require.NoError(t, d.Selection.SelectSlot(d.Events, start))
	return d
}

func requireSameDraft(t *testing.T, want, got *calendar.Draft) {
	t.Helper()
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Owner, got.Owner)
	require.Equal(t, want.Catalog, got.Catalog)
	require.Equal(t, want.Selection.ServiceIDs, got.Selection.ServiceIDs)
	require.Equal(t, want.Selection.State, got.Selection.State)
	require.Len(t, got.Events, len(want.Events))
	require.NotNil(t, got.Selection.Range)
	require.True(t, want.Selection.Range.Start.Equal(got.Selection.Range.Start))
}
