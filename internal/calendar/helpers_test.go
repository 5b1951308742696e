package calendar

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

const testDay = "2025-01-06"

func dublin(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(domain.DefaultTimeZone)
	require.NoError(t, err)
	return loc
}

func at(t *testing.T, hhmm string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", testDay+" "+hhmm, dublin(t))
	require.NoError(t, err)
	return ts
}

func span(t *testing.T, from, to string) domain.Interval {
	t.Helper()
	return domain.Interval{Start: at(t, from), End: at(t, to)}
}

func requireSameIntervals(t *testing.T, want, got []domain.Interval) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.True(t, want[i].Start.Equal(got[i].Start), "slot %d start: want %s, got %s", i, want[i].Start, got[i].Start)
		require.True(t, want[i].End.Equal(got[i].End), "slot %d end: want %s, got %s", i, want[i].End, got[i].End)
	}
}

func eventsOfKind(events []domain.CalendarEvent, kind domain.EventKind) []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for _, e := range events {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}

func testCatalog() []domain.Service {
	return []domain.Service{
		{ID: 1, Name: "Haircut", Worktime: "01:30:00", Price: "40.00"},
		{ID: 2, Name: "Beard trim", Worktime: "00:45:00", Price: "15.50"},
		{ID: 3, Name: "Consultation", Worktime: "00:00:00", Price: "0"},
	}
}
