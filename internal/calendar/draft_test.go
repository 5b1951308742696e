package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

func TestDraftApplySnapshot(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	catalog := testCatalog()

	t.Run("keeps a selection that is still free", func(t *testing.T) {
		d := NewDraft("alice", now)
		require.NoError(t, d.Selection.Toggle(catalog, 2))
		require.NoError(t, d.Selection.SelectSlot(nil, at(t, "08:00")))

		cleared := d.ApplySnapshot(catalog, []domain.CalendarEvent{
			domain.NewForeignBookingEvent(1, span(t, "09:00", "09:30")),
		}, now.Add(time.Minute))

		assert.False(t, cleared)
		require.NotNil(t, d.Selection.Range)
		assert.Equal(t, StatePending, d.Selection.State)
		assert.Equal(t, now.Add(time.Minute), d.UpdatedAt)
	})

	t.Run("drops a selection that now overlaps a booking", func(t *testing.T) {
		d := NewDraft("alice", now)
		require.NoError(t, d.Selection.Toggle(catalog, 2))
		require.NoError(t, d.Selection.SelectSlot(nil, at(t, "08:00")))

		cleared := d.ApplySnapshot(catalog, []domain.CalendarEvent{
			domain.NewForeignBookingEvent(1, span(t, "08:30", "09:00")),
		}, now)

		assert.True(t, cleared)
		assert.Nil(t, d.Selection.Range)
		assert.Equal(t, StateIdle, d.Selection.State)
		assert.Equal(t, []int64{2}, d.Selection.ServiceIDs)
	})

	t.Run("completes an unfinished submission the snapshot shows as booked", func(t *testing.T) {
		d := NewDraft("alice", now)
		require.NoError(t, d.Selection.Toggle(catalog, 2))
		require.NoError(t, d.Selection.SelectSlot(nil, at(t, "08:00")))
		require.NoError(t, d.Selection.BeginSubmit())

		cleared := d.ApplySnapshot(catalog, []domain.CalendarEvent{
			domain.NewOwnBookingEvent(9, span(t, "08:00", "08:45")),
		}, now)

		assert.False(t, cleared)
		assert.Equal(t, StateIdle, d.Selection.State)
		assert.True(t, d.Selection.Succeeded)
		assert.Nil(t, d.Selection.Range)
		assert.Empty(t, d.Selection.ServiceIDs)
		assert.NoError(t, d.Selection.Toggle(catalog, 1))
	})

	t.Run("returns an unfinished submission to pending", func(t *testing.T) {
		d := NewDraft("alice", now)
		require.NoError(t, d.Selection.Toggle(catalog, 2))
		require.NoError(t, d.Selection.SelectSlot(nil, at(t, "08:00")))
		require.NoError(t, d.Selection.BeginSubmit())

		cleared := d.ApplySnapshot(catalog, []domain.CalendarEvent{
			domain.NewAvailableEvent(span(t, "08:00", "08:30")),
		}, now)

		assert.False(t, cleared)
		assert.Equal(t, StatePending, d.Selection.State)
		assert.Equal(t, MsgSubmitFailed, d.Selection.LastError)
		require.NotNil(t, d.Selection.Range)
		assert.NoError(t, d.Selection.ReadyToSubmit(d.Events))
		assert.NoError(t, d.Selection.Clear())
	})

	t.Run("removes services missing from the new catalog", func(t *testing.T) {
		d := NewDraft("alice", now)
		require.NoError(t, d.Selection.Toggle(catalog, 1))
		require.NoError(t, d.Selection.Toggle(catalog, 2))

		d.ApplySnapshot(catalog[1:], nil, now)

		assert.Equal(t, []int64{2}, d.Selection.ServiceIDs)
		assert.Equal(t, 45.0, d.Selection.TotalWorktime)
	})
}

func TestDraftView(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	catalog := testCatalog()
	d := NewDraft("alice", now)
	d.ApplySnapshot(catalog, []domain.CalendarEvent{
		domain.NewAvailableEvent(span(t, "08:00", "08:30")),
	}, now)
	require.NoError(t, d.Selection.Toggle(catalog, 1))
	require.NoError(t, d.Selection.Toggle(catalog, 2))
	require.NoError(t, d.Selection.SelectSlot(d.Events, at(t, "08:00")))

	view := d.View()

	assert.Equal(t, d.ID.String(), view.DraftID)
	assert.Equal(t, StatePending, view.State)
	assert.Equal(t, []int64{1, 2}, view.SelectedServiceIDs)
	assert.Equal(t, 135.0, view.TotalWorktimeMinutes)
	assert.Equal(t, "2h 15min", view.TotalDuration)
	assert.InDelta(t, 55.5, view.TotalPrice, 1e-9)
	require.NotNil(t, view.Selection)
	assert.Len(t, view.Events, 2)
	assert.Equal(t, 1, countSelected(view.Events))
	assert.Len(t, d.Events, 1)
}

func TestDraftJSONRoundTrip(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	catalog := testCatalog()
	d := NewDraft("alice", now)
	d.ApplySnapshot(catalog, []domain.CalendarEvent{
		domain.NewAvailableEvent(span(t, "08:00", "08:30")),
		domain.NewOwnBookingEvent(4, span(t, "09:00", "09:30")),
	}, now)
	require.NoError(t, d.Selection.Toggle(catalog, 2))
	require.NoError(t, d.Selection.SelectSlot(d.Events, at(t, "08:00")))

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var restored Draft
	require.NoError(t, json.Unmarshal(raw, &restored))

	assert.Equal(t, d.ID, restored.ID)
	assert.Equal(t, d.Owner, restored.Owner)
	assert.Equal(t, d.Catalog, restored.Catalog)
	assert.Equal(t, d.Selection.ServiceIDs, restored.Selection.ServiceIDs)
	assert.Equal(t, d.Selection.State, restored.Selection.State)
	require.Len(t, restored.Events, 2)
	assert.Equal(t, domain.EventOwnBooking, restored.Events[1].Kind())
	assert.True(t, d.Selection.Range.Start.Equal(restored.Selection.Range.Start))
}

func TestDraftOwnedBy(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)

	owned := NewDraft("alice", now)
	assert.True(t, owned.OwnedBy("alice"))
	assert.False(t, owned.OwnedBy("bob"))
	assert.False(t, owned.OwnedBy(""))

	anonymous := NewDraft("", now)
	assert.True(t, anonymous.OwnedBy(""))
	assert.True(t, anonymous.OwnedBy("bob"))
}
