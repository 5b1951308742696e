package toggle_service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	draftRepo "github.com/m04kA/SMC-BookingCalendar/internal/infra/storage/draft"
	"github.com/m04kA/SMC-BookingCalendar/pkg/logger"
)

func seedDraft(t *testing.T, repo DraftRepository, owner string) *calendar.Draft {
	t.Helper()
	now := time.Date(2025, 1, 6, 7, 0, 0, 0, time.UTC)
	d := calendar.NewDraft(owner, now)
	catalog := []domain.Service{
		{ID: 1, Name: "Haircut", Worktime: "01:30:00", Price: "40.00"},
		{ID: 2, Name: "Beard trim", Worktime: "00:45:00", Price: "15.50"},
	}
	events := []domain.CalendarEvent{
		domain.NewAvailableEvent(domain.Interval{Start: now.Add(time.Hour), End: now.Add(90 * time.Minute)}),
	}
	d.ApplySnapshot(catalog, events, now)
	require.NoError(t, repo.Save(context.Background(), d))
	return d
}

func TestExecute_Toggle(t *testing.T) {
	repo := draftRepo.NewMemoryRepository(time.Hour)
	d := seedDraft(t, repo, "42")
	uc := NewUseCase(repo, logger.NewNop())
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{DraftID: d.ID, Owner: "42", ServiceID: 1})
	require.NoError(t, err)
	assert.True(t, resp.Selected)
	assert.Equal(t, 90.0, resp.View.TotalWorktimeMinutes)
	assert.Equal(t, "1h 30min", resp.View.TotalDuration)

	resp, err = uc.Execute(ctx, &Request{DraftID: d.ID, Owner: "42", ServiceID: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, resp.View.SelectedServiceIDs)
	assert.Equal(t, 135.0, resp.View.TotalWorktimeMinutes)
	assert.Equal(t, 55.5, resp.View.TotalPrice)

	resp, err = uc.Execute(ctx, &Request{DraftID: d.ID, Owner: "42", ServiceID: 1})
	require.NoError(t, err)
	assert.False(t, resp.Selected)
	assert.Equal(t, []int64{2}, resp.View.SelectedServiceIDs)
	assert.Equal(t, "0h 45min", resp.View.TotalDuration)

	stored, err := repo.Get(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, stored.Selection.ServiceIDs)
}

func TestExecute_TogglePendingRangeKeepsStart(t *testing.T) {
	repo := draftRepo.NewMemoryRepository(time.Hour)
	d := seedDraft(t, repo, "")
	start := d.Events[0].Start()
	require.NoError(t, d.Selection.Toggle(d.Catalog, 2))
	require.NoError(t, d.Selection.SelectSlot(d.Events, start))
	require.NoError(t, repo.Save(context.Background(), d))

	resp, err := NewUseCase(repo, logger.NewNop()).Execute(context.Background(), &Request{DraftID: d.ID, ServiceID: 1})
	require.NoError(t, err)

	require.NotNil(t, resp.View.Selection)
	assert.True(t, start.Equal(resp.View.Selection.Start))
	assert.True(t, start.Add(135*time.Minute).Equal(resp.View.Selection.End))
}

func TestExecute_ToggleErrors(t *testing.T) {
	repo := draftRepo.NewMemoryRepository(time.Hour)
	d := seedDraft(t, repo, "42")
	uc := NewUseCase(repo, logger.NewNop())

	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{name: "missing draft id", req: &Request{ServiceID: 1}, want: ErrInvalidInput},
		{name: "bad service id", req: &Request{DraftID: d.ID, ServiceID: 0}, want: ErrInvalidInput},
		{name: "unknown draft", req: &Request{DraftID: uuid.New(), Owner: "42", ServiceID: 1}, want: ErrDraftNotFound},
		{name: "foreign draft", req: &Request{DraftID: d.ID, Owner: "7", ServiceID: 1}, want: ErrAccessDenied},
		{name: "unknown service", req: &Request{DraftID: d.ID, Owner: "42", ServiceID: 99}, want: ErrUnknownService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_ToggleWhileSubmitting(t *testing.T) {
	repo := draftRepo.NewMemoryRepository(time.Hour)
	d := seedDraft(t, repo, "42")
	require.NoError(t, d.Selection.Toggle(d.Catalog, 2))
	require.NoError(t, d.Selection.SelectSlot(d.Events, d.Events[0].Start()))
	require.NoError(t, d.Selection.BeginSubmit())
	require.NoError(t, repo.Save(context.Background(), d))

	_, err := NewUseCase(repo, logger.NewNop()).Execute(context.Background(), &Request{DraftID: d.ID, Owner: "42", ServiceID: 1})
	assert.ErrorIs(t, err, ErrSubmitInProgress)
}
