package load_calendar

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	draftRepo "github.com/m04kA/SMC-BookingCalendar/internal/infra/storage/draft"
	"github.com/m04kA/SMC-BookingCalendar/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-BookingCalendar/pkg/logger"
)

type fakeClient struct {
	windows  []domain.AvailabilityWindow
	all      []domain.Booking
	mine     []domain.Booking
	services []domain.Service
	err      error
}

func (c *fakeClient) ListAvailability(context.Context) ([]domain.AvailabilityWindow, error) {
	return c.windows, nil
}

func (c *fakeClient) ListAllBookings(context.Context) ([]domain.Booking, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.all, nil
}

func (c *fakeClient) ListMyBookings(context.Context) ([]domain.Booking, error) {
	return c.mine, nil
}

func (c *fakeClient) ListServices(context.Context) ([]domain.Service, error) {
	return c.services, nil
}

type fakeMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *fakeMetrics) ObserveEvents(kind string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[kind] = count
}

func newFixture() *fakeClient {
	own := domain.Booking{ID: 6, DateTime: "2025-01-06T09:00:00Z", EndTime: "2025-01-06T09:30:00Z"}
	return &fakeClient{
		windows: []domain.AvailabilityWindow{
			{ID: 1, Date: "2025-01-06", StartTime: "08:00:00", EndTime: "10:00:00"},
			{ID: 2, Date: "2025-01-06", StartTime: "bogus", EndTime: "10:00:00"},
		},
		all: []domain.Booking{
			{ID: 5, DateTime: "2025-01-06T08:30:00Z", EndTime: "2025-01-06T09:00:00Z"},
			own,
		},
		mine: []domain.Booking{own},
		services: []domain.Service{
			{ID: 1, Name: "Haircut", Worktime: "00:30:00", Price: "20.00"},
			{ID: 2, Name: "Broken", Worktime: "half an hour", Price: "1.00"},
		},
	}
}

func newTestUseCase(t *testing.T, client *fakeClient, repo DraftRepository, m Metrics) *UseCase {
	t.Helper()
	loc, err := time.LoadLocation(domain.DefaultTimeZone)
	require.NoError(t, err)
	return NewUseCase(client, repo, m, loc, domain.DefaultSlotDuration, logger.NewNop())
}

func kinds(events []domain.CalendarEvent) []domain.EventKind {
	out := make([]domain.EventKind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind())
	}
	return out
}

func TestExecute_NewDraft(t *testing.T) {
	repo := draftRepo.NewMemoryRepository(time.Hour)
	m := &fakeMetrics{}
	uc := newTestUseCase(t, newFixture(), repo, m)

	resp, err := uc.Execute(context.Background(), &Request{Owner: "42"})
	require.NoError(t, err)

	// one malformed service and one malformed window
	assert.Equal(t, 2, resp.Skipped)
	assert.False(t, resp.SelectionDropped)
	assert.Equal(t, calendar.StateIdle, resp.View.State)
	require.Len(t, resp.View.Services, 1)
	assert.Equal(t, int64(1), resp.View.Services[0].ID)

	assert.Equal(t, []domain.EventKind{
		domain.EventAvailable,
		domain.EventForeignBooking,
		domain.EventOwnBooking,
		domain.EventAvailable,
	}, kinds(resp.View.Events))

	assert.Equal(t, map[string]int{
		string(domain.EventAvailable):      2,
		string(domain.EventForeignBooking): 1,
		string(domain.EventOwnBooking):     1,
	}, m.counts)

	stored, err := repo.Get(context.Background(), uuid.MustParse(resp.View.DraftID))
	require.NoError(t, err)
	assert.Equal(t, "42", stored.Owner)
	assert.Len(t, stored.Events, 4)
}

func TestExecute_UpstreamFailureKeepsDraft(t *testing.T) {
	repo := draftRepo.NewMemoryRepository(time.Hour)
	client := newFixture()
	uc := newTestUseCase(t, client, repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{Owner: "42"})
	require.NoError(t, err)
	id := uuid.MustParse(resp.View.DraftID)

	client.err = bookingapi.ErrInvalidResponse
	client.all = nil
	_, err = uc.Execute(context.Background(), &Request{DraftID: id, Owner: "42"})
	assert.ErrorIs(t, err, ErrUpstream)

	stored, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, stored.Events, 4)
}

func TestExecute_SessionExpired(t *testing.T) {
	client := newFixture()
	client.err = bookingapi.ErrSessionExpired
	uc := newTestUseCase(t, client, draftRepo.NewMemoryRepository(time.Hour), nil)

	_, err := uc.Execute(context.Background(), &Request{Owner: "42"})
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestExecute_RefreshErrors(t *testing.T) {
	repo := draftRepo.NewMemoryRepository(time.Hour)
	uc := newTestUseCase(t, newFixture(), repo, nil)

	_, err := uc.Execute(context.Background(), &Request{DraftID: uuid.New(), Owner: "42"})
	assert.ErrorIs(t, err, ErrDraftNotFound)

	resp, err := uc.Execute(context.Background(), &Request{Owner: "42"})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{DraftID: uuid.MustParse(resp.View.DraftID), Owner: "7"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_RefreshDropsOverlappingSelection(t *testing.T) {
	repo := draftRepo.NewMemoryRepository(time.Hour)
	client := newFixture()
	uc := newTestUseCase(t, client, repo, nil)
	ctx := context.Background()

	resp, err := uc.Execute(ctx, &Request{Owner: "42"})
	require.NoError(t, err)
	id := uuid.MustParse(resp.View.DraftID)

	d, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NoError(t, d.Selection.Toggle(d.Catalog, 1))
	start := time.Date(2025, 1, 6, 9, 30, 0, 0, time.UTC)
	require.NoError(t, d.Selection.SelectSlot(d.Events, start))
	require.NoError(t, repo.Save(ctx, d))

	// someone else books the selected slot in the meantime
	client.all = append(client.all, domain.Booking{ID: 7, DateTime: "2025-01-06T09:30:00Z", EndTime: "2025-01-06T10:00:00Z"})

	resp, err = uc.Execute(ctx, &Request{DraftID: id, Owner: "42"})
	require.NoError(t, err)

	assert.True(t, resp.SelectionDropped)
	assert.Nil(t, resp.View.Selection)
	assert.Equal(t, calendar.StateIdle, resp.View.State)
	assert.Equal(t, []int64{1}, resp.View.SelectedServiceIDs)
	assert.Empty(t, eventsWithKind(resp.View.Events, domain.EventSelection))
}

func TestExecute_SaveFailure(t *testing.T) {
	uc := newTestUseCase(t, newFixture(), failingRepo{}, nil)

	_, err := uc.Execute(context.Background(), &Request{Owner: "42"})
	assert.ErrorIs(t, err, ErrInternal)
}

type failingRepo struct{}

func (failingRepo) Get(context.Context, uuid.UUID) (*calendar.Draft, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) Save(context.Context, *calendar.Draft) error {
	return errors.New("connection refused")
}

func eventsWithKind(events []domain.CalendarEvent, kind domain.EventKind) []domain.CalendarEvent {
	var out []domain.CalendarEvent
	for _, e := range events {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}
