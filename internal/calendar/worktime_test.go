package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

func TestSumWorktime(t *testing.T) {
	catalog := testCatalog()

	assert.Equal(t, 0.0, SumWorktime(nil))
	assert.Equal(t, 0.0, SumWorktime([]domain.Service{}))
	assert.Equal(t, 135.0, SumWorktime(catalog[:2]))
	assert.Equal(t, SumWorktime([]domain.Service{catalog[0], catalog[1]}), SumWorktime([]domain.Service{catalog[1], catalog[0]}))

	malformed := append([]domain.Service{{ID: 9, Worktime: "90 minutes"}}, catalog[:2]...)
	assert.Equal(t, 135.0, SumWorktime(malformed))
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{minutes: 135, want: "2h 15min"},
		{minutes: 120, want: "2h"},
		{minutes: 45, want: "0h 45min"},
		{minutes: 0, want: "0h"},
		{minutes: 90.5, want: "1h 30min"},
		{minutes: -5, want: "0h"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDuration(tt.minutes))
		})
	}
}

func TestTotalPrice(t *testing.T) {
	catalog := testCatalog()

	assert.InDelta(t, 55.5, TotalPrice(catalog), 1e-9)
	assert.Equal(t, 0.0, TotalPrice(nil))
	assert.InDelta(t, 40.0, TotalPrice([]domain.Service{catalog[0], {ID: 8, Price: "n/a"}}), 1e-9)
}

func TestBookingEnd(t *testing.T) {
	start := at(t, "08:30")

	assert.True(t, at(t, "09:15").Equal(BookingEnd(start, 45)))
	assert.True(t, start.Add(30*time.Second).Equal(BookingEnd(start, 0.5)))
	assert.True(t, start.Equal(BookingEnd(start, 0)))
}
