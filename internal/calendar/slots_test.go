package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

func TestGenerateSlots(t *testing.T) {
	size := domain.DefaultSlotDuration

	t.Run("one hour window", func(t *testing.T) {
		got := GenerateSlots(span(t, "08:00", "09:00"), size)
		requireSameIntervals(t, []domain.Interval{
			span(t, "08:00", "08:30"),
			span(t, "08:30", "09:00"),
		}, got)
	})

	t.Run("short last slot is dropped", func(t *testing.T) {
		got := GenerateSlots(span(t, "08:00", "09:20"), size)
		requireSameIntervals(t, []domain.Interval{
			span(t, "08:00", "08:30"),
			span(t, "08:30", "09:00"),
		}, got)
	})

	t.Run("window shorter than a slot", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(span(t, "08:00", "08:20"), size))
	})

	t.Run("inverted window", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(span(t, "09:00", "08:00"), size))
	})

	t.Run("non positive size", func(t *testing.T) {
		assert.Empty(t, GenerateSlots(span(t, "08:00", "09:00"), 0))
	})
}

func TestGenerateSlotsCount(t *testing.T) {
	size := 30 * time.Minute
	start := at(t, "08:00")

	for minutes := 0; minutes <= 12*60; minutes += 7 {
		window := domain.Interval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
		slots := GenerateSlots(window, size)

		assert.Len(t, slots, minutes/30, "window of %d minutes", minutes)
		for i, s := range slots {
			assert.Equal(t, size, s.Duration())
			assert.True(t, start.Add(time.Duration(i)*size).Equal(s.Start))
			if i > 0 {
				assert.True(t, slots[i-1].End.Equal(s.Start))
			}
		}
	}
}
