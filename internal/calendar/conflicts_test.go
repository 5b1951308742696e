package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b [2]string
		want bool
	}{
		{name: "identical", a: [2]string{"08:00", "08:30"}, b: [2]string{"08:00", "08:30"}, want: true},
		{name: "partial", a: [2]string{"11:30", "12:00"}, b: [2]string{"11:20", "11:40"}, want: true},
		{name: "contained", a: [2]string{"08:00", "10:00"}, b: [2]string{"08:30", "09:00"}, want: true},
		{name: "adjacent before", a: [2]string{"11:30", "12:00"}, b: [2]string{"11:00", "11:30"}, want: false},
		{name: "adjacent after", a: [2]string{"11:30", "12:00"}, b: [2]string{"12:00", "12:30"}, want: false},
		{name: "disjoint", a: [2]string{"08:00", "08:30"}, b: [2]string{"10:00", "10:30"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := span(t, tt.a[0], tt.a[1])
			b := span(t, tt.b[0], tt.b[1])

			assert.Equal(t, tt.want, Overlaps(a, b))
			assert.Equal(t, Overlaps(a, b), Overlaps(b, a))
		})
	}
}

func TestFilterSlots(t *testing.T) {
	t.Run("booking removes its slot", func(t *testing.T) {
		slots := GenerateSlots(span(t, "08:00", "09:00"), domain.DefaultSlotDuration)
		got := FilterSlots(slots, []domain.Interval{span(t, "08:00", "08:30")})

		requireSameIntervals(t, []domain.Interval{span(t, "08:30", "09:00")}, got)
	})

	t.Run("small overlap removes the whole slot", func(t *testing.T) {
		slots := GenerateSlots(span(t, "08:00", "10:00"), domain.DefaultSlotDuration)
		got := FilterSlots(slots, []domain.Interval{span(t, "08:50", "09:05")})

		requireSameIntervals(t, []domain.Interval{
			span(t, "08:00", "08:30"),
			span(t, "09:30", "10:00"),
		}, got)
	})

	t.Run("never emits an overlapping slot", func(t *testing.T) {
		slots := GenerateSlots(span(t, "08:00", "18:00"), domain.DefaultSlotDuration)
		occupied := []domain.Interval{
			span(t, "08:10", "08:20"),
			span(t, "09:00", "10:15"),
			span(t, "12:00", "12:30"),
			span(t, "17:45", "19:00"),
		}

		for _, s := range FilterSlots(slots, occupied) {
			for _, o := range occupied {
				assert.False(t, Overlaps(s, o), "slot %s overlaps %s", s.Start, o.Start)
			}
		}
	})

	t.Run("no occupied intervals", func(t *testing.T) {
		slots := GenerateSlots(span(t, "08:00", "09:00"), domain.DefaultSlotDuration)
		assert.Len(t, FilterSlots(slots, nil), 2)
	})
}

func TestOverlapsBooked(t *testing.T) {
	events := []domain.CalendarEvent{
		domain.NewAvailableEvent(span(t, "08:00", "08:30")),
		domain.NewForeignBookingEvent(7, span(t, "10:00", "10:30")),
		domain.NewOwnBookingEvent(8, span(t, "09:00", "09:30")),
	}

	assert.False(t, OverlapsBooked(events, span(t, "08:00", "08:45")))
	assert.True(t, OverlapsBooked(events, span(t, "08:30", "09:15")))
	assert.True(t, OverlapsBooked(events, span(t, "10:15", "11:00")))
	assert.False(t, OverlapsBooked(events, span(t, "09:30", "10:00")))
}
