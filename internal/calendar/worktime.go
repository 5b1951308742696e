package calendar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
)

// SumWorktime adds up the worktime of services in minutes. Entries with a malformed
// worktime count as zero.
func SumWorktime(services []domain.Service) float64 {
	var total float64
	for _, s := range services {
		minutes, err := s.Worktime.Minutes()
		if err != nil {
			continue
		}
		total += minutes
	}
	return total
}

// FormatDuration renders minutes as "<h>h <m>min". The minutes part is left out when it is zero
// and fractional minutes are truncated.
func FormatDuration(minutes float64) string {
	if minutes < 0 || math.IsNaN(minutes) {
		minutes = 0
	}
	whole := int(math.Floor(minutes))
	h, m := whole/60, whole%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dmin", h, m)
}

// TotalPrice sums service prices. Prices that do not parse as a decimal count as zero.
func TotalPrice(services []domain.Service) float64 {
	var total float64
	for _, s := range services {
		price, err := strconv.ParseFloat(strings.TrimSpace(s.Price), 64)
		if err != nil {
			continue
		}
		total += price
	}
	return total
}

// BookingEnd adds the raw duration to start. No rounding to slot boundaries.
func BookingEnd(start time.Time, minutes float64) time.Time {
	return start.Add(MinutesToDuration(minutes))
}

// MinutesToDuration converts fractional minutes to a duration, rounded to the second.
func MinutesToDuration(minutes float64) time.Duration {
	return time.Duration(math.Round(minutes*60)) * time.Second
}
