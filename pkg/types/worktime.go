package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidWorktime is returned when a string does not match HH:MM:SS
var ErrInvalidWorktime = errors.New("invalid worktime format, expected HH:MM:SS")

// Worktime is a service duration as the booking API serializes it ("HH:MM:SS").
type Worktime string

// Minutes converts the worktime to minutes: hours*60 + minutes + seconds/60.
// Malformed input yields ErrInvalidWorktime, never NaN.
func (w Worktime) Minutes() (float64, error) {
	parts := strings.Split(strings.TrimSpace(string(w)), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWorktime, string(w))
	}

	values := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidWorktime, string(w))
		}
		values[i] = v
	}

	// minutes and seconds must stay within a clock position, hours are unbounded
	if values[1] > 59 || values[2] > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWorktime, string(w))
	}

	return float64(values[0])*60 + float64(values[1]) + float64(values[2])/60, nil
}

// Validate checks the format only.
func (w Worktime) Validate() error {
	_, err := w.Minutes()
	return err
}

// String returns the raw representation.
func (w Worktime) String() string {
	return string(w)
}
