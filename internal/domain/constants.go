package domain

import "time"

// Default configuration values
const (
	DefaultSlotDuration = 30 * time.Minute
	DefaultTimeZone     = "Europe/Dublin"
)

// Calendar event titles
const (
	TitleAvailable    = "Available"
	TitleBooked       = "Booked"
	TitleOwnBooking   = "Your Booking"
	TitleSelectedTime = "Selected Time"
)

// SelectionEventID is the reserved id of the provisional selection event.
// Booking ids are positive and available slots carry no id.
const SelectionEventID int64 = -1

// Time format constants
const (
	DateFormat    = "2006-01-02"          // YYYY-MM-DD
	LocalDateTime = "2006-01-02T15:04:05" // date_time without offset, read in the salon time zone
	ShortDateTime = "2006-01-02T15:04"
)
