package draft

import (
	"encoding/json"
	"fmt"

	"github.com/m04kA/SMC-BookingCalendar/internal/calendar"
)

func encode(d *calendar.Draft) ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("%w: encode draft id=%s: %v", ErrCodec, d.ID, err)
	}
	return raw, nil
}

func decode(raw []byte) (*calendar.Draft, error) {
	var d calendar.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: decode draft: %v", ErrCodec, err)
	}
	return &d, nil
}
