package select_slot

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingCalendar/internal/domain"
	selectSlot "github.com/m04kA/SMC-BookingCalendar/internal/usecase/select_slot"
)

// SelectSlotRequest is a slot click ({start}) or a drag ({start, end}).
// Times are RFC 3339 or local salon time without offset.
type SelectSlotRequest struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// ToUseCaseRequest parses the times in the salon time zone
func (r *SelectSlotRequest) ToUseCaseRequest(draftID uuid.UUID, owner string, loc *time.Location) (*selectSlot.Request, error) {
	start, err := domain.ParseInstant(r.Start, loc)
	if err != nil {
		return nil, err
	}

	req := &selectSlot.Request{
		DraftID: draftID,
		Owner:   owner,
		Start:   start,
	}
	if r.End != nil {
		end, err := domain.ParseInstant(*r.End, loc)
		if err != nil {
			return nil, err
		}
		req.End = &end
	}
	return req, nil
}
