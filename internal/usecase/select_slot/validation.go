package select_slot

import (
	"fmt"

	"github.com/google/uuid"
)

func validateRequest(req *Request) error {
	if req.DraftID == uuid.Nil {
		return fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}
	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}
	if req.End != nil && !req.End.After(req.Start) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}
	return nil
}
