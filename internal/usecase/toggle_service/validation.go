package toggle_service

import (
	"fmt"

	"github.com/google/uuid"
)

func validateRequest(req *Request) error {
	if req.DraftID == uuid.Nil {
		return fmt.Errorf("%w: draft id is required", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
	}
	return nil
}
