package assign_medic

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is required", ErrInvalidInput)
	}

	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: booking_id is required", ErrInvalidInput)
	}

	if req.MedicID == uuid.Nil {
		return fmt.Errorf("%w: medic_id is required", ErrInvalidInput)
	}

	if req.ExpectedVersion != nil && *req.ExpectedVersion < 0 {
		return fmt.Errorf("%w: version must be non-negative", ErrInvalidInput)
	}

	return nil
}
