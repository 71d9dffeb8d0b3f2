package check_conflicts

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

	if req.ShiftDate.IsZero() {
		return fmt.Errorf("%w: shift_date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid shift_start_time: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid shift_end_time: %v", ErrInvalidInput, err)
	}

	if req.StartTime == req.EndTime {
		return fmt.Errorf("%w: shift start equals shift end", ErrInvalidInput)
	}

	return nil
}
