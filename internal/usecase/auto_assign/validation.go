package auto_assign

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil || req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: booking_id is required", ErrInvalidInput)
	}
	return nil
}
