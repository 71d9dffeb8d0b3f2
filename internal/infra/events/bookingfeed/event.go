package bookingfeed

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// Channel канал NOTIFY, в который пишет триггер bookings_notify_change
const Channel = "booking_changes"

// Event изменение бронирования.
// Resync означает, что часть уведомлений могла потеряться (переподключение) и нужно перечитать всё.
type Event struct {
	Operation         string
	BookingID         uuid.UUID
	ShiftDate         time.Time
	PreviousShiftDate *time.Time // для UPDATE, если дата смены менялась
	Resync            bool
}

// Touches сообщает, затрагивает ли изменение неделю, начинающуюся с monday
func (e Event) Touches(monday time.Time) bool {
	if e.Resync {
		return true
	}
	if domain.InWeek(e.ShiftDate, monday) {
		return true
	}
	return e.PreviousShiftDate != nil && domain.InWeek(*e.PreviousShiftDate, monday)
}

type payload struct {
	Op           string    `json:"op"`
	BookingID    uuid.UUID `json:"booking_id"`
	ShiftDate    string    `json:"shift_date"`
	OldShiftDate *string   `json:"old_shift_date"`
}

// ParsePayload разбирает JSON payload триггера
func ParsePayload(raw string) (Event, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	shiftDate, err := time.Parse(domain.DateFormat, p.ShiftDate)
	if err != nil {
		return Event{}, fmt.Errorf("%w: shift_date: %v", ErrInvalidPayload, err)
	}

	event := Event{
		Operation: p.Op,
		BookingID: p.BookingID,
		ShiftDate: shiftDate,
	}

	if p.OldShiftDate != nil && *p.OldShiftDate != p.ShiftDate {
		prev, err := time.Parse(domain.DateFormat, *p.OldShiftDate)
		if err != nil {
			return Event{}, fmt.Errorf("%w: old_shift_date: %v", ErrInvalidPayload, err)
		}
		event.PreviousShiftDate = &prev
	}

	return event, nil
}
