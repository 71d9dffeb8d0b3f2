package check_conflicts

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	checkConflicts "github.com/m04kA/SMC-AssignmentService/internal/usecase/check_conflicts"
	"github.com/m04kA/SMC-AssignmentService/pkg/types"
)

// CheckConflictsRequest HTTP request model
type CheckConflictsRequest struct {
	BookingID                string `json:"booking_id" validate:"required,uuid"`
	MedicID                  string `json:"medic_id" validate:"required,uuid"`
	ShiftDate                string `json:"shift_date" validate:"required"`       // "2026-06-10"
	ShiftStartTime           string `json:"shift_start_time" validate:"required"` // "08:00" или "08:00:00"
	ShiftEndTime             string `json:"shift_end_time" validate:"required"`
	ConfinedSpaceRequired    *bool  `json:"confined_space_required,omitempty"`
	TraumaSpecialistRequired *bool  `json:"trauma_specialist_required,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckConflictsRequest) ToUseCaseRequest() (*checkConflicts.Request, error) {
	bookingID, err := uuid.Parse(r.BookingID)
	if err != nil {
		return nil, fmt.Errorf("booking_id: %w", err)
	}

	medicID, err := uuid.Parse(r.MedicID)
	if err != nil {
		return nil, fmt.Errorf("medic_id: %w", err)
	}

	shiftDate, err := time.Parse(domain.DateFormat, r.ShiftDate)
	if err != nil {
		return nil, fmt.Errorf("shift_date: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.ShiftStartTime)
	if err != nil {
		return nil, fmt.Errorf("shift_start_time: %w", err)
	}

	endTime, err := types.NewTimeStringFromString(r.ShiftEndTime)
	if err != nil {
		return nil, fmt.Errorf("shift_end_time: %w", err)
	}

	return &checkConflicts.Request{
		BookingID:                bookingID,
		MedicID:                  medicID,
		ShiftDate:                shiftDate,
		StartTime:                startTime,
		EndTime:                  endTime,
		ConfinedSpaceRequired:    r.ConfinedSpaceRequired,
		TraumaSpecialistRequired: r.TraumaSpecialistRequired,
	}, nil
}
