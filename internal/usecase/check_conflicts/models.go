package check_conflicts

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/pkg/types"
)

// Request предлагаемое назначение медика на бронирование
type Request struct {
	BookingID uuid.UUID        // Бронирование под проверкой (исключается из истории медика)
	MedicID   uuid.UUID        // Предлагаемый медик
	ShiftDate time.Time        // Дата смены
	StartTime types.TimeString // Начало смены, "HH:MM"
	EndTime   types.TimeString // Конец смены; не позже начала - смена через полночь

	// Требования к квалификации; nil - берутся из бронирования
	ConfinedSpaceRequired    *bool
	TraumaSpecialistRequired *bool
}
