package compliance

import (
	"time"

	"github.com/google/uuid"
)

// UK Working Time Regulations defaults
const (
	DefaultMaxWeeklyHours = 48.0
	DefaultMinRestHours   = 11.0
)

// Violation тип нарушения трудового законодательства
type Violation string

const (
	ViolationNone                Violation = ""
	ViolationWeeklyHoursExceeded Violation = "weekly_hours_exceeded"
	ViolationInsufficientRest    Violation = "insufficient_rest"
)

// Rules пороги проверок, внедряются из конфигурации
type Rules struct {
	MaxWeeklyHours float64
	MinRestHours   float64
	Location       *time.Location // часовой пояс "настенного" времени смен
}

// DefaultRules правила по умолчанию (48 часов в неделю, 11 часов отдыха, UTC)
func DefaultRules() Rules {
	return Rules{
		MaxWeeklyHours: DefaultMaxWeeklyHours,
		MinRestHours:   DefaultMinRestHours,
		Location:       time.UTC,
	}
}

func (r Rules) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

// OvertimeResult результат проверки недельной нагрузки
type OvertimeResult struct {
	Compliant      bool
	Violation      Violation
	WeeklyHours    float64 // включая предлагаемую смену
	MaxWeeklyHours float64
	WeekStart      time.Time
}

// RestResult результат проверки минимального отдыха
type RestResult struct {
	Compliant       bool
	Violation       Violation
	RestHours       float64
	MinRestHours    float64
	PreviousShiftID uuid.UUID // uuid.Nil, если предыдущей смены нет
	PreviousEnd     time.Time
}
