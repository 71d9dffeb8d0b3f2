// Package compliance evaluates UK Working Time Regulations against a medic's
// shift history. All checks are pure and never overridable by callers.
package compliance

import (
	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// CheckOvertime суммирует часы смен медика за ISO-неделю предлагаемой смены
// (вместе с ней самой) и сравнивает с недельным лимитом.
// Смена с тем же ID, что и предлагаемая, не учитывается дважды.
func CheckOvertime(history []*domain.Booking, proposed *domain.Booking, rules Rules) OvertimeResult {
	loc := rules.location()
	monday, _ := domain.WeekBounds(proposed.ShiftDate)

	total := proposed.Window(loc).Hours()
	for _, b := range history {
		if b.ID == proposed.ID {
			continue
		}
		if !domain.StatusIn(b.Status, domain.WorkedStatuses) {
			continue
		}
		if !domain.InWeek(b.ShiftDate, monday) {
			continue
		}
		total += b.Window(loc).Hours()
	}

	result := OvertimeResult{
		Compliant:      true,
		WeeklyHours:    total,
		MaxWeeklyHours: rules.MaxWeeklyHours,
		WeekStart:      monday,
	}
	if total > rules.MaxWeeklyHours {
		result.Compliant = false
		result.Violation = ViolationWeeklyHoursExceeded
	}
	return result
}

// CheckRest находит последнюю подтверждённую или завершённую смену,
// закончившуюся не позже начала предлагаемой, и проверяет длительность отдыха.
// Нет предыдущей смены - проверка пройдена.
func CheckRest(history []*domain.Booking, proposed *domain.Booking, rules Rules) RestResult {
	loc := rules.location()
	start := proposed.Window(loc).Start

	result := RestResult{
		Compliant:    true,
		MinRestHours: rules.MinRestHours,
	}

	var previous *domain.Booking
	var previousWindow domain.ShiftWindow
	for _, b := range history {
		if b.ID == proposed.ID {
			continue
		}
		if !domain.StatusIn(b.Status, domain.RestStatuses) {
			continue
		}
		w := b.Window(loc)
		if w.End.After(start) {
			continue
		}
		if previous == nil || w.End.After(previousWindow.End) {
			previous = b
			previousWindow = w
		}
	}

	if previous == nil {
		return result
	}

	result.PreviousShiftID = previous.ID
	result.PreviousEnd = previousWindow.End
	result.RestHours = start.Sub(previousWindow.End).Hours()

	if result.RestHours < rules.MinRestHours {
		result.Compliant = false
		result.Violation = ViolationInsufficientRest
	}
	return result
}
