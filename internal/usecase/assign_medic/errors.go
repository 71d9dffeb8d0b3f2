package assign_medic

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("assign_medic: booking not found")

	// ErrMedicNotFound возвращается, когда медик не найден
	ErrMedicNotFound = errors.New("assign_medic: medic not found")

	// ErrBookingNotAssignable возвращается, если статус бронирования не допускает назначение
	ErrBookingNotAssignable = errors.New("assign_medic: booking is not awaiting assignment")

	// ErrBlockingConflicts возвращается при наличии критических конфликтов
	ErrBlockingConflicts = errors.New("assign_medic: critical conflicts block assignment")

	// ErrWarningsNotOverridden возвращается, если есть предупреждения, а override_warnings не передан
	ErrWarningsNotOverridden = errors.New("assign_medic: warnings must be overridden explicitly")

	// ErrMedicUnavailable возвращается, если медика заняли параллельным назначением
	ErrMedicUnavailable = errors.New("assign_medic: medic was booked by a concurrent assignment")

	// ErrConcurrentUpdate возвращается, если бронирование изменилось с момента чтения
	ErrConcurrentUpdate = errors.New("assign_medic: booking changed concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_medic: invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("assign_medic: internal error")
)

// ConflictsError отказ в назначении вместе с отчётом детектора.
// Разворачивается в ErrBlockingConflicts или ErrWarningsNotOverridden.
type ConflictsError struct {
	Reason error
	Report *domain.ConflictReport
}

func (e *ConflictsError) Error() string {
	return fmt.Sprintf("%v: %s", e.Reason, e.Report.Recommendation)
}

func (e *ConflictsError) Unwrap() error {
	return e.Reason
}
