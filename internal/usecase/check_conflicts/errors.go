package check_conflicts

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("check_conflicts: booking not found")

	// ErrMedicNotFound возвращается, когда медик не найден
	ErrMedicNotFound = errors.New("check_conflicts: medic not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_conflicts: invalid input data")

	// ErrInternal возвращается, если не удалось получить данные для обязательной проверки
	ErrInternal = errors.New("check_conflicts: internal error")
)
