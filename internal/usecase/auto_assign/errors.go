package auto_assign

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("auto_assign: booking not found")

	// ErrBookingNotAssignable возвращается для бронирований не в статусе pending или уже с медиком
	ErrBookingNotAssignable = errors.New("auto_assign: booking is not awaiting assignment")

	// ErrConcurrentUpdate возвращается, если бронирование изменилось во время подбора
	ErrConcurrentUpdate = errors.New("auto_assign: booking changed concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("auto_assign: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("auto_assign: internal error")
)
