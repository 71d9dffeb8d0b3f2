package assignmentapi

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

var (
	// ErrServiceUnavailable возвращается при сетевой ошибке или 5xx от сервиса назначений.
	// Вызывающая сторона может перейти в деградированный режим.
	ErrServiceUnavailable = errors.New("assignmentapi client: service unavailable")

	// ErrNotFound возвращается, когда бронирование или медик не найдены
	ErrNotFound = errors.New("assignmentapi client: not found")

	// ErrConflict возвращается, когда назначение отклонено (конфликты, версия, статус)
	ErrConflict = errors.New("assignmentapi client: conflict")

	// ErrBadRequest возвращается при отклонённых входных данных
	ErrBadRequest = errors.New("assignmentapi client: bad request")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("assignmentapi client: invalid response")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("assignmentapi client: internal error")
)

// RejectedError ответ 409 с сообщением сервера и, если есть, отчётом о конфликтах
type RejectedError struct {
	Message string
	Report  *domain.ConflictReport
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrConflict, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return ErrConflict
}
