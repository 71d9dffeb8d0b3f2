package scheduleboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	"github.com/m04kA/SMC-AssignmentService/internal/infra/events/bookingfeed"
	"github.com/m04kA/SMC-AssignmentService/internal/integrations/assignmentapi"
)

// WeekSource источник недельного расписания
type WeekSource interface {
	GetWeek(ctx context.Context, date time.Time) (*assignmentapi.Week, error)
}

// ConflictChecker удалённый детектор конфликтов
type ConflictChecker interface {
	CheckConflicts(ctx context.Context, check assignmentapi.ConflictCheck) (*domain.ConflictReport, error)
}

// Assigner сохранение ручного назначения
type Assigner interface {
	Assign(ctx context.Context, bookingID, medicID uuid.UUID, overrideWarnings bool, version *int64) (*assignmentapi.Assignment, error)
}

// Backend всё, что доске нужно от сервиса назначений (реализует assignmentapi.Client)
type Backend interface {
	WeekSource
	ConflictChecker
	Assigner
}

// ChangeFeed лента изменений бронирований
type ChangeFeed interface {
	Run(ctx context.Context, handle func(bookingfeed.Event)) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
