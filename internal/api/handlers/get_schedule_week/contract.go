package get_schedule_week

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AssignmentService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetWeek(ctx context.Context, date time.Time) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
