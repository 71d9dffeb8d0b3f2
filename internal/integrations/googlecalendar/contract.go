package googlecalendar

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenStore сохраняет обновлённые OAuth токены медика
type TokenStore interface {
	UpdateCalendarToken(ctx context.Context, id uuid.UUID, accessToken, refreshToken string, expiry time.Time) error
}

// MetricsRecorder учёт обращений к внешнему сервису
type MetricsRecorder interface {
	ExternalCall(service, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
