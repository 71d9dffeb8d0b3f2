package traveltime

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
)

// Estimator источник оценок времени в пути
type Estimator interface {
	Estimate(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error)
}

// CacheStore персистентный кеш оценок
type CacheStore interface {
	Get(ctx context.Context, origin, destination string, now time.Time) (*domain.TravelEstimate, error)
	Upsert(ctx context.Context, estimate *domain.TravelEstimate, expiresAt time.Time) error
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
