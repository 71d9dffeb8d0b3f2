package traveltime

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-AssignmentService/internal/domain"
	cacheRepo "github.com/m04kA/SMC-AssignmentService/internal/infra/storage/traveltime"
)

const serviceName = "travel_time"

// defaultMemoryEntries предел in-memory кеша, если он не задан
const defaultMemoryEntries = 10000

type memoryEntry struct {
	estimate  domain.TravelEstimate
	expiresAt time.Time
}

// CachedEstimator оценщик с двумя уровнями кеша: in-memory и таблица travel_time_cache.
// Порядок: память -> БД -> удалённый сервис; результат удалённого вызова пишется в оба уровня.
type CachedEstimator struct {
	remote       Estimator
	store        CacheStore
	ttl          time.Duration
	timeProvider TimeProvider
	metrics      MetricsRecorder
	log          Logger

	mu         sync.RWMutex
	entries    map[string]memoryEntry
	maxEntries int
}

// NewCachedEstimator создает оценщик с кешированием.
// ttl <= 0 отключает in-memory уровень, БД-кеш при этом живёт сутки.
func NewCachedEstimator(remote Estimator, store CacheStore, ttl time.Duration, timeProvider TimeProvider, metrics MetricsRecorder, log Logger) *CachedEstimator {
	if timeProvider == nil {
		timeProvider = RealTimeProvider{}
	}
	return &CachedEstimator{
		remote:       remote,
		store:        store,
		ttl:          ttl,
		timeProvider: timeProvider,
		metrics:      metrics,
		log:          log,
		entries:      make(map[string]memoryEntry),
		maxEntries:   defaultMemoryEntries,
	}
}

// WithMaxEntries ограничивает число пар в памяти; n <= 0 оставляет значение по умолчанию
func (e *CachedEstimator) WithMaxEntries(n int) *CachedEstimator {
	if n > 0 {
		e.maxEntries = n
	}
	return e
}

// Estimate возвращает оценку для пары почтовых индексов
func (e *CachedEstimator) Estimate(ctx context.Context, origin, destination string) (*domain.TravelEstimate, error) {
	origin = normalizePostcode(origin)
	destination = normalizePostcode(destination)
	key := origin + "|" + destination
	now := e.timeProvider.Now()

	// 1. In-memory кеш
	if estimate, ok := e.fromMemory(key, now); ok {
		return estimate, nil
	}

	// 2. Персистентный кеш
	if e.store != nil {
		estimate, err := e.store.Get(ctx, origin, destination, now)
		switch {
		case err == nil:
			e.remember(key, *estimate, now)
			e.record("cache_hit")
			return estimate, nil
		case errors.Is(err, cacheRepo.ErrCacheMiss):
		default:
			e.log.Warn("Estimate: travel cache read failed for %s -> %s: %v", origin, destination, err)
		}
	}

	// 3. Удалённый сервис
	estimate, err := e.remote.Estimate(ctx, origin, destination)
	if err != nil {
		e.record("error")
		return nil, err
	}
	e.record("ok")

	e.remember(key, *estimate, now)
	if e.store != nil {
		if err := e.store.Upsert(ctx, estimate, now.Add(e.persistTTL())); err != nil {
			e.log.Warn("Estimate: travel cache write failed for %s -> %s: %v", origin, destination, err)
		}
	}

	return estimate, nil
}

func (e *CachedEstimator) fromMemory(key string, now time.Time) (*domain.TravelEstimate, bool) {
	if e.ttl <= 0 {
		return nil, false
	}

	e.mu.RLock()
	entry, ok := e.entries[key]
	e.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if now.After(entry.expiresAt) {
		e.mu.Lock()
		delete(e.entries, key)
		e.mu.Unlock()
		return nil, false
	}

	estimate := entry.estimate
	return &estimate, true
}

func (e *CachedEstimator) remember(key string, estimate domain.TravelEstimate, now time.Time) {
	if e.ttl <= 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.entries[key]; !ok && len(e.entries) >= e.maxEntries {
		e.evict(now)
	}
	e.entries[key] = memoryEntry{estimate: estimate, expiresAt: now.Add(e.ttl)}
}

// evict удаляет истёкшие записи, а если места всё равно нет - самую старую.
// Вызывается под e.mu.
func (e *CachedEstimator) evict(now time.Time) {
	var oldestKey string
	var oldest time.Time
	for key, entry := range e.entries {
		if now.After(entry.expiresAt) {
			delete(e.entries, key)
			continue
		}
		if oldestKey == "" || entry.expiresAt.Before(oldest) {
			oldestKey, oldest = key, entry.expiresAt
		}
	}

	if len(e.entries) >= e.maxEntries && oldestKey != "" {
		delete(e.entries, oldestKey)
	}
}

func (e *CachedEstimator) persistTTL() time.Duration {
	if e.ttl > 24*time.Hour {
		return e.ttl
	}
	return 24 * time.Hour
}

func (e *CachedEstimator) record(result string) {
	if e.metrics != nil {
		e.metrics.ExternalCall(serviceName, result)
	}
}

func normalizePostcode(postcode string) string {
	return strings.ToUpper(strings.Join(strings.Fields(postcode), " "))
}
