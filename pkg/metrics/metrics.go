package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор Prometheus-коллекторов сервиса.
// Каждый экземпляр держит собственный registry, поэтому New можно вызывать в тестах многократно.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	AutoAssignOutcomes *prometheus.CounterVec
	ConflictsDetected  *prometheus.CounterVec
	ExternalCalls      *prometheus.CounterVec
}

// New создает и регистрирует все коллекторы
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		AutoAssignOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "auto_assign_outcomes_total",
			Help:        "Auto-assignment decisions by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		ConflictsDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "conflicts_detected_total",
			Help:        "Scheduling conflicts reported by the conflict detector",
			ConstLabels: constLabels,
		}, []string{"type", "severity"}),

		ExternalCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "external_calls_total",
			Help:        "Calls to external collaborators by result",
			ConstLabels: constLabels,
		}, []string{"target", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.AutoAssignOutcomes,
		m.ConflictsDetected,
		m.ExternalCalls,
	)

	return m
}

// Handler HTTP-обработчик для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry отдает registry (для тестов и дополнительных коллекторов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP фиксирует один обработанный HTTP-запрос
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveQuery фиксирует один SQL-запрос
func (m *Metrics) ObserveQuery(operation string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(elapsed.Seconds())
}

// AutoAssignOutcome увеличивает счетчик исходов автоназначения
func (m *Metrics) AutoAssignOutcome(outcome string) {
	m.AutoAssignOutcomes.WithLabelValues(outcome).Inc()
}

// ConflictDetected увеличивает счетчик обнаруженных конфликтов
func (m *Metrics) ConflictDetected(conflictType, severity string) {
	m.ConflictsDetected.WithLabelValues(conflictType, severity).Inc()
}

// ExternalCall фиксирует обращение к внешнему сервису (ok, fallback, unavailable, error)
func (m *Metrics) ExternalCall(service, result string) {
	m.ExternalCalls.WithLabelValues(service, result).Inc()
}
