package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/m04kA/SMC-AssignmentService/pkg/metrics"
)

const defaultPoolStatsInterval = 15 * time.Second

// DBExecutor общий интерфейс для *sql.DB, *sql.Tx и обёрток из этого пакета
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor транзакция, через которую репозитории выполняют запросы
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// QueryRecorder принимает длительность запросов. *metrics.Metrics его реализует.
type QueryRecorder interface {
	ObserveQuery(operation string, err error, elapsed time.Duration)
}

// DB обёртка над *sql.DB, которая пишет длительность запросов в метрики.
// recorder может быть nil - тогда обёртка работает как обычный *sql.DB.
type DB struct {
	db       *sql.DB
	recorder QueryRecorder
}

// Wrap оборачивает соединение без фонового сбора статистики пула
func Wrap(db *sql.DB, recorder QueryRecorder) *DB {
	return &DB{db: db, recorder: recorder}
}

// WrapWithDefault оборачивает соединение и запускает сбор статистики пула,
// пока не будет закрыт stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m)
	go collectPoolStats(db, m, dbName, defaultPoolStatsInterval, stopCh)
	return wrapped
}

func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe("exec", err, start)
	return res, err
}

func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe("query", err, start)
	return rows, err
}

func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := d.db.QueryRowContext(ctx, query, args...)
	d.observe("query_row", row.Err(), start)
	return row
}

// BeginTx начинает транзакцию; запросы внутри неё тоже попадают в метрики
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	start := time.Now()
	tx, err := d.db.BeginTx(ctx, opts)
	d.observe("begin", err, start)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, recorder: d.recorder}, nil
}

// PingContext проверяет соединение
func (d *DB) PingContext(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

func (d *DB) observe(operation string, err error, start time.Time) {
	if d.recorder == nil {
		return
	}
	d.recorder.ObserveQuery(operation, err, time.Since(start))
}

// Tx транзакция с метриками
type Tx struct {
	tx       *sql.Tx
	recorder QueryRecorder
}

func (t *Tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	res, err := t.tx.ExecContext(ctx, query, args...)
	t.observe("tx_exec", err, start)
	return res, err
}

func (t *Tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.tx.QueryContext(ctx, query, args...)
	t.observe("tx_query", err, start)
	return rows, err
}

func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := t.tx.QueryRowContext(ctx, query, args...)
	t.observe("tx_query_row", row.Err(), start)
	return row
}

func (t *Tx) Commit() error {
	start := time.Now()
	err := t.tx.Commit()
	t.observe("commit", err, start)
	return err
}

func (t *Tx) Rollback() error {
	return t.tx.Rollback()
}

func (t *Tx) observe(operation string, err error, start time.Time) {
	if t.recorder == nil {
		return
	}
	t.recorder.ObserveQuery(operation, err, time.Since(start))
}

// collectPoolStats периодически выгружает sql.DBStats в gauge-метрики
func collectPoolStats(db *sql.DB, m *metrics.Metrics, dbName string, interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			stats := db.Stats()
			m.DBOpenConnections.WithLabelValues(dbName).Set(float64(stats.OpenConnections))
			m.DBInUseConnections.WithLabelValues(dbName).Set(float64(stats.InUse))
			m.DBIdleConnections.WithLabelValues(dbName).Set(float64(stats.Idle))
			m.DBWaitCount.WithLabelValues(dbName).Set(float64(stats.WaitCount))
		}
	}
}
