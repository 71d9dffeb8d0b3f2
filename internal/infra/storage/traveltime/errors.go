package traveltime

import "errors"

var (
	// ErrCacheMiss возвращается, когда в кеше нет актуальной записи
	ErrCacheMiss = errors.New("traveltime.repository: cache miss")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("traveltime.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("traveltime.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("traveltime.repository: failed to scan row")
)
