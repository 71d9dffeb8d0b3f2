package medic

import "errors"

var (
	// ErrMedicNotFound возвращается, когда медик не найден
	ErrMedicNotFound = errors.New("medic.repository: medic not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("medic.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("medic.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("medic.repository: failed to scan row")
)
