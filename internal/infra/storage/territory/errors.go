package territory

import "errors"

var (
	// ErrTerritoryNotFound возвращается, когда для сектора нет территории
	ErrTerritoryNotFound = errors.New("territory.repository: territory not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("territory.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("territory.repository: failed to scan row")
)
