package catalog

import "errors"

var (
	// ErrConfigNotFound возвращается, когда конфигурация площадки отсутствует
	ErrConfigNotFound = errors.New("catalog.repository: facility config not found")

	// ErrCourtNotFound возвращается, когда корт не найден или неактивен
	ErrCourtNotFound = errors.New("catalog.repository: court not found")

	// ErrCoachNotFound возвращается, когда тренер не найден или неактивен
	ErrCoachNotFound = errors.New("catalog.repository: coach not found")

	// ErrEquipmentTypeNotFound возвращается, когда тип инвентаря не найден или неактивен
	ErrEquipmentTypeNotFound = errors.New("catalog.repository: equipment type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
