package catalog

import "errors"

var (
	// ErrConfigMissing возвращается, когда конфигурация площадки отсутствует
	ErrConfigMissing = errors.New("service.catalog: facility config missing")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.catalog: internal error")
)
