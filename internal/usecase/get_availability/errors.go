package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректной дате
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrConfigMissing возвращается, когда конфигурация площадки
	// отсутствует. Операционная ошибка, не дефект запроса.
	ErrConfigMissing = errors.New("get_availability: facility config missing")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
