package quote_price

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrCourtNotFound возвращается, когда корт не найден или неактивен
	ErrCourtNotFound = errors.New("quote_price: court not found")

	// ErrCoachNotFound возвращается, когда тренер не найден или неактивен
	ErrCoachNotFound = errors.New("quote_price: coach not found")

	// ErrEquipmentTypeNotFound возвращается, когда тип инвентаря не найден или неактивен
	ErrEquipmentTypeNotFound = errors.New("quote_price: equipment type not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
