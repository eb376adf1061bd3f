package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCourtNotFound возвращается, когда корт не найден или неактивен
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrCoachNotFound возвращается, когда тренер не найден или неактивен
	ErrCoachNotFound = errors.New("create_booking: coach not found")

	// ErrEquipmentTypeNotFound возвращается, когда тип инвентаря не найден или неактивен
	ErrEquipmentTypeNotFound = errors.New("create_booking: equipment type not found")

	// ErrResourceUnavailable возвращается при любом конфликте ресурсов:
	// пересечение интервалов корта/тренера или нехватка инвентаря.
	// Конфликты не ретраятся движком — решение за вызывающим.
	ErrResourceUnavailable = errors.New("create_booking: resource unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
