package create_booking

import (
	"context"
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога ресурсов
type CatalogRepository interface {
	GetActiveCourt(ctx context.Context, id int64) (*domain.Court, error)
	GetActiveCoach(ctx context.Context, id int64) (*domain.Coach, error)
	GetActiveEquipmentTypes(ctx context.Context, ids []int64) ([]domain.EquipmentType, error)
	ListActivePricingRules(ctx context.Context) ([]domain.PricingRule, error)
	LockEquipmentType(ctx context.Context, id int64) (*domain.EquipmentType, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ReserveCourt(ctx context.Context, bookingID, courtID int64, startAt, endAt time.Time) error
	ReserveCoach(ctx context.Context, bookingID, coachID int64, startAt, endAt time.Time) error
	ReserveEquipment(ctx context.Context, bookingID, equipmentTypeID int64, quantity int, startAt, endAt time.Time) error
	SumEquipmentReserved(ctx context.Context, equipmentTypeID int64, from, to time.Time) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
