package get_availability

import (
	"context"
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога ресурсов
type CatalogRepository interface {
	GetFacilityConfig(ctx context.Context) (*domain.FacilityConfig, error)
	ListActiveCourts(ctx context.Context) ([]domain.Court, error)
	ListActiveCoaches(ctx context.Context) ([]domain.Coach, error)
	ListActiveCoachWindows(ctx context.Context, dayOfWeek int) ([]domain.CoachAvailabilityWindow, error)
	ListActiveEquipmentTypes(ctx context.Context) ([]domain.EquipmentType, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CourtReservationsInRange(ctx context.Context, from, to time.Time) ([]domain.CourtReservation, error)
	CoachReservationsInRange(ctx context.Context, from, to time.Time) ([]domain.CoachReservation, error)
	EquipmentReservationsInRange(ctx context.Context, from, to time.Time) ([]domain.EquipmentReservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
