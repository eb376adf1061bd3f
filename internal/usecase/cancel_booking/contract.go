package cancel_booking

import (
	"context"
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetReservedCourt(ctx context.Context, bookingID int64) (*domain.ReservedCourt, error)
	Cancel(ctx context.Context, id int64, cancelledAt time.Time) error
	DeleteReservations(ctx context.Context, bookingID int64) error
	CoachReservationsInRange(ctx context.Context, from, to time.Time) ([]domain.CoachReservation, error)
}

// CatalogRepository интерфейс репозитория каталога ресурсов
type CatalogRepository interface {
	ListActiveCoaches(ctx context.Context) ([]domain.Coach, error)
	ListActiveCoachWindows(ctx context.Context, dayOfWeek int) ([]domain.CoachAvailabilityWindow, error)
}

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	ListPromotionCandidates(ctx context.Context, startAt, endAt time.Time, freedSurface domain.CourtSurface) ([]domain.WaitlistEntry, error)
	MarkNotified(ctx context.Context, id int64, notifiedAt time.Time) error
}

// NotificationRepository интерфейс репозитория уведомлений
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
