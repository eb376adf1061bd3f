package get_bookings

import (
	"context"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

type BookingsService interface {
	ListByEmail(ctx context.Context, email string) ([]domain.BookingWithResources, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
