package list_notifications

import (
	"context"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

type NotificationsService interface {
	ListByEmail(ctx context.Context, email string) ([]domain.Notification, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
