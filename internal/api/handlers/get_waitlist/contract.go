package get_waitlist

import (
	"context"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

type WaitlistService interface {
	ListByEmail(ctx context.Context, email string) ([]domain.WaitlistEntry, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
