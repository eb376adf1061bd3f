package bookings

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// Service сервис чтения истории бронирований клиента
type Service struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// ListByEmail получает историю бронирований клиента, новые первыми
func (s *Service) ListByEmail(ctx context.Context, email string) ([]domain.BookingWithResources, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	s.logger.Info("ListByEmail: fetching bookings for %s", email)

	bookings, err := s.bookingRepo.ListByEmail(ctx, email)
	if err != nil {
		s.logger.Error("ListByEmail: repository error for %s: %v", email, err)
		return nil, fmt.Errorf("%w: ListByEmail - repository error: %v", ErrInternal, err)
	}

	return bookings, nil
}
