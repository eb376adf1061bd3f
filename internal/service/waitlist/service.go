package waitlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// Service сервис чтения записей листа ожидания клиента
type Service struct {
	waitlistRepo WaitlistRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса листа ожидания
func NewService(waitlistRepo WaitlistRepository, logger Logger) *Service {
	return &Service{
		waitlistRepo: waitlistRepo,
		logger:       logger,
	}
}

// ListByEmail получает записи листа ожидания клиента, новые первыми
func (s *Service) ListByEmail(ctx context.Context, email string) ([]domain.WaitlistEntry, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	s.logger.Info("ListByEmail: fetching waitlist entries for %s", email)

	entries, err := s.waitlistRepo.ListByEmail(ctx, email)
	if err != nil {
		s.logger.Error("ListByEmail: repository error for %s: %v", email, err)
		return nil, fmt.Errorf("%w: ListByEmail - repository error: %v", ErrInternal, err)
	}

	return entries, nil
}
