package notifications

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// Service сервис чтения уведомлений клиента. Доставка наружу (почта,
// мессенджеры) вне зоны ответственности движка: записи только читаются.
type Service struct {
	notificationRepo NotificationRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(notificationRepo NotificationRepository, logger Logger) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// ListByEmail получает последние уведомления клиента, новые первыми,
// не больше domain.NotificationListLimit
func (s *Service) ListByEmail(ctx context.Context, email string) ([]domain.Notification, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	s.logger.Info("ListByEmail: fetching notifications for %s", email)

	notifications, err := s.notificationRepo.ListByEmail(ctx, email, domain.NotificationListLimit)
	if err != nil {
		s.logger.Error("ListByEmail: repository error for %s: %v", email, err)
		return nil, fmt.Errorf("%w: ListByEmail - repository error: %v", ErrInternal, err)
	}

	return notifications, nil
}
