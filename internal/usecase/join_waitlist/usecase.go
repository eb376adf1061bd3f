package join_waitlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// UseCase use case вступления в лист ожидания
type UseCase struct {
	waitlistRepo WaitlistRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(waitlistRepo WaitlistRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		waitlistRepo: waitlistRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case вступления в лист ожидания. Позиция
// выдаётся в транзакции под блокировкой очереди: счётчик позиций
// пер-сигнатурный, не глобальный.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("JoinWaitlist: start=%s, end=%s, wantsCoach=%t",
		req.StartAt.Format(domain.TimeFormat), req.EndAt.Format(domain.TimeFormat), req.WantsCoach)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("JoinWaitlist: validation failed: %v", err)
		return nil, err
	}

	queueKey := domain.BuildQueueKey(req.StartAt, req.EndAt, req.PreferredSurface, req.WantsCoach)

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		lastPosition, err := uc.waitlistRepo.LastPosition(txCtx, queueKey)
		if err != nil {
			uc.logger.Error("JoinWaitlist: failed to get last position for key=%s: %v", queueKey, err)
			return fmt.Errorf("%w: failed to get last position: %v", ErrInternal, err)
		}

		entry := &domain.WaitlistEntry{
			CustomerName:     req.CustomerName,
			CustomerEmail:    req.CustomerEmail,
			StartAt:          req.StartAt,
			EndAt:            req.EndAt,
			PreferredSurface: req.PreferredSurface,
			WantsCoach:       req.WantsCoach,
			QueueKey:         queueKey,
			Status:           domain.WaitlistQueued,
			Position:         lastPosition + 1,
		}

		created, err := uc.waitlistRepo.Create(txCtx, entry)
		if err != nil {
			uc.logger.Error("JoinWaitlist: failed to create entry: %v", err)
			return fmt.Errorf("%w: failed to create entry: %v", ErrInternal, err)
		}

		result = &Response{
			EntryID:   created.ID,
			QueueKey:  created.QueueKey,
			Position:  created.Position,
			Status:    string(created.Status),
			CreatedAt: created.CreatedAt,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("JoinWaitlist: entry id=%d, key=%s, position=%d", result.EntryID, result.QueueKey, result.Position)
	return result, nil
}

func validateRequest(req *Request) error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.ToLower(strings.TrimSpace(req.CustomerEmail))

	if req.CustomerName == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}
	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName exceeds %d characters", ErrInvalidInput, domain.MaxCustomerNameLength)
	}
	if req.CustomerEmail == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if !strings.Contains(req.CustomerEmail, "@") {
		return fmt.Errorf("%w: customerEmail is malformed", ErrInvalidInput)
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}
	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}
	if req.PreferredSurface != nil && !req.PreferredSurface.Valid() {
		return fmt.Errorf("%w: preferredSurface must be INDOOR or OUTDOOR", ErrInvalidInput)
	}
	return nil
}
