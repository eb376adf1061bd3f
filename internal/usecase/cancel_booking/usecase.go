package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/booking"
)

// UseCase use case для отмены бронирования
type UseCase struct {
	bookingRepo      BookingRepository
	catalogRepo      CatalogRepository
	waitlistRepo     WaitlistRepository
	notificationRepo NotificationRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	waitlistRepo WaitlistRepository,
	notificationRepo NotificationRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		catalogRepo:      catalogRepo,
		waitlistRepo:     waitlistRepo,
		notificationRepo: notificationRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case отмены бронирования. Снятие статуса,
// удаление строк резервирования и продвижение листа ожидания идут в
// одной транзакции: уведомление не появится без освобождения слота.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking id=%d", req.BookingID)

	if req.BookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now()

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Берём бронирование под блокировкой: конкурентные отмены
		// одного ID сериализуются
		booking, err := uc.bookingRepo.GetByIDForUpdate(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// 2. Повторная отмена — успешный no-op
		if booking.IsCancelled() {
			uc.logger.Info("CancelBooking: booking id=%d already cancelled", req.BookingID)
			result = &Response{Ok: true, AlreadyCancelled: true}
			return nil
		}

		// 3. Запоминаем удерживаемый корт до удаления строк резервирования:
		// продвижение листа ожидания привязано к его поверхности
		reservedCourt, err := uc.bookingRepo.GetReservedCourt(txCtx, booking.ID)
		if err != nil {
			uc.logger.Error("CancelBooking: failed to get reserved court for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to get reserved court: %v", ErrInternal, err)
		}

		// 4. Переводим в cancelled и освобождаем интервалы и инвентарь
		if err := uc.bookingRepo.Cancel(txCtx, booking.ID, now); err != nil {
			uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.DeleteReservations(txCtx, booking.ID); err != nil {
			uc.logger.Error("CancelBooking: failed to delete reservations for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to delete reservations: %v", ErrInternal, err)
		}

		// 5. Если бронирование держало корт, продвигаем лист ожидания
		// на освободившийся интервал
		if reservedCourt != nil {
			if err := uc.promote(txCtx, booking.StartAt, booking.EndAt, reservedCourt.Surface, now); err != nil {
				return err
			}
		}

		result = &Response{Ok: true}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelBooking: booking id=%d cancelled", req.BookingID)
	return result, nil
}
