package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	catalogRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/catalog"
	"github.com/courtflow/CF-BookingEngine/internal/pricing"
)

// Коды ошибок PostgreSQL, означающие проигранную гонку за ресурс.
// Все три схлопываются в единый ErrResourceUnavailable.
const (
	pqExclusionViolation   = "23P01"
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
)

// UseCase use case для создания бронирования
type UseCase struct {
	catalogRepo CatalogRepository
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования.
// Все проверки и вставки идут в одной сериализуемой транзакции:
// частично видимых бронирований не бывает.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: court=%d, start=%s, end=%s",
		req.CourtID, req.StartAt.Format(domain.TimeFormat), req.EndAt.Format(domain.TimeFormat))

	// 1. Валидация и нормализация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Перечитываем ресурсы внутри транзакции, только активные
		court, err := uc.catalogRepo.GetActiveCourt(txCtx, req.CourtID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrCourtNotFound) {
				uc.logger.Warn("CreateBooking: court id=%d not found", req.CourtID)
				return ErrCourtNotFound
			}
			uc.logger.Error("CreateBooking: failed to get court id=%d: %v", req.CourtID, err)
			return fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
		}

		var coach *domain.Coach
		if req.CoachID != nil {
			coach, err = uc.catalogRepo.GetActiveCoach(txCtx, *req.CoachID)
			if err != nil {
				if errors.Is(err, catalogRepo.ErrCoachNotFound) {
					uc.logger.Warn("CreateBooking: coach id=%d not found", *req.CoachID)
					return ErrCoachNotFound
				}
				uc.logger.Error("CreateBooking: failed to get coach id=%d: %v", *req.CoachID, err)
				return fmt.Errorf("%w: failed to get coach: %v", ErrInternal, err)
			}
		}

		equipmentTypes, err := uc.fetchEquipmentTypes(txCtx, req.Equipment)
		if err != nil {
			return err
		}

		// 2.2. Блокируем строки типов инвентаря в порядке возрастания ID
		// и перепроверяем остатки под блокировкой. Фиксированный порядок
		// блокировок исключает взаимную блокировку двух конкурентных
		// бронирований с пересекающимися наборами инвентаря.
		for _, line := range req.Equipment {
			locked, err := uc.catalogRepo.LockEquipmentType(txCtx, line.EquipmentTypeID)
			if err != nil {
				if errors.Is(err, catalogRepo.ErrEquipmentTypeNotFound) {
					uc.logger.Warn("CreateBooking: equipment type id=%d not found", line.EquipmentTypeID)
					return ErrEquipmentTypeNotFound
				}
				uc.logger.Error("CreateBooking: failed to lock equipment type id=%d: %v", line.EquipmentTypeID, err)
				return fmt.Errorf("%w: failed to lock equipment type: %v", ErrInternal, err)
			}

			reserved, err := uc.bookingRepo.SumEquipmentReserved(txCtx, line.EquipmentTypeID, req.StartAt, req.EndAt)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to sum reserved equipment id=%d: %v", line.EquipmentTypeID, err)
				return fmt.Errorf("%w: failed to sum reserved equipment: %v", ErrInternal, err)
			}

			if reserved+line.Quantity > locked.TotalQuantity {
				uc.logger.Warn("CreateBooking: equipment type id=%d exhausted, reserved=%d, requested=%d, total=%d",
					line.EquipmentTypeID, reserved, line.Quantity, locked.TotalQuantity)
				return ErrResourceUnavailable
			}
		}

		// 2.3. Авторитетный пересчёт цены внутри транзакции. Цене от
		// клиента не доверяем никогда.
		rules, err := uc.catalogRepo.ListActivePricingRules(txCtx)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to list pricing rules: %v", err)
			return fmt.Errorf("%w: failed to list pricing rules: %v", ErrInternal, err)
		}

		breakdown := pricing.Quote(pricing.Input{
			StartAt:   req.StartAt,
			EndAt:     req.EndAt,
			Court:     *court,
			Coach:     coach,
			Equipment: buildSelections(req.Equipment, equipmentTypes),
			Rules:     rules,
		})

		breakdownJSON, err := json.Marshal(breakdown)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to marshal breakdown: %v", err)
			return fmt.Errorf("%w: failed to marshal breakdown: %v", ErrInternal, err)
		}

		// 2.4. Вставляем бронирование и строки резервирования. Пересечения
		// интервалов корта/тренера ловятся EXCLUDE-ограничениями на вставке.
		booking := &domain.Booking{
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			StartAt:         req.StartAt,
			EndAt:           req.EndAt,
			Status:          domain.StatusConfirmed,
			PriceTotalCents: breakdown.TotalCents,
			PriceBreakdown:  breakdownJSON,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		if err := uc.bookingRepo.ReserveCourt(txCtx, created.ID, court.ID, req.StartAt, req.EndAt); err != nil {
			if isResourceConflict(err) {
				uc.logger.Warn("CreateBooking: court id=%d interval taken", court.ID)
				return ErrResourceUnavailable
			}
			uc.logger.Error("CreateBooking: failed to reserve court id=%d: %v", court.ID, err)
			return fmt.Errorf("%w: failed to reserve court: %v", ErrInternal, err)
		}

		if coach != nil {
			if err := uc.bookingRepo.ReserveCoach(txCtx, created.ID, coach.ID, req.StartAt, req.EndAt); err != nil {
				if isResourceConflict(err) {
					uc.logger.Warn("CreateBooking: coach id=%d interval taken", coach.ID)
					return ErrResourceUnavailable
				}
				uc.logger.Error("CreateBooking: failed to reserve coach id=%d: %v", coach.ID, err)
				return fmt.Errorf("%w: failed to reserve coach: %v", ErrInternal, err)
			}
		}

		for _, line := range req.Equipment {
			if err := uc.bookingRepo.ReserveEquipment(txCtx, created.ID, line.EquipmentTypeID, line.Quantity, req.StartAt, req.EndAt); err != nil {
				uc.logger.Error("CreateBooking: failed to reserve equipment id=%d: %v", line.EquipmentTypeID, err)
				return fmt.Errorf("%w: failed to reserve equipment: %v", ErrInternal, err)
			}
		}

		result = &Response{
			BookingID:  created.ID,
			Status:     string(created.Status),
			TotalCents: breakdown.TotalCents,
			Breakdown:  breakdown,
			CreatedAt:  created.CreatedAt,
		}
		return nil
	})

	if err != nil {
		// Проигранная гонка может проявиться и на коммите: ошибка
		// сериализации или нарушение ограничения всплывает из txManager.
		if isResourceConflict(err) {
			uc.logger.Warn("CreateBooking: lost race on commit: %v", err)
			return nil, ErrResourceUnavailable
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d, total=%d cents", result.BookingID, result.TotalCents)
	return result, nil
}

// fetchEquipmentTypes перечитывает запрошенные типы инвентаря и следит,
// что каждый существует и активен
func (uc *UseCase) fetchEquipmentTypes(ctx context.Context, lines []EquipmentLine) (map[int64]domain.EquipmentType, error) {
	if len(lines) == 0 {
		return map[int64]domain.EquipmentType{}, nil
	}

	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.EquipmentTypeID)
	}

	types, err := uc.catalogRepo.GetActiveEquipmentTypes(ctx, ids)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get equipment types: %v", err)
		return nil, fmt.Errorf("%w: failed to get equipment types: %v", ErrInternal, err)
	}

	byID := make(map[int64]domain.EquipmentType, len(types))
	for _, et := range types {
		byID[et.ID] = et
	}

	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			uc.logger.Warn("CreateBooking: equipment type id=%d not found", id)
			return nil, ErrEquipmentTypeNotFound
		}
	}

	return byID, nil
}

func buildSelections(lines []EquipmentLine, types map[int64]domain.EquipmentType) []pricing.EquipmentSelection {
	selections := make([]pricing.EquipmentSelection, 0, len(lines))
	for _, line := range lines {
		selections = append(selections, pricing.EquipmentSelection{
			EquipmentType: types[line.EquipmentTypeID],
			Quantity:      line.Quantity,
		})
	}
	return selections
}

// isResourceConflict распознаёт проигранную гонку по коду ошибки PostgreSQL
func isResourceConflict(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case pqExclusionViolation, pqUniqueViolation, pqSerializationFailure:
		return true
	}
	return false
}
