package quote_price

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	catalogRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/catalog"
	"github.com/courtflow/CF-BookingEngine/internal/pricing"
)

// UseCase use case расчёта котировки без резервирования
type UseCase struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogRepo CatalogRepository, logger Logger) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Execute выполняет use case расчёта котировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: court=%d, start=%s, end=%s",
		req.CourtID, req.StartAt.Format(domain.TimeFormat), req.EndAt.Format(domain.TimeFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	court, err := uc.catalogRepo.GetActiveCourt(ctx, req.CourtID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCourtNotFound) {
			uc.logger.Warn("QuotePrice: court id=%d not found", req.CourtID)
			return nil, ErrCourtNotFound
		}
		uc.logger.Error("QuotePrice: failed to get court id=%d: %v", req.CourtID, err)
		return nil, fmt.Errorf("%w: failed to get court: %v", ErrInternal, err)
	}

	var coach *domain.Coach
	if req.CoachID != nil {
		coach, err = uc.catalogRepo.GetActiveCoach(ctx, *req.CoachID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrCoachNotFound) {
				uc.logger.Warn("QuotePrice: coach id=%d not found", *req.CoachID)
				return nil, ErrCoachNotFound
			}
			uc.logger.Error("QuotePrice: failed to get coach id=%d: %v", *req.CoachID, err)
			return nil, fmt.Errorf("%w: failed to get coach: %v", ErrInternal, err)
		}
	}

	selections, err := uc.resolveEquipment(ctx, req.Equipment)
	if err != nil {
		return nil, err
	}

	rules, err := uc.catalogRepo.ListActivePricingRules(ctx)
	if err != nil {
		uc.logger.Error("QuotePrice: failed to list pricing rules: %v", err)
		return nil, fmt.Errorf("%w: failed to list pricing rules: %v", ErrInternal, err)
	}

	breakdown := pricing.Quote(pricing.Input{
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Court:     *court,
		Coach:     coach,
		Equipment: selections,
		Rules:     rules,
	})

	uc.logger.Info("QuotePrice: court=%d, total=%d cents", req.CourtID, breakdown.TotalCents)

	return &Response{Breakdown: breakdown}, nil
}

func validateRequest(req *Request) error {
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: startAt and endAt are required", ErrInvalidInput)
	}
	if !req.EndAt.After(req.StartAt) {
		return fmt.Errorf("%w: endAt must be after startAt", ErrInvalidInput)
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtId must be positive", ErrInvalidInput)
	}
	if req.CoachID != nil && *req.CoachID <= 0 {
		return fmt.Errorf("%w: coachId must be positive", ErrInvalidInput)
	}
	for _, line := range req.Equipment {
		if line.EquipmentTypeID <= 0 {
			return fmt.Errorf("%w: equipmentTypeId must be positive", ErrInvalidInput)
		}
	}
	return nil
}

// resolveEquipment нормализует строки инвентаря (схлопывает дубликаты,
// отбрасывает неположительные количества) и перечитывает типы
func (uc *UseCase) resolveEquipment(ctx context.Context, lines []EquipmentLine) ([]pricing.EquipmentSelection, error) {
	byType := make(map[int64]int)
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		byType[line.EquipmentTypeID] += line.Quantity
	}
	if len(byType) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(byType))
	for id := range byType {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	types, err := uc.catalogRepo.GetActiveEquipmentTypes(ctx, ids)
	if err != nil {
		uc.logger.Error("QuotePrice: failed to get equipment types: %v", err)
		return nil, fmt.Errorf("%w: failed to get equipment types: %v", ErrInternal, err)
	}

	byID := make(map[int64]domain.EquipmentType, len(types))
	for _, et := range types {
		byID[et.ID] = et
	}

	selections := make([]pricing.EquipmentSelection, 0, len(ids))
	for _, id := range ids {
		et, ok := byID[id]
		if !ok {
			uc.logger.Warn("QuotePrice: equipment type id=%d not found", id)
			return nil, ErrEquipmentTypeNotFound
		}
		selections = append(selections, pricing.EquipmentSelection{
			EquipmentType: et,
			Quantity:      byType[id],
		})
	}

	return selections, nil
}
