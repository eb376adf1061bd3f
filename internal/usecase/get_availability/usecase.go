package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	catalogRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/catalog"
	"github.com/courtflow/CF-BookingEngine/pkg/timegrid"
)

// UseCase use case проекции доступности на день
type UseCase struct {
	catalogRepo CatalogRepository
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalogRepo CatalogRepository, bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute строит сетку слотов на день. Каждая коллекция читается один
// раз на весь день, дальше проекция по слотам идёт в памяти: никаких
// запросов в цикле по слотам.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s", req.Date)

	config, err := uc.catalogRepo.GetFacilityConfig(ctx)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailability: facility config missing")
			return nil, ErrConfigMissing
		}
		uc.logger.Error("GetAvailability: failed to get facility config: %v", err)
		return nil, fmt.Errorf("%w: failed to get facility config: %v", ErrInternal, err)
	}

	loc := config.Location()
	dayStart, err := timegrid.ParseLocalDate(req.Date, loc)
	if err != nil {
		uc.logger.Warn("GetAvailability: bad date %q: %v", req.Date, err)
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	openMin, err := config.OpenTime.Minutes()
	if err != nil {
		uc.logger.Error("GetAvailability: bad open_time %q: %v", config.OpenTime, err)
		return nil, fmt.Errorf("%w: bad facility open time: %v", ErrInternal, err)
	}
	closeMin, err := config.CloseTime.Minutes()
	if err != nil {
		uc.logger.Error("GetAvailability: bad close_time %q: %v", config.CloseTime, err)
		return nil, fmt.Errorf("%w: bad facility close time: %v", ErrInternal, err)
	}

	courts, err := uc.catalogRepo.ListActiveCourts(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list courts: %v", err)
		return nil, fmt.Errorf("%w: failed to list courts: %v", ErrInternal, err)
	}

	coaches, err := uc.catalogRepo.ListActiveCoaches(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list coaches: %v", err)
		return nil, fmt.Errorf("%w: failed to list coaches: %v", ErrInternal, err)
	}

	windows, err := uc.catalogRepo.ListActiveCoachWindows(ctx, int(dayStart.Weekday()))
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list coach windows: %v", err)
		return nil, fmt.Errorf("%w: failed to list coach windows: %v", ErrInternal, err)
	}

	equipmentTypes, err := uc.catalogRepo.ListActiveEquipmentTypes(ctx)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list equipment types: %v", err)
		return nil, fmt.Errorf("%w: failed to list equipment types: %v", ErrInternal, err)
	}

	courtReservations, err := uc.bookingRepo.CourtReservationsInRange(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list court reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list court reservations: %v", ErrInternal, err)
	}

	coachReservations, err := uc.bookingRepo.CoachReservationsInRange(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list coach reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list coach reservations: %v", ErrInternal, err)
	}

	equipmentReservations, err := uc.bookingRepo.EquipmentReservationsInRange(ctx, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list equipment reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list equipment reservations: %v", ErrInternal, err)
	}

	slots := projectSlots(projectionInput{
		dayStart:              dayStart,
		openMin:               openMin,
		closeMin:              closeMin,
		slotMinutes:           config.SlotMinutes,
		courts:                courts,
		coaches:               coaches,
		windows:               windows,
		equipmentTypes:        equipmentTypes,
		courtReservations:     courtReservations,
		coachReservations:     coachReservations,
		equipmentReservations: equipmentReservations,
	})

	uc.logger.Info("GetAvailability: date=%s, %d slots", req.Date, len(slots))

	return &Response{Date: req.Date, Slots: slots}, nil
}

type projectionInput struct {
	dayStart              time.Time
	openMin               int
	closeMin              int
	slotMinutes           int
	courts                []domain.Court
	coaches               []domain.Coach
	windows               []domain.CoachAvailabilityWindow
	equipmentTypes        []domain.EquipmentType
	courtReservations     []domain.CourtReservation
	coachReservations     []domain.CoachReservation
	equipmentReservations []domain.EquipmentReservation
}

// projectSlots раскладывает день на слоты от открытия до закрытия.
// Неполный хвост дня (start+slot > close) не эмитится.
func projectSlots(in projectionInput) []domain.SlotAvailability {
	slots := make([]domain.SlotAvailability, 0)

	for startMin := in.openMin; startMin+in.slotMinutes <= in.closeMin; startMin += in.slotMinutes {
		slotStart := timegrid.AddMinutes(in.dayStart, startMin)
		slotEnd := timegrid.AddMinutes(in.dayStart, startMin+in.slotMinutes)

		slot := domain.SlotAvailability{
			StartAt: slotStart,
			EndAt:   slotEnd,
		}

		for _, court := range in.courts {
			taken := false
			for _, r := range in.courtReservations {
				if r.CourtID == court.ID && timegrid.Overlaps(slotStart, slotEnd, r.StartAt, r.EndAt) {
					taken = true
					break
				}
			}
			if !taken {
				slot.AvailableCourts = append(slot.AvailableCourts, court)
			}
		}

		for _, coach := range in.coaches {
			if !coachFreeInSlot(coach.ID, startMin, startMin+in.slotMinutes, slotStart, slotEnd, in.windows, in.coachReservations) {
				continue
			}
			slot.AvailableCoaches = append(slot.AvailableCoaches, coach)
		}

		for _, et := range in.equipmentTypes {
			reserved := 0
			for _, r := range in.equipmentReservations {
				if r.EquipmentTypeID == et.ID && timegrid.Overlaps(slotStart, slotEnd, r.StartAt, r.EndAt) {
					reserved += r.Quantity
				}
			}
			remaining := et.TotalQuantity - reserved
			if remaining < 0 {
				remaining = 0
			}
			slot.Equipment = append(slot.Equipment, domain.EquipmentAvailability{
				EquipmentType: et,
				Reserved:      reserved,
				Remaining:     remaining,
			})
		}

		slots = append(slots, slot)
	}

	return slots
}

// coachFreeInSlot: слот целиком внутри хотя бы одного недельного окна
// тренера и не пересекается с его резервированиями
func coachFreeInSlot(
	coachID int64,
	slotStartMin, slotEndMin int,
	slotStart, slotEnd time.Time,
	windows []domain.CoachAvailabilityWindow,
	reservations []domain.CoachReservation,
) bool {
	inWindow := false
	for _, w := range windows {
		if w.CoachID == coachID && w.ContainsSpan(slotStartMin, slotEndMin) {
			inWindow = true
			break
		}
	}
	if !inWindow {
		return false
	}

	for _, r := range reservations {
		if r.CoachID == coachID && timegrid.Overlaps(slotStart, slotEnd, r.StartAt, r.EndAt) {
			return false
		}
	}

	return true
}
