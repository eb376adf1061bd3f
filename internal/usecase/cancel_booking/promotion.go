package cancel_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	"github.com/courtflow/CF-BookingEngine/pkg/timegrid"
)

// waitlistPayload тело уведомления о продвижении записи листа ожидания
type waitlistPayload struct {
	EntryID      int64               `json:"entryId"`
	StartAt      time.Time           `json:"startAt"`
	EndAt        time.Time           `json:"endAt"`
	FreedSurface domain.CourtSurface `json:"freedSurface"`
	Position     int                 `json:"position"`
}

// promote продвигает одну запись листа ожидания на освободившийся
// интервал: самая старая ожидающая запись, чья поверхность совпадает
// с освободившейся или не задана (ANY) и чей запрос тренера выполним,
// переводится в notified и получает одно уведомление. Слот при этом
// не бронируется: запись только извещается.
func (uc *UseCase) promote(ctx context.Context, startAt, endAt time.Time, freedSurface domain.CourtSurface, now time.Time) error {
	candidates, err := uc.waitlistRepo.ListPromotionCandidates(ctx, startAt, endAt, freedSurface)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to list waitlist candidates: %v", err)
		return fmt.Errorf("%w: failed to list waitlist candidates: %v", ErrInternal, err)
	}
	if len(candidates) == 0 {
		return nil
	}

	// Выполнимость запроса тренера считаем один раз на интервал
	coachAvailable := false
	for _, c := range candidates {
		if c.WantsCoach {
			coachAvailable, err = uc.hasAnyCoachFree(ctx, startAt, endAt)
			if err != nil {
				return err
			}
			break
		}
	}

	for _, candidate := range candidates {
		if candidate.WantsCoach && !coachAvailable {
			continue
		}

		if err := uc.waitlistRepo.MarkNotified(ctx, candidate.ID, now); err != nil {
			uc.logger.Error("CancelBooking: failed to mark waitlist entry id=%d notified: %v", candidate.ID, err)
			return fmt.Errorf("%w: failed to mark waitlist entry notified: %v", ErrInternal, err)
		}

		payload, err := json.Marshal(waitlistPayload{
			EntryID:      candidate.ID,
			StartAt:      startAt,
			EndAt:        endAt,
			FreedSurface: freedSurface,
			Position:     candidate.Position,
		})
		if err != nil {
			uc.logger.Error("CancelBooking: failed to marshal notification payload: %v", err)
			return fmt.Errorf("%w: failed to marshal notification payload: %v", ErrInternal, err)
		}

		notification := &domain.Notification{
			Email:   candidate.CustomerEmail,
			Type:    domain.NotificationWaitlistAvailable,
			Payload: payload,
		}
		if _, err := uc.notificationRepo.Create(ctx, notification); err != nil {
			uc.logger.Error("CancelBooking: failed to create notification for entry id=%d: %v", candidate.ID, err)
			return fmt.Errorf("%w: failed to create notification: %v", ErrInternal, err)
		}

		uc.logger.Info("CancelBooking: promoted waitlist entry id=%d (position=%d)", candidate.ID, candidate.Position)
		return nil
	}

	return nil
}

// hasAnyCoachFree проверяет, что хотя бы один активный тренер вероятно
// свободен на интервале: его недельное окно вмещает интервал и он не
// занят другим бронированием. Проверка намеренно не привязывает
// конкретного тренера.
func (uc *UseCase) hasAnyCoachFree(ctx context.Context, startAt, endAt time.Time) (bool, error) {
	localStart := startAt.In(time.Local)
	localEnd := endAt.In(time.Local)

	if !timegrid.SameDay(localStart, localEnd) {
		return false, nil
	}

	coaches, err := uc.catalogRepo.ListActiveCoaches(ctx)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to list coaches: %v", err)
		return false, fmt.Errorf("%w: failed to list coaches: %v", ErrInternal, err)
	}
	if len(coaches) == 0 {
		return false, nil
	}

	windows, err := uc.catalogRepo.ListActiveCoachWindows(ctx, int(localStart.Weekday()))
	if err != nil {
		uc.logger.Error("CancelBooking: failed to list coach windows: %v", err)
		return false, fmt.Errorf("%w: failed to list coach windows: %v", ErrInternal, err)
	}

	reservations, err := uc.bookingRepo.CoachReservationsInRange(ctx, startAt, endAt)
	if err != nil {
		uc.logger.Error("CancelBooking: failed to list coach reservations: %v", err)
		return false, fmt.Errorf("%w: failed to list coach reservations: %v", ErrInternal, err)
	}

	busy := make(map[int64]bool, len(reservations))
	for _, r := range reservations {
		busy[r.CoachID] = true
	}

	startMin := timegrid.MinutesOfDay(localStart)
	endMin := timegrid.MinutesOfDay(localEnd)

	for _, coach := range coaches {
		if busy[coach.ID] {
			continue
		}
		for _, window := range windows {
			if window.CoachID == coach.ID && window.ContainsSpan(startMin, endMin) {
				return true, nil
			}
		}
	}

	return false, nil
}
