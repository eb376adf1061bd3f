package domain

import (
	"time"

	"github.com/courtflow/CF-BookingEngine/pkg/types"
)

// Coach represents a bookable coach with an hourly rate
type Coach struct {
	ID              int64
	Name            string
	HourlyRateCents int64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CoachAvailabilityWindow недельное окно доступности тренера:
// день недели (0 = воскресенье) и интервал времени суток.
// Шаблон повторяется еженедельно и не привязан к конкретной дате.
type CoachAvailabilityWindow struct {
	ID        int64
	CoachID   int64
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
	CreatedAt time.Time
}

// ContainsSpan возвращает true, если окно целиком содержит интервал
// [startMin, endMin] в минутах суток (границы включительно)
func (w *CoachAvailabilityWindow) ContainsSpan(startMin, endMin int) bool {
	winStart, err := w.StartTime.Minutes()
	if err != nil {
		return false
	}
	winEnd, err := w.EndTime.Minutes()
	if err != nil {
		return false
	}
	return startMin >= winStart && endMin <= winEnd
}
