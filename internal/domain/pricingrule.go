package domain

import (
	"time"

	"github.com/courtflow/CF-BookingEngine/pkg/types"
)

// PricingAppliesTo категория ресурса, к которой применяется правило
type PricingAppliesTo string

const (
	AppliesToCourt     PricingAppliesTo = "COURT"
	AppliesToCoach     PricingAppliesTo = "COACH"
	AppliesToEquipment PricingAppliesTo = "EQUIPMENT"
)

// DayType классификация дня для правила ценообразования
type DayType string

const (
	DayTypeAny     DayType = "ANY"
	DayTypeWeekday DayType = "WEEKDAY"
	DayTypeWeekend DayType = "WEEKEND"
)

// BaseMultiplierBps множитель ×1.00 в базисных пунктах
const BaseMultiplierBps int64 = 10000

// PricingRule правило ценообразования: чистый фильтр + линейное
// преобразование (multiplier, затем add), без зависимостей между правилами.
// Опциональные фильтры зависят от категории: поверхность корта для COURT,
// конкретный тренер для COACH; у EQUIPMENT дополнительного фильтра нет.
type PricingRule struct {
	ID              int64
	Name            string
	IsActive        bool
	Priority        int
	AppliesTo       PricingAppliesTo
	DayType         DayType
	StartTime       *types.TimeString
	EndTime         *types.TimeString
	CourtSurface    *CourtSurface
	CoachID         *int64
	EquipmentTypeID *int64
	MultiplierBps   int64
	AddCents        int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasTimeWindow возвращает true, если у правила задано временное окно
func (r *PricingRule) HasTimeWindow() bool {
	return r.StartTime != nil && r.EndTime != nil
}
