package pricing

import (
	"sort"
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	"github.com/courtflow/CF-BookingEngine/pkg/timegrid"
)

// Quote рассчитывает детерминированную итемизированную цену выбора ресурсов.
// Для каждой категории (корт, инвентарь, тренер) независимо:
// базовая стоимость → фильтрация правил → сортировка по приоритету →
// последовательное применение (умножение, затем добавка) → кламп к нулю.
func Quote(in Input) Breakdown {
	durationMinutes := timegrid.MinutesBetween(in.StartAt, in.EndAt)

	// Корт: базовая ставка за час × длительность в часах
	courtBase := roundDiv(in.Court.BaseRateCentsPerHour*int64(durationMinutes), 60)
	courtRules := filterRules(in.Rules, domain.AppliesToCourt, in.StartAt, in.EndAt, func(r *domain.PricingRule) bool {
		return r.CourtSurface == nil || *r.CourtSurface == in.Court.Surface
	})
	courtTotal, courtApplied := applyRuleSet(courtBase, courtRules)

	// Инвентарь: сумма (цена × количество) по строкам
	items := make([]EquipmentLine, 0, len(in.Equipment))
	var equipmentSubtotal int64
	for _, sel := range in.Equipment {
		if sel.Quantity <= 0 {
			continue
		}
		line := EquipmentLine{
			EquipmentTypeID: sel.EquipmentType.ID,
			Name:            sel.EquipmentType.Name,
			UnitPriceCents:  sel.EquipmentType.UnitPriceCents,
			Quantity:        sel.Quantity,
			LineTotalCents:  sel.EquipmentType.UnitPriceCents * int64(sel.Quantity),
		}
		items = append(items, line)
		equipmentSubtotal += line.LineTotalCents
	}
	equipmentRules := filterRules(in.Rules, domain.AppliesToEquipment, in.StartAt, in.EndAt, func(*domain.PricingRule) bool {
		return true
	})
	equipmentTotal, equipmentApplied := applyRuleSet(equipmentSubtotal, equipmentRules)

	// Тренер: почасовая ставка × длительность, 0 без тренера
	var coachBase int64
	coach := CoachBreakdown{AppliedRules: []AppliedRule{}}
	if in.Coach != nil {
		coachBase = roundDiv(in.Coach.HourlyRateCents*int64(durationMinutes), 60)
		coach.CoachID = &in.Coach.ID
		coach.HourlyRateCents = &in.Coach.HourlyRateCents
	}
	coachRules := filterRules(in.Rules, domain.AppliesToCoach, in.StartAt, in.EndAt, func(r *domain.PricingRule) bool {
		return r.CoachID == nil || (in.Coach != nil && *r.CoachID == in.Coach.ID)
	})
	coachTotal, coachApplied := applyRuleSet(coachBase, coachRules)
	coach.BaseCents = coachBase
	coach.AppliedRules = coachApplied
	coach.TotalCents = coachTotal

	return Breakdown{
		DurationMinutes: durationMinutes,
		Court: CourtBreakdown{
			CourtID:              in.Court.ID,
			BaseRateCentsPerHour: in.Court.BaseRateCentsPerHour,
			BaseCents:            courtBase,
			AppliedRules:         courtApplied,
			TotalCents:           courtTotal,
		},
		Equipment: EquipmentBreakdown{
			Items:         items,
			AppliedRules:  equipmentApplied,
			SubtotalCents: equipmentSubtotal,
			TotalCents:    equipmentTotal,
		},
		Coach:      coach,
		TotalCents: courtTotal + equipmentTotal + coachTotal,
	}
}

// filterRules отбирает активные правила категории, подходящие по типу дня
// (классификация по моменту начала), временному окну и фильтру категории
func filterRules(
	rules []domain.PricingRule,
	appliesTo domain.PricingAppliesTo,
	startAt, endAt time.Time,
	categoryFilter func(*domain.PricingRule) bool,
) []domain.PricingRule {
	matched := make([]domain.PricingRule, 0)
	for i := range rules {
		r := &rules[i]
		if !r.IsActive || r.AppliesTo != appliesTo {
			continue
		}
		if !matchesDayType(r, startAt) {
			continue
		}
		if !matchesTimeWindow(r, startAt, endAt) {
			continue
		}
		if !categoryFilter(r) {
			continue
		}
		matched = append(matched, *r)
	}
	return matched
}

// matchesDayType сверяет тип дня правила с классификацией момента начала
func matchesDayType(r *domain.PricingRule, startAt time.Time) bool {
	if r.DayType == domain.DayTypeAny {
		return true
	}
	weekend := timegrid.IsWeekend(startAt)
	if r.DayType == domain.DayTypeWeekend {
		return weekend
	}
	return !weekend
}

// matchesTimeWindow проверяет пересечение интервала бронирования
// с временным окном правила (окно отсутствует — правило подходит)
func matchesTimeWindow(r *domain.PricingRule, startAt, endAt time.Time) bool {
	if !r.HasTimeWindow() {
		return true
	}
	winStart, err := r.StartTime.Minutes()
	if err != nil {
		return false
	}
	winEnd, err := r.EndTime.Minutes()
	if err != nil {
		return false
	}
	return timegrid.OverlapsWindow(startAt, endAt, winStart, winEnd)
}

// applyRuleSet применяет правила к базовой стоимости строго по порядку:
// priority по возрастанию, при равенстве — id по возрастанию (явный
// детерминированный tiebreak). Каждое правило: сначала множитель,
// затем добавка. Итог категории клампится к нулю.
func applyRuleSet(baseCents int64, rules []domain.PricingRule) (int64, []AppliedRule) {
	ordered := make([]domain.PricingRule, len(rules))
	copy(ordered, rules)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].ID < ordered[j].ID
	})

	total := baseCents
	applied := make([]AppliedRule, 0, len(ordered))

	for _, r := range ordered {
		if r.MultiplierBps != domain.BaseMultiplierBps {
			total = roundDiv(total*r.MultiplierBps, 10000)
		}
		if r.AddCents != 0 {
			total += r.AddCents
		}
		applied = append(applied, AppliedRule{
			ID:            r.ID,
			Name:          r.Name,
			AppliesTo:     r.AppliesTo,
			MultiplierBps: r.MultiplierBps,
			AddCents:      r.AddCents,
		})
	}

	if total < 0 {
		total = 0
	}
	return total, applied
}

// roundDiv целочисленное деление с округлением к ближайшему
// (половина — вверх), без плавающей точки
func roundDiv(n, d int64) int64 {
	if n >= 0 {
		return (n + d/2) / d
	}
	return -((-n + d/2 - 1) / d)
}
