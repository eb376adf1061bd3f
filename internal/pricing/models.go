package pricing

import (
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// EquipmentSelection выбранный тип инвентаря с количеством
type EquipmentSelection struct {
	EquipmentType domain.EquipmentType
	Quantity      int
}

// Input входные данные расчёта цены. Расчёт — чистая функция:
// никакого I/O, одинаковый вход даёт байт-в-байт одинаковый результат.
type Input struct {
	StartAt   time.Time
	EndAt     time.Time
	Court     domain.Court
	Coach     *domain.Coach
	Equipment []EquipmentSelection
	Rules     []domain.PricingRule
}

// AppliedRule применённое правило в порядке применения
type AppliedRule struct {
	ID            int64                   `json:"id"`
	Name          string                  `json:"name"`
	AppliesTo     domain.PricingAppliesTo `json:"appliesTo"`
	MultiplierBps int64                   `json:"multiplierBps"`
	AddCents      int64                   `json:"addCents"`
}

// CourtBreakdown детализация стоимости корта
type CourtBreakdown struct {
	CourtID              int64         `json:"courtId"`
	BaseRateCentsPerHour int64         `json:"baseRateCentsPerHour"`
	BaseCents            int64         `json:"baseCents"`
	AppliedRules         []AppliedRule `json:"appliedRules"`
	TotalCents           int64         `json:"totalCents"`
}

// EquipmentLine строка детализации по одному типу инвентаря
type EquipmentLine struct {
	EquipmentTypeID int64  `json:"equipmentTypeId"`
	Name            string `json:"name"`
	UnitPriceCents  int64  `json:"unitPriceCents"`
	Quantity        int    `json:"quantity"`
	LineTotalCents  int64  `json:"lineTotalCents"`
}

// EquipmentBreakdown детализация стоимости инвентаря
type EquipmentBreakdown struct {
	Items         []EquipmentLine `json:"items"`
	AppliedRules  []AppliedRule   `json:"appliedRules"`
	SubtotalCents int64           `json:"subtotalCents"`
	TotalCents    int64           `json:"totalCents"`
}

// CoachBreakdown детализация стоимости тренера
type CoachBreakdown struct {
	CoachID         *int64        `json:"coachId,omitempty"`
	HourlyRateCents *int64        `json:"hourlyRateCents,omitempty"`
	BaseCents       int64         `json:"baseCents"`
	AppliedRules    []AppliedRule `json:"appliedRules"`
	TotalCents      int64         `json:"totalCents"`
}

// Breakdown итоговая детализация цены. Сохраняется снапшотом вместе
// с бронированием и одновременно служит живой котировкой до коммита.
type Breakdown struct {
	DurationMinutes int                `json:"durationMinutes"`
	Court           CourtBreakdown     `json:"court"`
	Equipment       EquipmentBreakdown `json:"equipment"`
	Coach           CoachBreakdown     `json:"coach"`
	TotalCents      int64              `json:"totalCents"`
}
