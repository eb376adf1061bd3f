package quote_price

import (
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/pricing"
)

// EquipmentLine запрошенное количество одного типа инвентаря
type EquipmentLine struct {
	EquipmentTypeID int64
	Quantity        int
}

// Request модель запроса котировки
type Request struct {
	StartAt   time.Time
	EndAt     time.Time
	CourtID   int64
	CoachID   *int64
	Equipment []EquipmentLine
}

// Response модель ответа с детализацией цены. Живая котировка: та же
// детализация пересчитывается заново при создании бронирования.
type Response struct {
	Breakdown pricing.Breakdown
}
