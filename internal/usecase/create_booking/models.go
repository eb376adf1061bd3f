package create_booking

import (
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/pricing"
)

// EquipmentLine запрошенное количество одного типа инвентаря
type EquipmentLine struct {
	EquipmentTypeID int64
	Quantity        int
}

// Request модель запроса на создание бронирования
type Request struct {
	CustomerName  string
	CustomerEmail string
	StartAt       time.Time
	EndAt         time.Time
	CourtID       int64
	CoachID       *int64
	Equipment     []EquipmentLine
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID  int64
	Status     string
	TotalCents int64
	Breakdown  pricing.Breakdown
	CreatedAt  time.Time
}
