package quote_price

import (
	"math"
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/pricing"
	quotePrice "github.com/courtflow/CF-BookingEngine/internal/usecase/quote_price"
)

// EquipmentLineRequest строка инвентаря в HTTP запросе
type EquipmentLineRequest struct {
	EquipmentTypeID int64   `json:"equipmentTypeId"`
	Quantity        float64 `json:"quantity"`
}

// QuotePriceRequest HTTP request model
type QuotePriceRequest struct {
	StartAt   time.Time              `json:"startAt"`
	EndAt     time.Time              `json:"endAt"`
	CourtID   int64                  `json:"courtId"`
	CoachID   *int64                 `json:"coachId,omitempty"`
	Equipment []EquipmentLineRequest `json:"equipment,omitempty"`
}

// QuotePriceResponse HTTP response model
type QuotePriceResponse struct {
	PriceBreakdown pricing.Breakdown `json:"priceBreakdown"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuotePriceRequest) ToUseCaseRequest() *quotePrice.Request {
	equipment := make([]quotePrice.EquipmentLine, 0, len(r.Equipment))
	for _, line := range r.Equipment {
		equipment = append(equipment, quotePrice.EquipmentLine{
			EquipmentTypeID: line.EquipmentTypeID,
			Quantity:        int(math.Floor(line.Quantity)),
		})
	}

	return &quotePrice.Request{
		StartAt:   r.StartAt,
		EndAt:     r.EndAt,
		CourtID:   r.CourtID,
		CoachID:   r.CoachID,
		Equipment: equipment,
	}
}
