package create_booking

import (
	"math"
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/pricing"
	createBooking "github.com/courtflow/CF-BookingEngine/internal/usecase/create_booking"
)

// EquipmentLineRequest строка инвентаря в HTTP запросе. Количество
// принимается числом и приводится к целому вниз; неположительные
// строки отбрасываются на валидации.
type EquipmentLineRequest struct {
	EquipmentTypeID int64   `json:"equipmentTypeId"`
	Quantity        float64 `json:"quantity"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string                 `json:"customerName"`
	CustomerEmail string                 `json:"customerEmail"`
	StartAt       time.Time              `json:"startAt"`
	EndAt         time.Time              `json:"endAt"`
	CourtID       int64                  `json:"courtId"`
	CoachID       *int64                 `json:"coachId,omitempty"`
	Equipment     []EquipmentLineRequest `json:"equipment,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID  int64             `json:"bookingId"`
	Status     string            `json:"status"`
	TotalCents int64             `json:"totalCents"`
	Breakdown  pricing.Breakdown `json:"breakdown"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	equipment := make([]createBooking.EquipmentLine, 0, len(r.Equipment))
	for _, line := range r.Equipment {
		equipment = append(equipment, createBooking.EquipmentLine{
			EquipmentTypeID: line.EquipmentTypeID,
			Quantity:        int(math.Floor(line.Quantity)),
		})
	}

	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		CourtID:       r.CourtID,
		CoachID:       r.CoachID,
		Equipment:     equipment,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:  resp.BookingID,
		Status:     resp.Status,
		TotalCents: resp.TotalCents,
		Breakdown:  resp.Breakdown,
		CreatedAt:  resp.CreatedAt,
	}
}
