package get_bookings

import (
	"encoding/json"
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// ReservedCourtResponse корт бронирования
type ReservedCourtResponse struct {
	CourtID int64  `json:"courtId"`
	Name    string `json:"name"`
	Surface string `json:"surface"`
}

// ReservedCoachResponse тренер бронирования
type ReservedCoachResponse struct {
	CoachID int64  `json:"coachId"`
	Name    string `json:"name"`
}

// ReservedEquipmentResponse строка инвентаря бронирования
type ReservedEquipmentResponse struct {
	EquipmentTypeID int64  `json:"equipmentTypeId"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
}

// BookingResponse одно бронирование истории
type BookingResponse struct {
	ID             int64                       `json:"id"`
	CustomerName   string                      `json:"customerName"`
	CustomerEmail  string                      `json:"customerEmail"`
	StartAt        time.Time                   `json:"startAt"`
	EndAt          time.Time                   `json:"endAt"`
	Status         string                      `json:"status"`
	TotalCents     int64                       `json:"totalCents"`
	PriceBreakdown json.RawMessage             `json:"priceBreakdown"`
	CancelledAt    *time.Time                  `json:"cancelledAt,omitempty"`
	CreatedAt      time.Time                   `json:"createdAt"`
	Court          *ReservedCourtResponse      `json:"court,omitempty"`
	Coach          *ReservedCoachResponse      `json:"coach,omitempty"`
	Equipment      []ReservedEquipmentResponse `json:"equipment"`
}

// BookingListResponse HTTP response model
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// FromDomainBookings конвертирует доменные бронирования в HTTP response
func FromDomainBookings(bookings []domain.BookingWithResources) *BookingListResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, fromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: result}
}

func fromDomainBooking(b domain.BookingWithResources) BookingResponse {
	resp := BookingResponse{
		ID:             b.Booking.ID,
		CustomerName:   b.Booking.CustomerName,
		CustomerEmail:  b.Booking.CustomerEmail,
		StartAt:        b.Booking.StartAt,
		EndAt:          b.Booking.EndAt,
		Status:         string(b.Booking.Status),
		TotalCents:     b.Booking.PriceTotalCents,
		PriceBreakdown: b.Booking.PriceBreakdown,
		CancelledAt:    b.Booking.CancelledAt,
		CreatedAt:      b.Booking.CreatedAt,
		Equipment:      make([]ReservedEquipmentResponse, 0, len(b.Equipment)),
	}

	if b.Court != nil {
		resp.Court = &ReservedCourtResponse{
			CourtID: b.Court.CourtID,
			Name:    b.Court.Name,
			Surface: string(b.Court.Surface),
		}
	}
	if b.Coach != nil {
		resp.Coach = &ReservedCoachResponse{
			CoachID: b.Coach.CoachID,
			Name:    b.Coach.Name,
		}
	}
	for _, line := range b.Equipment {
		resp.Equipment = append(resp.Equipment, ReservedEquipmentResponse{
			EquipmentTypeID: line.EquipmentTypeID,
			Name:            line.Name,
			Quantity:        line.Quantity,
		})
	}

	return resp
}
