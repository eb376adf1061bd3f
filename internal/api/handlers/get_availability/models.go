package get_availability

import (
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	getAvailability "github.com/courtflow/CF-BookingEngine/internal/usecase/get_availability"
)

// CourtResponse доступный корт в слоте
type CourtResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surface string `json:"surface"`
}

// CoachResponse доступный тренер в слоте
type CoachResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EquipmentResponse остаток инвентаря в слоте
type EquipmentResponse struct {
	EquipmentTypeID int64  `json:"equipmentTypeId"`
	Name            string `json:"name"`
	Reserved        int    `json:"reserved"`
	Remaining       int    `json:"remaining"`
}

// SlotResponse один слот дневной сетки
type SlotResponse struct {
	StartAt          time.Time           `json:"startAt"`
	EndAt            time.Time           `json:"endAt"`
	AvailableCourts  []CourtResponse     `json:"availableCourts"`
	AvailableCoaches []CoachResponse     `json:"availableCoaches"`
	Equipment        []EquipmentResponse `json:"equipment"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, fromDomainSlot(slot))
	}
	return &AvailabilityResponse{
		Date:  resp.Date,
		Slots: slots,
	}
}

func fromDomainSlot(slot domain.SlotAvailability) SlotResponse {
	courts := make([]CourtResponse, 0, len(slot.AvailableCourts))
	for _, c := range slot.AvailableCourts {
		courts = append(courts, CourtResponse{ID: c.ID, Name: c.Name, Surface: string(c.Surface)})
	}

	coaches := make([]CoachResponse, 0, len(slot.AvailableCoaches))
	for _, c := range slot.AvailableCoaches {
		coaches = append(coaches, CoachResponse{ID: c.ID, Name: c.Name})
	}

	equipment := make([]EquipmentResponse, 0, len(slot.Equipment))
	for _, e := range slot.Equipment {
		equipment = append(equipment, EquipmentResponse{
			EquipmentTypeID: e.EquipmentType.ID,
			Name:            e.EquipmentType.Name,
			Reserved:        e.Reserved,
			Remaining:       e.Remaining,
		})
	}

	return SlotResponse{
		StartAt:          slot.StartAt,
		EndAt:            slot.EndAt,
		AvailableCourts:  courts,
		AvailableCoaches: coaches,
		Equipment:        equipment,
	}
}
