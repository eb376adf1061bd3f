package get_availability

import (
	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// Request модель запроса проекции доступности на день
type Request struct {
	Date string // дата в формате YYYY-MM-DD
}

// Response модель ответа: слоты дня в хронологическом порядке
type Response struct {
	Date  string
	Slots []domain.SlotAvailability
}
