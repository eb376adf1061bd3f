package domain

import (
	"encoding/json"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a confirmed facility booking.
// История не удаляется физически: единственный переход статуса —
// confirmed → cancelled.
type Booking struct {
	ID              int64
	CustomerName    string
	CustomerEmail   string
	StartAt         time.Time
	EndAt           time.Time
	Status          BookingStatus
	PriceTotalCents int64
	PriceBreakdown  json.RawMessage
	CancelledAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CourtReservation строка резервирования корта с собственной копией интервала
type CourtReservation struct {
	ID        int64
	BookingID int64
	CourtID   int64
	StartAt   time.Time
	EndAt     time.Time
}

// CoachReservation строка резервирования тренера
type CoachReservation struct {
	ID        int64
	BookingID int64
	CoachID   int64
	StartAt   time.Time
	EndAt     time.Time
}

// EquipmentReservation строка резервирования количества инвентаря одного типа
type EquipmentReservation struct {
	ID              int64
	BookingID       int64
	EquipmentTypeID int64
	Quantity        int
	StartAt         time.Time
	EndAt           time.Time
}

// ReservedCourt корт, удерживаемый бронированием (для отмены и истории)
type ReservedCourt struct {
	CourtID int64
	Name    string
	Surface CourtSurface
}

// ReservedCoach тренер, удерживаемый бронированием
type ReservedCoach struct {
	CoachID int64
	Name    string
}

// ReservedEquipmentLine строка инвентаря в составе бронирования
type ReservedEquipmentLine struct {
	EquipmentTypeID int64
	Name            string
	Quantity        int
}

// BookingWithResources бронирование вместе с деталями ресурсов (история клиента)
type BookingWithResources struct {
	Booking   Booking
	Court     *ReservedCourt
	Coach     *ReservedCoach
	Equipment []ReservedEquipmentLine
}
