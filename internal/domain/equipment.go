package domain

import "time"

// EquipmentType represents a pooled countable equipment resource
// (rackets, ball machines). Units are not individually tracked,
// only the total owned quantity.
type EquipmentType struct {
	ID             int64
	Name           string
	UnitPriceCents int64
	TotalQuantity  int
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
