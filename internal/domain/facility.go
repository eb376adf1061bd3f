package domain

import (
	"time"

	"github.com/courtflow/CF-BookingEngine/pkg/types"
)

// FacilityConfig represents the singleton facility configuration:
// working hours, slot duration and the facility-local timezone label.
type FacilityConfig struct {
	ID          string
	Timezone    string
	OpenTime    types.TimeString
	CloseTime   types.TimeString
	SlotMinutes int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Location returns the facility-local time zone.
// Only the single facility-local clock is supported ("local").
func (c *FacilityConfig) Location() *time.Location {
	return time.Local
}
