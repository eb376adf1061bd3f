package domain

import "time"

// CourtSurface represents the surface type of a court
type CourtSurface string

const (
	SurfaceIndoor  CourtSurface = "INDOOR"
	SurfaceOutdoor CourtSurface = "OUTDOOR"
)

// Valid returns true if the surface is a known value
func (s CourtSurface) Valid() bool {
	return s == SurfaceIndoor || s == SurfaceOutdoor
}

// Court represents a bookable court
type Court struct {
	ID                   int64
	Name                 string
	Surface              CourtSurface
	BaseRateCentsPerHour int64
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
