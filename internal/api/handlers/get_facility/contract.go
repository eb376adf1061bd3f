package get_facility

import (
	"context"

	catalogService "github.com/courtflow/CF-BookingEngine/internal/service/catalog"
)

type CatalogService interface {
	GetFacilitySnapshot(ctx context.Context) (*catalogService.FacilitySnapshot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
