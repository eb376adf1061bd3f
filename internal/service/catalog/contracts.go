package catalog

import (
	"context"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога ресурсов
type CatalogRepository interface {
	GetFacilityConfig(ctx context.Context) (*domain.FacilityConfig, error)
	ListCourts(ctx context.Context) ([]domain.Court, error)
	ListCoaches(ctx context.Context) ([]domain.Coach, error)
	ListEquipmentTypes(ctx context.Context) ([]domain.EquipmentType, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
