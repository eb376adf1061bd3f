package quote_price

import (
	"context"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога ресурсов
type CatalogRepository interface {
	GetActiveCourt(ctx context.Context, id int64) (*domain.Court, error)
	GetActiveCoach(ctx context.Context, id int64) (*domain.Coach, error)
	GetActiveEquipmentTypes(ctx context.Context, ids []int64) ([]domain.EquipmentType, error)
	ListActivePricingRules(ctx context.Context) ([]domain.PricingRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
