package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	catalogRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/catalog"
)

// FacilitySnapshot сводка площадки: конфигурация и все ресурсы,
// включая неактивные
type FacilitySnapshot struct {
	Config         domain.FacilityConfig
	Courts         []domain.Court
	Coaches        []domain.Coach
	EquipmentTypes []domain.EquipmentType
}

// Service сервис чтения сводки площадки
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// GetFacilitySnapshot получает сводку площадки
func (s *Service) GetFacilitySnapshot(ctx context.Context) (*FacilitySnapshot, error) {
	s.logger.Info("GetFacilitySnapshot: fetching facility snapshot")

	config, err := s.catalogRepo.GetFacilityConfig(ctx)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrConfigNotFound) {
			s.logger.Error("GetFacilitySnapshot: facility config missing")
			return nil, ErrConfigMissing
		}
		s.logger.Error("GetFacilitySnapshot: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: GetFacilitySnapshot - failed to get config: %v", ErrInternal, err)
	}

	courts, err := s.catalogRepo.ListCourts(ctx)
	if err != nil {
		s.logger.Error("GetFacilitySnapshot: failed to list courts: %v", err)
		return nil, fmt.Errorf("%w: GetFacilitySnapshot - failed to list courts: %v", ErrInternal, err)
	}

	coaches, err := s.catalogRepo.ListCoaches(ctx)
	if err != nil {
		s.logger.Error("GetFacilitySnapshot: failed to list coaches: %v", err)
		return nil, fmt.Errorf("%w: GetFacilitySnapshot - failed to list coaches: %v", ErrInternal, err)
	}

	equipmentTypes, err := s.catalogRepo.ListEquipmentTypes(ctx)
	if err != nil {
		s.logger.Error("GetFacilitySnapshot: failed to list equipment types: %v", err)
		return nil, fmt.Errorf("%w: GetFacilitySnapshot - failed to list equipment types: %v", ErrInternal, err)
	}

	return &FacilitySnapshot{
		Config:         *config,
		Courts:         courts,
		Coaches:        coaches,
		EquipmentTypes: equipmentTypes,
	}, nil
}
