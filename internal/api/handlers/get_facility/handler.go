package get_facility

import (
	"errors"
	"net/http"

	"github.com/courtflow/CF-BookingEngine/internal/api/handlers"
	catalogService "github.com/courtflow/CF-BookingEngine/internal/service/catalog"
)

const msgConfigMissing = "конфигурация площадки отсутствует"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/facility
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetFacilitySnapshot(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrConfigMissing):
			h.logger.Error("GET /facility - Facility config missing")
			handlers.RespondError(w, http.StatusInternalServerError, msgConfigMissing)

		default:
			h.logger.Error("GET /facility - Failed to get snapshot: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /facility - snapshot: %d courts, %d coaches, %d equipment types",
		len(result.Courts), len(result.Coaches), len(result.EquipmentTypes))
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(result))
}
