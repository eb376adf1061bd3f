package get_bookings

import (
	"errors"
	"net/http"

	"github.com/courtflow/CF-BookingEngine/internal/api/handlers"
	bookingsService "github.com/courtflow/CF-BookingEngine/internal/service/bookings"
)

const msgEmailRequired = "параметр email обязателен"

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?email=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	result, err := h.service.ListByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Missing email parameter")
			handlers.RespondBadRequest(w, msgEmailRequired)

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: email=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - email=%s, %d bookings", email, len(result))
	handlers.RespondJSON(w, http.StatusOK, FromDomainBookings(result))
}
