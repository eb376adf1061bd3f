package get_waitlist

import (
	"errors"
	"net/http"

	"github.com/courtflow/CF-BookingEngine/internal/api/handlers"
	waitlistService "github.com/courtflow/CF-BookingEngine/internal/service/waitlist"
)

const msgEmailRequired = "параметр email обязателен"

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/waitlist?email=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	result, err := h.service.ListByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, waitlistService.ErrInvalidInput):
			h.logger.Warn("GET /waitlist - Missing email parameter")
			handlers.RespondBadRequest(w, msgEmailRequired)

		default:
			h.logger.Error("GET /waitlist - Failed to list entries: email=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /waitlist - email=%s, %d entries", email, len(result))
	handlers.RespondJSON(w, http.StatusOK, FromDomainEntries(result))
}
