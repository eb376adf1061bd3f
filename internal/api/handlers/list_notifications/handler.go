package list_notifications

import (
	"errors"
	"net/http"

	"github.com/courtflow/CF-BookingEngine/internal/api/handlers"
	notificationsService "github.com/courtflow/CF-BookingEngine/internal/service/notifications"
)

const msgEmailRequired = "параметр email обязателен"

type Handler struct {
	service NotificationsService
	logger  Logger
}

func NewHandler(service NotificationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/notifications?email=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	result, err := h.service.ListByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, notificationsService.ErrInvalidInput):
			h.logger.Warn("GET /notifications - Missing email parameter")
			handlers.RespondBadRequest(w, msgEmailRequired)

		default:
			h.logger.Error("GET /notifications - Failed to list notifications: email=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /notifications - email=%s, %d notifications", email, len(result))
	handlers.RespondJSON(w, http.StatusOK, FromDomainNotifications(result))
}
