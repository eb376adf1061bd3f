package quote_price

import (
	"errors"
	"net/http"

	"github.com/courtflow/CF-BookingEngine/internal/api/handlers"
	quotePrice "github.com/courtflow/CF-BookingEngine/internal/usecase/quote_price"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные входные данные"
	msgCourtNotFound      = "корт не найден"
	msgCoachNotFound      = "тренер не найден"
	msgEquipmentNotFound  = "тип инвентаря не найден"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuotePriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, quotePrice.ErrCourtNotFound):
			h.logger.Warn("POST /quotes - Court not found: court_id=%d", req.CourtID)
			handlers.RespondNotFound(w, msgCourtNotFound)

		case errors.Is(err, quotePrice.ErrCoachNotFound):
			h.logger.Warn("POST /quotes - Coach not found")
			handlers.RespondNotFound(w, msgCoachNotFound)

		case errors.Is(err, quotePrice.ErrEquipmentTypeNotFound):
			h.logger.Warn("POST /quotes - Equipment type not found")
			handlers.RespondNotFound(w, msgEquipmentNotFound)

		default:
			h.logger.Error("POST /quotes - Failed to quote price: court_id=%d, error=%v", req.CourtID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quoted: court_id=%d, total=%d cents", req.CourtID, result.Breakdown.TotalCents)
	handlers.RespondJSON(w, http.StatusOK, &QuotePriceResponse{PriceBreakdown: result.Breakdown})
}
