package join_waitlist

import (
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	joinWaitlist "github.com/courtflow/CF-BookingEngine/internal/usecase/join_waitlist"
)

// JoinWaitlistRequest HTTP request model
type JoinWaitlistRequest struct {
	CustomerName     string    `json:"customerName"`
	CustomerEmail    string    `json:"customerEmail"`
	StartAt          time.Time `json:"startAt"`
	EndAt            time.Time `json:"endAt"`
	PreferredSurface *string   `json:"preferredSurface,omitempty"`
	WantsCoach       bool      `json:"wantsCoach"`
}

// JoinWaitlistResponse HTTP response model
type JoinWaitlistResponse struct {
	EntryID   int64     `json:"entryId"`
	QueueKey  string    `json:"queueKey"`
	Position  int       `json:"position"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *JoinWaitlistRequest) ToUseCaseRequest() *joinWaitlist.Request {
	var surface *domain.CourtSurface
	if r.PreferredSurface != nil {
		s := domain.CourtSurface(*r.PreferredSurface)
		surface = &s
	}

	return &joinWaitlist.Request{
		CustomerName:     r.CustomerName,
		CustomerEmail:    r.CustomerEmail,
		StartAt:          r.StartAt,
		EndAt:            r.EndAt,
		PreferredSurface: surface,
		WantsCoach:       r.WantsCoach,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *joinWaitlist.Response) *JoinWaitlistResponse {
	return &JoinWaitlistResponse{
		EntryID:   resp.EntryID,
		QueueKey:  resp.QueueKey,
		Position:  resp.Position,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt,
	}
}
