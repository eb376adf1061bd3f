package get_waitlist

import (
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// WaitlistEntryResponse одна запись листа ожидания
type WaitlistEntryResponse struct {
	ID               int64      `json:"id"`
	CustomerName     string     `json:"customerName"`
	CustomerEmail    string     `json:"customerEmail"`
	StartAt          time.Time  `json:"startAt"`
	EndAt            time.Time  `json:"endAt"`
	PreferredSurface *string    `json:"preferredSurface,omitempty"`
	WantsCoach       bool       `json:"wantsCoach"`
	Status           string     `json:"status"`
	Position         int        `json:"position"`
	CreatedAt        time.Time  `json:"createdAt"`
	NotifiedAt       *time.Time `json:"notifiedAt,omitempty"`
}

// WaitlistListResponse HTTP response model
type WaitlistListResponse struct {
	Entries []WaitlistEntryResponse `json:"entries"`
}

// FromDomainEntries конвертирует доменные записи в HTTP response
func FromDomainEntries(entries []domain.WaitlistEntry) *WaitlistListResponse {
	result := make([]WaitlistEntryResponse, 0, len(entries))
	for _, e := range entries {
		var surface *string
		if e.PreferredSurface != nil {
			s := string(*e.PreferredSurface)
			surface = &s
		}
		result = append(result, WaitlistEntryResponse{
			ID:               e.ID,
			CustomerName:     e.CustomerName,
			CustomerEmail:    e.CustomerEmail,
			StartAt:          e.StartAt,
			EndAt:            e.EndAt,
			PreferredSurface: surface,
			WantsCoach:       e.WantsCoach,
			Status:           string(e.Status),
			Position:         e.Position,
			CreatedAt:        e.CreatedAt,
			NotifiedAt:       e.NotifiedAt,
		})
	}
	return &WaitlistListResponse{Entries: result}
}
