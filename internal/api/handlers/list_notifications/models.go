package list_notifications

import (
	"encoding/json"
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// NotificationResponse одно уведомление
type NotificationResponse struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NotificationListResponse HTTP response model
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// FromDomainNotifications конвертирует доменные уведомления в HTTP response
func FromDomainNotifications(notifications []domain.Notification) *NotificationListResponse {
	result := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, NotificationResponse{
			ID:        n.ID,
			Email:     n.Email,
			Type:      n.Type,
			Payload:   n.Payload,
			CreatedAt: n.CreatedAt,
		})
	}
	return &NotificationListResponse{Notifications: result}
}
