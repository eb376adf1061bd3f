package domain

import (
	"encoding/json"
	"time"
)

// Notification append-only запись уведомления, читается поллингом
type Notification struct {
	ID        int64
	Email     string
	Type      string
	Payload   json.RawMessage
	CreatedAt time.Time
}

// NotificationWaitlistAvailable тип уведомления о освободившемся слоте
const NotificationWaitlistAvailable = "WAITLIST_AVAILABLE"
