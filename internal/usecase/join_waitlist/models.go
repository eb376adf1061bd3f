package join_waitlist

import (
	"time"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
)

// Request модель запроса на вступление в лист ожидания
type Request struct {
	CustomerName     string
	CustomerEmail    string
	StartAt          time.Time
	EndAt            time.Time
	PreferredSurface *domain.CourtSurface
	WantsCoach       bool
}

// Response модель ответа с созданной записью
type Response struct {
	EntryID   int64
	QueueKey  string
	Position  int
	Status    string
	CreatedAt time.Time
}
