package domain

import (
	"fmt"
	"time"
)

// WaitlistStatus represents the status of a waitlist entry
type WaitlistStatus string

const (
	WaitlistQueued   WaitlistStatus = "queued"
	WaitlistNotified WaitlistStatus = "notified"
)

// WaitlistEntry запись листа ожидания. Записи с одинаковой сигнатурой
// спроса (интервал + предпочтение поверхности + потребность в тренере)
// образуют одну FIFO-очередь: позиция = max(позиция среди ожидающих) + 1.
// Записи никогда не переупорядочиваются и не удаляются.
type WaitlistEntry struct {
	ID               int64
	CustomerName     string
	CustomerEmail    string
	StartAt          time.Time
	EndAt            time.Time
	PreferredSurface *CourtSurface
	WantsCoach       bool
	QueueKey         string
	Status           WaitlistStatus
	Position         int
	CreatedAt        time.Time
	NotifiedAt       *time.Time
}

// BuildQueueKey строит ключ очереди из сигнатуры спроса.
// Одинаковые сигнатуры попадают в одну FIFO-очередь.
func BuildQueueKey(startAt, endAt time.Time, preferredSurface *CourtSurface, wantsCoach bool) string {
	surfaceKey := "ANY"
	if preferredSurface != nil {
		surfaceKey = string(*preferredSurface)
	}
	coachKey := "NOCOACH"
	if wantsCoach {
		coachKey = "COACH"
	}
	return fmt.Sprintf("%s|%s|%s|%s",
		startAt.UTC().Format(time.RFC3339),
		endAt.UTC().Format(time.RFC3339),
		surfaceKey,
		coachKey,
	)
}
