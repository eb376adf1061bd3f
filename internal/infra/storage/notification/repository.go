package notification

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	"github.com/courtflow/CF-BookingEngine/pkg/dbmetrics"
	"github.com/courtflow/CF-BookingEngine/pkg/psqlbuilder"
)

// Repository репозиторий уведомлений. Уведомления создаются в той же
// транзакции, что и породившее их событие: нет события без уведомления
// и наоборот.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление
func (r *Repository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("email", "type", "payload").
		Values(n.Email, n.Type, []byte(n.Payload)).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - insert notification: %v", ErrExecQuery, err)
	}

	return n, nil
}

// ListByEmail получает последние уведомления клиента, новые первыми
func (r *Repository) ListByEmail(ctx context.Context, email string, limit int) ([]domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "email", "type", "payload", "created_at").
		From("notifications").
		Where(squirrel.Eq{"email": email}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]domain.Notification, 0)
	for rows.Next() {
		var (
			n       domain.Notification
			payload []byte
		)
		if err := rows.Scan(&n.ID, &n.Email, &n.Type, &payload, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByEmail - scan row: %v", ErrScanRow, err)
		}
		n.Payload = payload
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}
