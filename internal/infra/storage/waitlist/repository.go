package waitlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	"github.com/courtflow/CF-BookingEngine/pkg/dbmetrics"
	"github.com/courtflow/CF-BookingEngine/pkg/psqlbuilder"
)

// Repository репозиторий листа ожидания. Позиции внутри очереди
// (queue_key) монотонно растут и никогда не переиспользуются.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LastPosition получает максимальную позицию среди ожидающих записей
// очереди под блокировкой её строк. Вызывается внутри транзакции:
// конкурентные вступления в одну очередь сериализуются и не получают
// одинаковую позицию.
func (r *Repository) LastPosition(ctx context.Context, queueKey string) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("position").
		From("waitlist_entries").
		Where(squirrel.Eq{"queue_key": queueKey, "status": domain.WaitlistQueued}).
		OrderBy("position DESC").
		Limit(1).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: LastPosition - build select query: %v", ErrBuildQuery, err)
	}

	var position int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&position)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: LastPosition - scan position: %v", ErrScanRow, err)
	}

	return position, nil
}

// Create сохраняет запись листа ожидания
func (r *Repository) Create(ctx context.Context, entry *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var preferredSurface any
	if entry.PreferredSurface != nil {
		preferredSurface = string(*entry.PreferredSurface)
	}

	query, args, err := psqlbuilder.Insert("waitlist_entries").
		Columns(
			"customer_name",
			"customer_email",
			"start_at",
			"end_at",
			"preferred_surface",
			"wants_coach",
			"queue_key",
			"status",
			"position",
		).
		Values(
			entry.CustomerName,
			entry.CustomerEmail,
			entry.StartAt,
			entry.EndAt,
			preferredSurface,
			entry.WantsCoach,
			entry.QueueKey,
			entry.Status,
			entry.Position,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - insert entry: %v", ErrExecQuery, err)
	}

	return entry, nil
}

// ListByEmail получает записи листа ожидания клиента, новые первыми
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectEntryColumns().
		Where(squirrel.Eq{"customer_email": email}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryEntries(ctx, executor, query, args, "ListByEmail")
}

// ListPromotionCandidates получает ожидающие записи на точный интервал,
// совместимые с освободившейся поверхностью (предпочтение ANY подходит
// к любой). Строки блокируются: конкурентные отмены не продвинут одну
// и ту же запись дважды. Порядок — возраст записи, затем позиция.
func (r *Repository) ListPromotionCandidates(ctx context.Context, startAt, endAt time.Time, freedSurface domain.CourtSurface) ([]domain.WaitlistEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectEntryColumns().
		Where(squirrel.And{
			squirrel.Eq{"status": domain.WaitlistQueued},
			squirrel.Eq{"start_at": startAt},
			squirrel.Eq{"end_at": endAt},
			squirrel.Or{
				squirrel.Eq{"preferred_surface": nil},
				squirrel.Eq{"preferred_surface": string(freedSurface)},
			},
		}).
		OrderBy("created_at ASC", "position ASC", "id ASC").
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPromotionCandidates - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryEntries(ctx, executor, query, args, "ListPromotionCandidates")
}

// MarkNotified переводит запись в статус notified
func (r *Repository) MarkNotified(ctx context.Context, id int64, notifiedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waitlist_entries").
		Set("status", domain.WaitlistNotified).
		Set("notified_at", notifiedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkNotified - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - update entry: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

func selectEntryColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"customer_name",
		"customer_email",
		"start_at",
		"end_at",
		"preferred_surface",
		"wants_coach",
		"queue_key",
		"status",
		"position",
		"created_at",
		"notified_at",
	).From("waitlist_entries")
}

func (r *Repository) queryEntries(ctx context.Context, executor DBExecutor, query string, args []any, method string) ([]domain.WaitlistEntry, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	entries := make([]domain.WaitlistEntry, 0)
	for rows.Next() {
		var (
			entry            domain.WaitlistEntry
			preferredSurface sql.NullString
			notifiedAt       sql.NullTime
		)

		err := rows.Scan(
			&entry.ID,
			&entry.CustomerName,
			&entry.CustomerEmail,
			&entry.StartAt,
			&entry.EndAt,
			&preferredSurface,
			&entry.WantsCoach,
			&entry.QueueKey,
			&entry.Status,
			&entry.Position,
			&entry.CreatedAt,
			&notifiedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}

		if preferredSurface.Valid {
			surface := domain.CourtSurface(preferredSurface.String)
			entry.PreferredSurface = &surface
		}
		if notifiedAt.Valid {
			entry.NotifiedAt = &notifiedAt.Time
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return entries, nil
}
