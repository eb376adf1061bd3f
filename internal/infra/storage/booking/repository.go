package booking

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

// Repository репозиторий бронирований и строк резервирования ресурсов.
// Строки в booking_courts / booking_coaches несут собственную копию
// интервала: на них держатся EXCLUDE-ограничения БД, которые и дают
// гарантию отсутствия двойного бронирования.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет бронирование. Вызывается только внутри транзакции.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_name",
			"customer_email",
			"start_at",
			"end_at",
			"status",
			"price_total_cents",
			"price_breakdown",
		).
		Values(
			booking.CustomerName,
			booking.CustomerEmail,
			booking.StartAt,
			booking.EndAt,
			booking.Status,
			booking.PriceTotalCents,
			[]byte(booking.PriceBreakdown),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - insert booking: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// ReserveCourt вставляет строку резервирования корта. Именно здесь БД
// проверяет ограничение booking_courts_no_overlap.
func (r *Repository) ReserveCourt(ctx context.Context, bookingID, courtID int64, startAt, endAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_courts").
		Columns("booking_id", "court_id", "start_at", "end_at").
		Values(bookingID, courtID, startAt, endAt).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReserveCourt - build insert query: %v", ErrBuildQuery, err)
	}

	// Ошибка драйвера остаётся в цепочке: по коду pq различают
	// проигранную гонку (нарушение EXCLUDE) и прочие сбои.
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReserveCourt - insert reservation: %w", ErrExecQuery, err)
	}

	return nil
}

// ReserveCoach вставляет строку резервирования тренера
// (ограничение booking_coaches_no_overlap)
func (r *Repository) ReserveCoach(ctx context.Context, bookingID, coachID int64, startAt, endAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_coaches").
		Columns("booking_id", "coach_id", "start_at", "end_at").
		Values(bookingID, coachID, startAt, endAt).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReserveCoach - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReserveCoach - insert reservation: %w", ErrExecQuery, err)
	}

	return nil
}

// ReserveEquipment вставляет строку резервирования количества инвентаря
func (r *Repository) ReserveEquipment(ctx context.Context, bookingID, equipmentTypeID int64, quantity int, startAt, endAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_equipment").
		Columns("booking_id", "equipment_type_id", "quantity", "start_at", "end_at").
		Values(bookingID, equipmentTypeID, quantity, startAt, endAt).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReserveEquipment - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReserveEquipment - insert reservation: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookingColumns().
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBookingRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByIDForUpdate получает бронирование по ID под блокировкой строки.
// Сериализует конкурентные отмены одного и того же бронирования.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookingColumns().
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBookingRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDForUpdate - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Cancel переводит бронирование в статус cancelled
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", cancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Cancel - update booking: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteReservations удаляет строки резервирования бронирования.
// Освобождает интервалы из-под EXCLUDE-ограничений при отмене.
func (r *Repository) DeleteReservations(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	for _, table := range []string{"booking_courts", "booking_coaches", "booking_equipment"} {
		query, args, err := psqlbuilder.Delete(table).
			Where(squirrel.Eq{"booking_id": bookingID}).
			ToSql()

		if err != nil {
			return fmt.Errorf("%w: DeleteReservations - build delete query for %s: %v", ErrBuildQuery, table, err)
		}

		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: DeleteReservations - delete from %s: %v", ErrExecQuery, table, err)
		}
	}

	return nil
}

// GetReservedCourt получает корт, удерживаемый бронированием (nil если корт не резервировался)
func (r *Repository) GetReservedCourt(ctx context.Context, bookingID int64) (*domain.ReservedCourt, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("bc.court_id", "c.name", "c.surface").
		From("booking_courts bc").
		Join("courts c ON c.id = bc.court_id").
		Where(squirrel.Eq{"bc.booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetReservedCourt - build select query: %v", ErrBuildQuery, err)
	}

	var rc domain.ReservedCourt
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rc.CourtID, &rc.Name, &rc.Surface)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetReservedCourt - scan row: %v", ErrScanRow, err)
	}

	return &rc, nil
}

// GetReservedCoach получает тренера, удерживаемого бронированием (nil если тренер не резервировался)
func (r *Repository) GetReservedCoach(ctx context.Context, bookingID int64) (*domain.ReservedCoach, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("bc.coach_id", "c.name").
		From("booking_coaches bc").
		Join("coaches c ON c.id = bc.coach_id").
		Where(squirrel.Eq{"bc.booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetReservedCoach - build select query: %v", ErrBuildQuery, err)
	}

	var rc domain.ReservedCoach
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rc.CoachID, &rc.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetReservedCoach - scan row: %v", ErrScanRow, err)
	}

	return &rc, nil
}

// GetReservedEquipment получает строки инвентаря бронирования
func (r *Repository) GetReservedEquipment(ctx context.Context, bookingID int64) ([]domain.ReservedEquipmentLine, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("be.equipment_type_id", "et.name", "be.quantity").
		From("booking_equipment be").
		Join("equipment_types et ON et.id = be.equipment_type_id").
		Where(squirrel.Eq{"be.booking_id": bookingID}).
		OrderBy("be.equipment_type_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetReservedEquipment - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetReservedEquipment - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	lines := make([]domain.ReservedEquipmentLine, 0)
	for rows.Next() {
		var line domain.ReservedEquipmentLine
		if err := rows.Scan(&line.EquipmentTypeID, &line.Name, &line.Quantity); err != nil {
			return nil, fmt.Errorf("%w: GetReservedEquipment - scan row: %v", ErrScanRow, err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetReservedEquipment - rows error: %v", ErrScanRow, err)
	}

	return lines, nil
}

// ListByEmail получает бронирования клиента вместе с деталями ресурсов,
// новые первыми
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]domain.BookingWithResources, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookingColumns().
		Where(squirrel.Eq{"customer_email": email}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByEmail - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - rows error: %v", ErrScanRow, err)
	}

	result := make([]domain.BookingWithResources, 0, len(bookings))
	for i := range bookings {
		court, err := r.GetReservedCourt(ctx, bookings[i].ID)
		if err != nil {
			return nil, err
		}
		coach, err := r.GetReservedCoach(ctx, bookings[i].ID)
		if err != nil {
			return nil, err
		}
		equipment, err := r.GetReservedEquipment(ctx, bookings[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.BookingWithResources{
			Booking:   bookings[i],
			Court:     court,
			Coach:     coach,
			Equipment: equipment,
		})
	}

	return result, nil
}

// CourtReservationsInRange получает строки резервирования кортов,
// пересекающие полуоткрытый интервал [from, to)
func (r *Repository) CourtReservationsInRange(ctx context.Context, from, to time.Time) ([]domain.CourtReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "court_id", "start_at", "end_at").
		From("booking_courts").
		Where(squirrel.And{
			squirrel.Lt{"start_at": to},
			squirrel.Gt{"end_at": from},
		}).
		OrderBy("start_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CourtReservationsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CourtReservationsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]domain.CourtReservation, 0)
	for rows.Next() {
		var cr domain.CourtReservation
		if err := rows.Scan(&cr.ID, &cr.BookingID, &cr.CourtID, &cr.StartAt, &cr.EndAt); err != nil {
			return nil, fmt.Errorf("%w: CourtReservationsInRange - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, cr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CourtReservationsInRange - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// CoachReservationsInRange получает строки резервирования тренеров,
// пересекающие полуоткрытый интервал [from, to)
func (r *Repository) CoachReservationsInRange(ctx context.Context, from, to time.Time) ([]domain.CoachReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "coach_id", "start_at", "end_at").
		From("booking_coaches").
		Where(squirrel.And{
			squirrel.Lt{"start_at": to},
			squirrel.Gt{"end_at": from},
		}).
		OrderBy("start_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CoachReservationsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CoachReservationsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]domain.CoachReservation, 0)
	for rows.Next() {
		var cr domain.CoachReservation
		if err := rows.Scan(&cr.ID, &cr.BookingID, &cr.CoachID, &cr.StartAt, &cr.EndAt); err != nil {
			return nil, fmt.Errorf("%w: CoachReservationsInRange - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, cr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CoachReservationsInRange - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// EquipmentReservationsInRange получает строки резервирования инвентаря,
// пересекающие полуоткрытый интервал [from, to)
func (r *Repository) EquipmentReservationsInRange(ctx context.Context, from, to time.Time) ([]domain.EquipmentReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "equipment_type_id", "quantity", "start_at", "end_at").
		From("booking_equipment").
		Where(squirrel.And{
			squirrel.Lt{"start_at": to},
			squirrel.Gt{"end_at": from},
		}).
		OrderBy("start_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: EquipmentReservationsInRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: EquipmentReservationsInRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]domain.EquipmentReservation, 0)
	for rows.Next() {
		var er domain.EquipmentReservation
		if err := rows.Scan(&er.ID, &er.BookingID, &er.EquipmentTypeID, &er.Quantity, &er.StartAt, &er.EndAt); err != nil {
			return nil, fmt.Errorf("%w: EquipmentReservationsInRange - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, er)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: EquipmentReservationsInRange - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// SumEquipmentReserved считает суммарно занятое количество одного типа
// инвентаря на интервалах, пересекающих [from, to). Вызывается под
// блокировкой строки типа инвентаря.
func (r *Repository) SumEquipmentReserved(ctx context.Context, equipmentTypeID int64, from, to time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(quantity), 0)").
		From("booking_equipment").
		Where(squirrel.And{
			squirrel.Eq{"equipment_type_id": equipmentTypeID},
			squirrel.Lt{"start_at": to},
			squirrel.Gt{"end_at": from},
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumEquipmentReserved - build select query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumEquipmentReserved - scan sum: %v", ErrScanRow, err)
	}

	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func selectBookingColumns() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"customer_name",
		"customer_email",
		"start_at",
		"end_at",
		"status",
		"price_total_cents",
		"price_breakdown",
		"cancelled_at",
		"created_at",
		"updated_at",
	).From("bookings")
}

func scanBookingRow(row rowScanner) (*domain.Booking, error) {
	var (
		b           domain.Booking
		breakdown   []byte
		cancelledAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.StartAt,
		&b.EndAt,
		&b.Status,
		&b.PriceTotalCents,
		&breakdown,
		&cancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.PriceBreakdown = breakdown
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}

	return &b, nil
}
