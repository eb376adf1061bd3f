package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	"github.com/courtflow/CF-BookingEngine/pkg/dbmetrics"
	"github.com/courtflow/CF-BookingEngine/pkg/psqlbuilder"
	"github.com/courtflow/CF-BookingEngine/pkg/types"
)

// Repository репозиторий каталога ресурсов площадки (ConfigStore).
// Ядро только читает эти данные; изменяются они админкой вне сервиса.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetFacilityConfig получает singleton-конфигурацию площадки
func (r *Repository) GetFacilityConfig(ctx context.Context) (*domain.FacilityConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"timezone",
		"open_time",
		"close_time",
		"slot_minutes",
		"created_at",
		"updated_at",
	).
		From("facility_config").
		Where(squirrel.Eq{"id": domain.FacilityConfigID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetFacilityConfig - build select query: %v", ErrBuildQuery, err)
	}

	var cfg domain.FacilityConfig
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&cfg.Timezone,
		&cfg.OpenTime,
		&cfg.CloseTime,
		&cfg.SlotMinutes,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetFacilityConfig - scan config: %v", ErrScanRow, err)
	}

	return &cfg, nil
}

// ListCourts получает все корты (включая неактивные) для сводки площадки
func (r *Repository) ListCourts(ctx context.Context) ([]domain.Court, error) {
	return r.listCourts(ctx, false)
}

// ListActiveCourts получает активные корты, отсортированные по поверхности и имени
func (r *Repository) ListActiveCourts(ctx context.Context) ([]domain.Court, error) {
	return r.listCourts(ctx, true)
}

func (r *Repository) listCourts(ctx context.Context, onlyActive bool) ([]domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"surface",
		"base_rate_cents_per_hour",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("courts").
		OrderBy("surface ASC", "name ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listCourts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listCourts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courts := make([]domain.Court, 0)
	for rows.Next() {
		var c domain.Court
		if err := rows.Scan(&c.ID, &c.Name, &c.Surface, &c.BaseRateCentsPerHour, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: listCourts - scan row: %v", ErrScanRow, err)
		}
		courts = append(courts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listCourts - rows error: %v", ErrScanRow, err)
	}

	return courts, nil
}

// GetActiveCourt получает активный корт по ID
func (r *Repository) GetActiveCourt(ctx context.Context, id int64) (*domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"surface",
		"base_rate_cents_per_hour",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("courts").
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveCourt - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Court
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.Surface, &c.BaseRateCentsPerHour, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCourtNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveCourt - scan court: %v", ErrScanRow, err)
	}

	return &c, nil
}

// ListCoaches получает всех тренеров для сводки площадки
func (r *Repository) ListCoaches(ctx context.Context) ([]domain.Coach, error) {
	return r.listCoaches(ctx, false)
}

// ListActiveCoaches получает активных тренеров, отсортированных по имени
func (r *Repository) ListActiveCoaches(ctx context.Context) ([]domain.Coach, error) {
	return r.listCoaches(ctx, true)
}

func (r *Repository) listCoaches(ctx context.Context, onlyActive bool) ([]domain.Coach, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"hourly_rate_cents",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("coaches").
		OrderBy("name ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listCoaches - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listCoaches - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	coaches := make([]domain.Coach, 0)
	for rows.Next() {
		var c domain.Coach
		if err := rows.Scan(&c.ID, &c.Name, &c.HourlyRateCents, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: listCoaches - scan row: %v", ErrScanRow, err)
		}
		coaches = append(coaches, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listCoaches - rows error: %v", ErrScanRow, err)
	}

	return coaches, nil
}

// GetActiveCoach получает активного тренера по ID
func (r *Repository) GetActiveCoach(ctx context.Context, id int64) (*domain.Coach, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"hourly_rate_cents",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("coaches").
		Where(squirrel.Eq{"id": id, "is_active": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveCoach - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Coach
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID, &c.Name, &c.HourlyRateCents, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCoachNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveCoach - scan coach: %v", ErrScanRow, err)
	}

	return &c, nil
}

// ListActiveCoachWindows получает активные недельные окна доступности
// тренеров на указанный день недели (0 = воскресенье)
func (r *Repository) ListActiveCoachWindows(ctx context.Context, dayOfWeek int) ([]domain.CoachAvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"coach_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_active",
		"created_at",
	).
		From("coach_availability").
		Where(squirrel.Eq{"day_of_week": dayOfWeek, "is_active": true}).
		OrderBy("coach_id ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveCoachWindows - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveCoachWindows - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]domain.CoachAvailabilityWindow, 0)
	for rows.Next() {
		var w domain.CoachAvailabilityWindow
		if err := rows.Scan(&w.ID, &w.CoachID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &w.IsActive, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListActiveCoachWindows - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveCoachWindows - rows error: %v", ErrScanRow, err)
	}

	return windows, nil
}

// ListEquipmentTypes получает все типы инвентаря для сводки площадки
func (r *Repository) ListEquipmentTypes(ctx context.Context) ([]domain.EquipmentType, error) {
	return r.listEquipmentTypes(ctx, nil, false)
}

// ListActiveEquipmentTypes получает активные типы инвентаря
func (r *Repository) ListActiveEquipmentTypes(ctx context.Context) ([]domain.EquipmentType, error) {
	return r.listEquipmentTypes(ctx, nil, true)
}

// GetActiveEquipmentTypes получает активные типы инвентаря по списку ID
func (r *Repository) GetActiveEquipmentTypes(ctx context.Context, ids []int64) ([]domain.EquipmentType, error) {
	if len(ids) == 0 {
		return []domain.EquipmentType{}, nil
	}
	return r.listEquipmentTypes(ctx, ids, true)
}

func (r *Repository) listEquipmentTypes(ctx context.Context, ids []int64, onlyActive bool) ([]domain.EquipmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"name",
		"unit_price_cents",
		"total_quantity",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("equipment_types").
		OrderBy("name ASC")

	if onlyActive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}
	if ids != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"id": ids})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listEquipmentTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listEquipmentTypes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	equipmentTypes := make([]domain.EquipmentType, 0)
	for rows.Next() {
		var et domain.EquipmentType
		if err := rows.Scan(&et.ID, &et.Name, &et.UnitPriceCents, &et.TotalQuantity, &et.IsActive, &et.CreatedAt, &et.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: listEquipmentTypes - scan row: %v", ErrScanRow, err)
		}
		equipmentTypes = append(equipmentTypes, et)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listEquipmentTypes - rows error: %v", ErrScanRow, err)
	}

	return equipmentTypes, nil
}

// LockEquipmentType берёт эксклюзивную блокировку строки типа инвентаря
// (SELECT ... FOR UPDATE) и возвращает её актуальное состояние.
// Используется только внутри транзакции для сериализации конкурентных
// проверок количества; вызывающий обязан соблюдать фиксированный
// порядок блокировок по возрастанию ID.
func (r *Repository) LockEquipmentType(ctx context.Context, id int64) (*domain.EquipmentType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"unit_price_cents",
		"total_quantity",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("equipment_types").
		Where(squirrel.Eq{"id": id, "is_active": true}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: LockEquipmentType - build select query: %v", ErrBuildQuery, err)
	}

	var et domain.EquipmentType
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&et.ID, &et.Name, &et.UnitPriceCents, &et.TotalQuantity, &et.IsActive, &et.CreatedAt, &et.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEquipmentTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: LockEquipmentType - scan equipment type: %v", ErrScanRow, err)
	}

	return &et, nil
}

// ListActivePricingRules получает все активные правила ценообразования
func (r *Repository) ListActivePricingRules(ctx context.Context) ([]domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"is_active",
		"priority",
		"applies_to",
		"day_type",
		"start_time",
		"end_time",
		"court_surface",
		"coach_id",
		"equipment_type_id",
		"multiplier_bps",
		"add_cents",
		"created_at",
		"updated_at",
	).
		From("pricing_rules").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("priority ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActivePricingRules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActivePricingRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]domain.PricingRule, 0)
	for rows.Next() {
		var (
			rule         domain.PricingRule
			startTime    sql.NullString
			endTime      sql.NullString
			courtSurface sql.NullString
			coachID      sql.NullInt64
			equipmentID  sql.NullInt64
		)

		err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&rule.IsActive,
			&rule.Priority,
			&rule.AppliesTo,
			&rule.DayType,
			&startTime,
			&endTime,
			&courtSurface,
			&coachID,
			&equipmentID,
			&rule.MultiplierBps,
			&rule.AddCents,
			&rule.CreatedAt,
			&rule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActivePricingRules - scan row: %v", ErrScanRow, err)
		}

		if startTime.Valid {
			ts := types.TimeString(startTime.String)
			rule.StartTime = &ts
		}
		if endTime.Valid {
			ts := types.TimeString(endTime.String)
			rule.EndTime = &ts
		}
		if courtSurface.Valid {
			surface := domain.CourtSurface(courtSurface.String)
			rule.CourtSurface = &surface
		}
		if coachID.Valid {
			rule.CoachID = &coachID.Int64
		}
		if equipmentID.Valid {
			rule.EquipmentTypeID = &equipmentID.Int64
		}

		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActivePricingRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
