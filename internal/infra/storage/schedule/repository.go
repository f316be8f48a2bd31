package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	"github.com/m04kA/BMP-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/BMP-ScheduleService/pkg/psqlbuilder"
)

// workingHoursColumns колонки таблицы working_hours в порядке сканирования
var workingHoursColumns = []string{
	"professional_id",
	"monday_start", "monday_end", "monday_enabled",
	"tuesday_start", "tuesday_end", "tuesday_enabled",
	"wednesday_start", "wednesday_end", "wednesday_enabled",
	"thursday_start", "thursday_end", "thursday_enabled",
	"friday_start", "friday_end", "friday_enabled",
	"saturday_start", "saturday_end", "saturday_enabled",
	"sunday_start", "sunday_end", "sunday_enabled",
	"created_at", "updated_at",
}

// Repository репозиторий для работы с расписанием профессионала:
// недельные рабочие часы и переопределения на конкретные даты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWorkingHours получает недельное расписание профессионала
// Возвращает ErrWorkingHoursNotFound, если запись отсутствует
func (r *Repository) GetWorkingHours(ctx context.Context, professionalID int64) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("working_hours").
		Where(squirrel.Eq{"professional_id": professionalID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	var wh domain.WorkingHours
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&wh.ProfessionalID,
		&wh.Monday.Start, &wh.Monday.End, &wh.Monday.Enabled,
		&wh.Tuesday.Start, &wh.Tuesday.End, &wh.Tuesday.Enabled,
		&wh.Wednesday.Start, &wh.Wednesday.End, &wh.Wednesday.Enabled,
		&wh.Thursday.Start, &wh.Thursday.End, &wh.Thursday.Enabled,
		&wh.Friday.Start, &wh.Friday.End, &wh.Friday.Enabled,
		&wh.Saturday.Start, &wh.Saturday.End, &wh.Saturday.Enabled,
		&wh.Sunday.Start, &wh.Sunday.End, &wh.Sunday.Enabled,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - scan working hours: %v", ErrScanRow, err)
	}

	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return &wh, nil
}

// SaveWorkingHours сохраняет недельное расписание целиком (upsert)
// Частичных обновлений по дням нет: вызывающая сторона всегда передает все семь дней
func (r *Repository) SaveWorkingHours(ctx context.Context, wh *domain.WorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("working_hours").
		Columns(
			"professional_id",
			"monday_start", "monday_end", "monday_enabled",
			"tuesday_start", "tuesday_end", "tuesday_enabled",
			"wednesday_start", "wednesday_end", "wednesday_enabled",
			"thursday_start", "thursday_end", "thursday_enabled",
			"friday_start", "friday_end", "friday_enabled",
			"saturday_start", "saturday_end", "saturday_enabled",
			"sunday_start", "sunday_end", "sunday_enabled",
		).
		Values(
			wh.ProfessionalID,
			wh.Monday.Start, wh.Monday.End, wh.Monday.Enabled,
			wh.Tuesday.Start, wh.Tuesday.End, wh.Tuesday.Enabled,
			wh.Wednesday.Start, wh.Wednesday.End, wh.Wednesday.Enabled,
			wh.Thursday.Start, wh.Thursday.End, wh.Thursday.Enabled,
			wh.Friday.Start, wh.Friday.End, wh.Friday.Enabled,
			wh.Saturday.Start, wh.Saturday.End, wh.Saturday.Enabled,
			wh.Sunday.Start, wh.Sunday.End, wh.Sunday.Enabled,
		).
		Suffix(`ON CONFLICT (professional_id) DO UPDATE SET
			monday_start = EXCLUDED.monday_start, monday_end = EXCLUDED.monday_end, monday_enabled = EXCLUDED.monday_enabled,
			tuesday_start = EXCLUDED.tuesday_start, tuesday_end = EXCLUDED.tuesday_end, tuesday_enabled = EXCLUDED.tuesday_enabled,
			wednesday_start = EXCLUDED.wednesday_start, wednesday_end = EXCLUDED.wednesday_end, wednesday_enabled = EXCLUDED.wednesday_enabled,
			thursday_start = EXCLUDED.thursday_start, thursday_end = EXCLUDED.thursday_end, thursday_enabled = EXCLUDED.thursday_enabled,
			friday_start = EXCLUDED.friday_start, friday_end = EXCLUDED.friday_end, friday_enabled = EXCLUDED.friday_enabled,
			saturday_start = EXCLUDED.saturday_start, saturday_end = EXCLUDED.saturday_end, saturday_enabled = EXCLUDED.saturday_enabled,
			sunday_start = EXCLUDED.sunday_start, sunday_end = EXCLUDED.sunday_end, sunday_enabled = EXCLUDED.sunday_enabled,
			updated_at = NOW()
			RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SaveWorkingHours - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("%w: SaveWorkingHours - execute upsert: %v", ErrExecQuery, err)
	}

	wh.CreatedAt = createdAt.Time
	wh.UpdatedAt = updatedAt.Time

	return nil
}

// GetCustomWorkingHours получает все действующие (не удалённые) переопределения профессионала
func (r *Repository) GetCustomWorkingHours(ctx context.Context, professionalID int64) ([]*domain.CustomWorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"date",
		"start_time",
		"end_time",
		"deleted_at",
		"created_at",
		"updated_at",
	).
		From("custom_working_hours").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		OrderBy("date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanCustomHours(rows)
}

// GetCustomWorkingHoursForDate получает действующее переопределение на конкретную дату
// Возвращает ErrOverrideNotFound, если переопределения нет
func (r *Repository) GetCustomWorkingHoursForDate(ctx context.Context, professionalID int64, date string) (*domain.CustomWorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"date",
		"start_time",
		"end_time",
		"deleted_at",
		"created_at",
		"updated_at",
	).
		From("custom_working_hours").
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"date": date}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomWorkingHoursForDate - build select query: %v", ErrBuildQuery, err)
	}

	var custom domain.CustomWorkingHours
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&custom.ID,
		&custom.ProfessionalID,
		&custom.Date,
		&custom.Start,
		&custom.End,
		&custom.DeletedAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOverrideNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomWorkingHoursForDate - scan override: %v", ErrScanRow, err)
	}

	custom.CreatedAt = createdAt.Time
	custom.UpdatedAt = updatedAt.Time

	return &custom, nil
}

// ReplaceCustomWorkingHours заменяет весь набор переопределений профессионала:
// действующие записи помечаются удалёнными (soft delete), новый набор вставляется целиком
// Дифф не вычисляется: политика замены проще и её история полностью восстановима
// Вызывается внутри транзакции (переданной через контекст), чтобы замена была атомарной
func (r *Repository) ReplaceCustomWorkingHours(ctx context.Context, professionalID int64, entries []*domain.CustomWorkingHours) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Помечаем все действующие переопределения удалёнными
	query, args, err := psqlbuilder.Update("custom_working_hours").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"professional_id": professionalID}).
		Where(squirrel.Eq{"deleted_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ReplaceCustomWorkingHours - build soft-delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceCustomWorkingHours - execute soft-delete: %v", ErrExecQuery, err)
	}

	if len(entries) == 0 {
		return nil
	}

	// Вставляем новый набор одним запросом
	insertBuilder := psqlbuilder.Insert("custom_working_hours").
		Columns("professional_id", "date", "start_time", "end_time")

	for _, entry := range entries {
		insertBuilder = insertBuilder.Values(professionalID, entry.Date, entry.Start, entry.End)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceCustomWorkingHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceCustomWorkingHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// scanCustomHours сканирует результаты запроса в слайс переопределений
func (r *Repository) scanCustomHours(rows *sql.Rows) ([]*domain.CustomWorkingHours, error) {
	entries := make([]*domain.CustomWorkingHours, 0)

	for rows.Next() {
		var custom domain.CustomWorkingHours
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&custom.ID,
			&custom.ProfessionalID,
			&custom.Date,
			&custom.Start,
			&custom.End,
			&custom.DeletedAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanCustomHours - scan row: %v", ErrScanRow, err)
		}

		custom.CreatedAt = createdAt.Time
		custom.UpdatedAt = updatedAt.Time

		entries = append(entries, &custom)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanCustomHours - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}
