package blocked

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/BMP-ScheduleService/internal/domain"
	"github.com/m04kA/BMP-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/BMP-ScheduleService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с блокировками времени
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория блокировок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую блокировку
func (r *Repository) Create(ctx context.Context, slot *domain.BlockedTimeSlot) (*domain.BlockedTimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("blocked_time_slots").
		Columns("professional_id", "title", "start_at", "end_at").
		Values(slot.ProfessionalID, slot.Title, slot.StartAt, slot.EndAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает блокировку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BlockedTimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"professional_id",
		"title",
		"start_at",
		"end_at",
		"created_at",
		"updated_at",
	).
		From("blocked_time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.BlockedTimeSlot
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.ProfessionalID,
		&slot.Title,
		&slot.StartAt,
		&slot.EndAt,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBlockedSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan blocked slot: %v", ErrScanRow, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// GetByProfessional получает все блокировки профессионала
func (r *Repository) GetByProfessional(ctx context.Context, professionalID int64) ([]*domain.BlockedTimeSlot, error) {
	return r.getByProfessional(ctx, professionalID, nil, nil)
}

// GetByProfessionalInRange получает блокировки профессионала, пересекающиеся с периодом [from, to)
func (r *Repository) GetByProfessionalInRange(ctx context.Context, professionalID int64, from, to time.Time) ([]*domain.BlockedTimeSlot, error) {
	return r.getByProfessional(ctx, professionalID, &from, &to)
}

func (r *Repository) getByProfessional(ctx context.Context, professionalID int64, from, to *time.Time) ([]*domain.BlockedTimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"professional_id",
		"title",
		"start_at",
		"end_at",
		"created_at",
		"updated_at",
	).
		From("blocked_time_slots").
		Where(squirrel.Eq{"professional_id": professionalID}).
		OrderBy("start_at ASC")

	// Пересечение с периодом: блокировка попадает в выборку,
	// если она начинается до конца периода и заканчивается после его начала
	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *to})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByProfessional - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getByProfessional - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Update обновляет заголовок и интервал блокировки
func (r *Repository) Update(ctx context.Context, slot *domain.BlockedTimeSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("blocked_time_slots").
		Set("title", slot.Title).
		Set("start_at", slot.StartAt).
		Set("end_at", slot.EndAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedSlotNotFound
	}

	return nil
}

// Delete удаляет блокировку
// Блокировки не связаны с историей записей, поэтому удаляются физически
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("blocked_time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBlockedSlotNotFound
	}

	return nil
}

// scanSlots сканирует результаты запроса в слайс блокировок
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.BlockedTimeSlot, error) {
	slots := make([]*domain.BlockedTimeSlot, 0)

	for rows.Next() {
		var slot domain.BlockedTimeSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.ProfessionalID,
			&slot.Title,
			&slot.StartAt,
			&slot.EndAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
