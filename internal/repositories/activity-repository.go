package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
)

// ActivityItem carries an activity row enriched with the joined job and
// worker display fields.
type ActivityItem struct {
	entities.Activity
	JobAddress         sql.NullString `db:"job_address"`
	JobClient          sql.NullString `db:"job_client"`
	JobWorkOrderNumber sql.NullString `db:"job_work_order_number"`
	WorkerName         sql.NullString `db:"worker_name"`
}

type ActivityRepositoryInterface interface {
	List(ctx context.Context, term string, limit, offset uint64) ([]ActivityItem, uint64, error)
	Create(ctx context.Context, activity *entities.Activity) (string, error)
	Delete(ctx context.Context, id string) error
}

type ActivityRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewActivityRepository(storage *pgxpool.Pool, logger *zap.Logger) ActivityRepositoryInterface {
	return &ActivityRepository{storage: storage, logger: logger}
}

// List returns one window of the feed ordered by created_at descending, plus
// the total number of rows matching the search term. A non-empty term matches
// case-insensitively against the joined job address, client and work-order
// number, the worker name and the record's own message, OR-combined.
func (r *ActivityRepository) List(ctx context.Context, term string, limit, offset uint64) ([]ActivityItem, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applySearch := func(b sq.SelectBuilder) sq.SelectBuilder {
		if term == "" {
			return b
		}
		pat := "%" + term + "%"
		return b.Where(sq.Or{
			sq.ILike{"j.address": pat},
			sq.ILike{"j.client": pat},
			sq.ILike{"j.work_order_number": pat},
			sq.ILike{"w.name": pat},
			sq.ILike{"a.message": pat},
		})
	}

	countBuilder := applySearch(psql.
		Select("COUNT(a.id)").
		From("activities AS a").
		LeftJoin("jobs j ON a.job_id = j.id").
		LeftJoin("workers w ON a.worker_id = w.id"))

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}
	if total == 0 {
		return []ActivityItem{}, 0, nil
	}

	selectBuilder := applySearch(psql.
		Select(
			"a.id", "a.created_at", "a.action_type", "a.message", "a.details",
			"a.job_id", "a.worker_id",
			"j.address AS job_address", "j.client AS job_client",
			"j.work_order_number AS job_work_order_number",
			"w.name AS worker_name",
		).
		From("activities AS a").
		LeftJoin("jobs j ON a.job_id = j.id").
		LeftJoin("workers w ON a.worker_id = w.id")).
		OrderBy("a.created_at DESC", "a.id DESC").
		Limit(limit).
		Offset(offset)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query activities: %w", err)
	}
	defer rows.Close()

	items := make([]ActivityItem, 0, limit)
	for rows.Next() {
		var item ActivityItem
		if err := rows.Scan(
			&item.ID, &item.CreatedAt, &item.ActionType, &item.Message, &item.Details,
			&item.JobID, &item.WorkerID,
			&item.JobAddress, &item.JobClient, &item.JobWorkOrderNumber,
			&item.WorkerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity: %w", err)
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

func (r *ActivityRepository) Create(ctx context.Context, activity *entities.Activity) (string, error) {
	query := `
		INSERT INTO activities (action_type, message, details, job_id, worker_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id`

	var id string
	err := r.storage.QueryRow(ctx, query,
		activity.ActionType, activity.Message, activity.Details,
		activity.JobID, activity.WorkerID,
	).Scan(&id)
	if err != nil {
		return "", apperrors.NewPersistenceError("failed to insert activity", err)
	}
	return id, nil
}

// Delete removes exactly one record; a missing row reports ErrNotFound.
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewPersistenceError("failed to delete activity", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
