package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
	"github.com/MakMD/floor-boss-work-sub000/pkg/types"
)

type JobRepositoryInterface interface {
	CreateJob(ctx context.Context, job *entities.Job) (string, error)
	FindJob(ctx context.Context, id string) (*entities.Job, error)
	GetJobs(ctx context.Context, filter types.Filter) ([]entities.Job, uint64, error)
	GetJobsForWorker(ctx context.Context, workerID string, filter types.Filter) ([]entities.Job, uint64, error)
	AssignWorkers(ctx context.Context, jobID string, workerIDs []string) error
	UpdateWorkerStatus(ctx context.Context, id string, status string) (oldStatus string, err error)
	UpdateAdminStatus(ctx context.Context, id string, status string) (oldStatus string, err error)
	GetAssignedWorkers(ctx context.Context, jobID string) ([]entities.Worker, error)
}

type JobRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewJobRepository(storage *pgxpool.Pool, logger *zap.Logger) JobRepositoryInterface {
	return &JobRepository{storage: storage, logger: logger}
}

const jobColumns = `
	id, address, date, client, sf, rate, company_id, work_order_number,
	storage_info, admin_instructions, job_order_photo_url, created_by,
	worker_status, admin_status, created_at`

func scanJob(row pgx.Row) (*entities.Job, error) {
	var j entities.Job
	err := row.Scan(
		&j.ID, &j.Address, &j.Date, &j.Client, &j.SF, &j.Rate, &j.CompanyID,
		&j.WorkOrderNumber, &j.StorageInfo, &j.AdminInstructions,
		&j.JobOrderPhotoURL, &j.CreatedBy, &j.WorkerStatus, &j.AdminStatus,
		&j.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}
	return &j, nil
}

// CreateJob inserts the job record on its own, outside any transaction: the
// order pipeline's later steps are allowed to fail without taking the job
// down with them.
func (r *JobRepository) CreateJob(ctx context.Context, job *entities.Job) (string, error) {
	query := `
		INSERT INTO jobs (
			address, date, client, sf, rate, company_id, work_order_number,
			storage_info, admin_instructions, job_order_photo_url, created_by,
			worker_status, admin_status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING id`

	workerStatus := job.WorkerStatus
	if workerStatus == "" {
		workerStatus = entities.WorkerStatusNotStarted
	}
	adminStatus := job.AdminStatus
	if adminStatus == "" {
		adminStatus = entities.AdminStatusPending
	}

	var id string
	err := r.storage.QueryRow(ctx, query,
		job.Address, job.Date, job.Client, job.SF, job.Rate, job.CompanyID,
		job.WorkOrderNumber, job.StorageInfo, job.AdminInstructions,
		job.JobOrderPhotoURL, job.CreatedBy, workerStatus, adminStatus,
	).Scan(&id)
	if err != nil {
		return "", apperrors.NewPersistenceError("failed to insert job", err)
	}
	return id, nil
}

func (r *JobRepository) FindJob(ctx context.Context, id string) (*entities.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`
	return scanJob(r.storage.QueryRow(ctx, query, id))
}

func (r *JobRepository) listJobs(ctx context.Context, filter types.Filter, extraWhere sq.Sqlizer, extraJoin string) ([]entities.Job, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyConditions := func(b sq.SelectBuilder) sq.SelectBuilder {
		if extraJoin != "" {
			b = b.Join(extraJoin)
		}
		if extraWhere != nil {
			b = b.Where(extraWhere)
		}
		if filter.Search != "" {
			pat := "%" + filter.Search + "%"
			b = b.Where(sq.Or{
				sq.ILike{"jb.address": pat},
				sq.ILike{"jb.client": pat},
				sq.ILike{"jb.work_order_number": pat},
			})
		}
		return b
	}

	countBuilder := applyConditions(psql.Select("COUNT(jb.id)").From("jobs AS jb"))
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	if total == 0 {
		return []entities.Job{}, 0, nil
	}

	selectBuilder := applyConditions(psql.Select(
		"jb.id", "jb.address", "jb.date", "jb.client", "jb.sf", "jb.rate",
		"jb.company_id", "jb.work_order_number", "jb.storage_info",
		"jb.admin_instructions", "jb.job_order_photo_url", "jb.created_by",
		"jb.worker_status", "jb.admin_status", "jb.created_at",
	).From("jobs AS jb")).
		OrderBy("jb.created_at DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]entities.Job, 0, filter.Limit)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

func (r *JobRepository) GetJobs(ctx context.Context, filter types.Filter) ([]entities.Job, uint64, error) {
	return r.listJobs(ctx, filter, nil, "")
}

// GetJobsForWorker restricts the list to jobs the worker is assigned to.
func (r *JobRepository) GetJobsForWorker(ctx context.Context, workerID string, filter types.Filter) ([]entities.Job, uint64, error) {
	return r.listJobs(ctx, filter,
		sq.Eq{"jw.worker_id": workerID},
		"job_workers jw ON jw.job_id = jb.id")
}

// AssignWorkers bulk-inserts the (job, worker) pairs. Duplicate pairs are
// ignored so a retry of the assignment step stays idempotent.
func (r *JobRepository) AssignWorkers(ctx context.Context, jobID string, workerIDs []string) error {
	if len(workerIDs) == 0 {
		return nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Insert("job_workers").Columns("job_id", "worker_id")
	for _, workerID := range workerIDs {
		builder = builder.Values(jobID, workerID)
	}
	builder = builder.Suffix("ON CONFLICT (job_id, worker_id) DO NOTHING")

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.storage.Exec(ctx, query, args...); err != nil {
		return apperrors.NewPersistenceError("failed to assign workers", err)
	}
	return nil
}

func (r *JobRepository) updateStatus(ctx context.Context, id, column, status string) (string, error) {
	tx, err := r.storage.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	oldStatus, err := setJobStatus(ctx, tx, id, column, status)
	if err != nil {
		return "", err
	}
	return oldStatus, tx.Commit(ctx)
}

// setJobStatus locks the row, swaps the status column and reports the value it
// held before. It runs on any Querier so callers decide the transaction scope.
func setJobStatus(ctx context.Context, q Querier, id, column, status string) (string, error) {
	var oldStatus string
	findQuery := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1 FOR UPDATE`, column)
	if err := q.QueryRow(ctx, findQuery, id).Scan(&oldStatus); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to lock job for status update: %w", err)
	}

	updateQuery := fmt.Sprintf(`UPDATE jobs SET %s = $1 WHERE id = $2`, column)
	if _, err := q.Exec(ctx, updateQuery, status, id); err != nil {
		return "", apperrors.NewPersistenceError("failed to update job status", err)
	}
	return oldStatus, nil
}

func (r *JobRepository) UpdateWorkerStatus(ctx context.Context, id string, status string) (string, error) {
	return r.updateStatus(ctx, id, "worker_status", status)
}

func (r *JobRepository) UpdateAdminStatus(ctx context.Context, id string, status string) (string, error) {
	return r.updateStatus(ctx, id, "admin_status", status)
}

func (r *JobRepository) GetAssignedWorkers(ctx context.Context, jobID string) ([]entities.Worker, error) {
	query := `
		SELECT w.id, w.name, w.email, w.role, w.created_at
		FROM workers w
		JOIN job_workers jw ON jw.worker_id = w.id
		WHERE jw.job_id = $1
		ORDER BY w.name ASC`

	rows, err := r.storage.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assigned workers: %w", err)
	}
	defer rows.Close()

	var workers []entities.Worker
	for rows.Next() {
		var w entities.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Email, &w.Role, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assigned worker: %w", err)
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}
