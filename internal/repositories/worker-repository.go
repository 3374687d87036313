package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
)

type WorkerRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*entities.Worker, error)
	FindByEmail(ctx context.Context, email string) (*entities.Worker, error)
	GetOptions(ctx context.Context) ([]dto.OptionDTO, error)
}

type WorkerRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorkerRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkerRepositoryInterface {
	return &WorkerRepository{storage: storage, logger: logger}
}

func scanWorker(row pgx.Row) (*entities.Worker, error) {
	var w entities.Worker
	err := row.Scan(&w.ID, &w.Name, &w.Email, &w.PasswordHash, &w.Role, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan worker: %w", err)
	}
	return &w, nil
}

func (r *WorkerRepository) FindByID(ctx context.Context, id string) (*entities.Worker, error) {
	query := `SELECT id, name, email, password_hash, role, created_at FROM workers WHERE id = $1`
	return scanWorker(r.storage.QueryRow(ctx, query, id))
}

func (r *WorkerRepository) FindByEmail(ctx context.Context, email string) (*entities.Worker, error) {
	query := `SELECT id, name, email, password_hash, role, created_at FROM workers WHERE email = $1`
	return scanWorker(r.storage.QueryRow(ctx, query, email))
}

func (r *WorkerRepository) GetOptions(ctx context.Context) ([]dto.OptionDTO, error) {
	query := `SELECT id, name FROM workers WHERE role = 'worker' ORDER BY name ASC`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query worker options: %w", err)
	}
	defer rows.Close()

	options := make([]dto.OptionDTO, 0)
	for rows.Next() {
		var opt dto.OptionDTO
		if err := rows.Scan(&opt.Value, &opt.Label); err != nil {
			return nil, fmt.Errorf("failed to scan worker option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}
