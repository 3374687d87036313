package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MakMD/floor-boss-work-sub000/internal/dto"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
)

type CompanyRepositoryInterface interface {
	GetOptions(ctx context.Context) ([]dto.OptionDTO, error)
	GetName(ctx context.Context, id string) (string, error)
}

type CompanyRepository struct {
	storage *pgxpool.Pool
}

func NewCompanyRepository(storage *pgxpool.Pool) CompanyRepositoryInterface {
	return &CompanyRepository{storage: storage}
}

func (r *CompanyRepository) GetName(ctx context.Context, id string) (string, error) {
	var name string
	err := r.storage.QueryRow(ctx, `SELECT name FROM companies WHERE id = $1`, id).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query company name: %w", err)
	}
	return name, nil
}

func (r *CompanyRepository) GetOptions(ctx context.Context) ([]dto.OptionDTO, error) {
	rows, err := r.storage.Query(ctx, `SELECT id, name FROM companies ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query company options: %w", err)
	}
	defer rows.Close()

	options := make([]dto.OptionDTO, 0)
	for rows.Next() {
		var opt dto.OptionDTO
		if err := rows.Scan(&opt.Value, &opt.Label); err != nil {
			return nil, fmt.Errorf("failed to scan company option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}
