package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
)

type PhotoRepositoryInterface interface {
	Create(ctx context.Context, photo *entities.Photo) (string, error)
	ListByJob(ctx context.Context, jobID string) ([]entities.Photo, error)
}

type PhotoRepository struct {
	storage *pgxpool.Pool
}

func NewPhotoRepository(storage *pgxpool.Pool) PhotoRepositoryInterface {
	return &PhotoRepository{storage: storage}
}

func (r *PhotoRepository) Create(ctx context.Context, photo *entities.Photo) (string, error) {
	query := `
		INSERT INTO photos (job_id, url, uploaded_by, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id`

	var id string
	if err := r.storage.QueryRow(ctx, query, photo.JobID, photo.URL, photo.UploadedBy).Scan(&id); err != nil {
		return "", apperrors.NewPersistenceError("failed to insert photo", err)
	}
	return id, nil
}

func (r *PhotoRepository) ListByJob(ctx context.Context, jobID string) ([]entities.Photo, error) {
	query := `
		SELECT id, job_id, url, uploaded_by, created_at
		FROM photos
		WHERE job_id = $1
		ORDER BY created_at DESC`

	rows, err := r.storage.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query photos: %w", err)
	}
	defer rows.Close()

	var photos []entities.Photo
	for rows.Next() {
		var p entities.Photo
		if err := rows.Scan(&p.ID, &p.JobID, &p.URL, &p.UploadedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}
