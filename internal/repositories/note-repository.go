package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MakMD/floor-boss-work-sub000/internal/entities"
	apperrors "github.com/MakMD/floor-boss-work-sub000/pkg/errors"
)

// NoteItem is a note joined with the author's display name.
type NoteItem struct {
	entities.Note
	WorkerName sql.NullString `db:"worker_name"`
}

type NoteRepositoryInterface interface {
	Create(ctx context.Context, note *entities.Note) (string, error)
	ListByJob(ctx context.Context, jobID string) ([]NoteItem, error)
}

type NoteRepository struct {
	storage *pgxpool.Pool
}

func NewNoteRepository(storage *pgxpool.Pool) NoteRepositoryInterface {
	return &NoteRepository{storage: storage}
}

func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (string, error) {
	query := `
		INSERT INTO notes (job_id, worker_id, body, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id`

	var id string
	if err := r.storage.QueryRow(ctx, query, note.JobID, note.WorkerID, note.Body).Scan(&id); err != nil {
		return "", apperrors.NewPersistenceError("failed to insert note", err)
	}
	return id, nil
}

func (r *NoteRepository) ListByJob(ctx context.Context, jobID string) ([]NoteItem, error) {
	query := `
		SELECT n.id, n.job_id, n.worker_id, n.body, n.created_at, w.name AS worker_name
		FROM notes n
		LEFT JOIN workers w ON n.worker_id = w.id
		WHERE n.job_id = $1
		ORDER BY n.created_at DESC`

	rows, err := r.storage.Query(ctx, query, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	var notes []NoteItem
	for rows.Next() {
		var n NoteItem
		if err := rows.Scan(&n.ID, &n.JobID, &n.WorkerID, &n.Body, &n.CreatedAt, &n.WorkerName); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
