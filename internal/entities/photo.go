package entities

import "time"

type Photo struct {
	ID         string    `db:"id"`
	JobID      string    `db:"job_id"`
	URL        string    `db:"url"`
	UploadedBy string    `db:"uploaded_by"`
	CreatedAt  time.Time `db:"created_at"`
}
