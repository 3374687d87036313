package entities

import "time"

type Note struct {
	ID        string    `db:"id"`
	JobID     string    `db:"job_id"`
	WorkerID  string    `db:"worker_id"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
}
