package entities

import "time"

type Invoice struct {
	ID          string    `db:"id"`
	JobID       string    `db:"job_id"`
	InvoiceDate string    `db:"invoice_date"`
	Amount      float64   `db:"amount"`
	CreatedAt   time.Time `db:"created_at"`
}
