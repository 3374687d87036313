package entities

import "time"

const (
	RoleAdmin  = "admin"
	RoleWorker = "worker"
)

type Worker struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}
