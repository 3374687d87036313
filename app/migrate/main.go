package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/MakMD/floor-boss-work-sub000/pkg/config"
)

// Applies pending SQL migrations. Usage: migrate [up|down|status]
func main() {
	cfg := config.New()

	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("failed to set goose dialect: %v", err)
	}

	if err := goose.Run(command, db, "migrations"); err != nil {
		log.Fatalf("goose %s failed: %v", command, err)
	}
}
