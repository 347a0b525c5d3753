// Command migrate applies, rolls back or lists the database migrations.
//
//	migrate up | down | status
package main

import (
	"database/sql"
	"os"

	"lechon/cmd"
	"lechon/internal/adapters/out/postgres/migrations"

	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: migrate up|down|status")
	}

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	db, err := sql.Open("postgres", configs.DSN())
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	defer db.Close()

	if err = db.Ping(); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	switch os.Args[1] {
	case "up":
		err = migrations.Up(db)
	case "down":
		err = migrations.Down(db)
	case "status":
		err = migrations.Status(db)
	default:
		log.Fatalf("unknown command %q, want up, down or status", os.Args[1])
	}
	if err != nil {
		log.Fatalf("Migration %s failed: %v", os.Args[1], err)
	}
}
