package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pairmed/api/internal/adapters/repository/postgres"
	"github.com/pairmed/api/internal/core/services"
)

// Expires stale pending invites. Meant to run on a schedule; the lookup
// path already filters on status, so this only keeps the table tidy.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.Parse()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	inviteRepo := postgres.NewInviteRepository(db)
	coupleRepo := postgres.NewCoupleRepository(db)
	coupleService := services.NewCoupleService(inviteRepo, coupleRepo)

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("Starting expired invite cleanup job...")

	cleaned, err := coupleService.CleanExpiredInvites(ctx)
	if err != nil {
		log.Fatalf("Error cleaning expired invites: %v", err)
	}

	log.Printf("Expired invite cleanup completed: %d invite(s) expired.", cleaned)
}
