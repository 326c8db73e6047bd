package main

import (
	"context"
	"deconfliction-service/internal/config"
	"deconfliction-service/internal/platform/logging"
	"deconfliction-service/internal/platform/store"
	"log"
	"log/slog"

	"github.com/joho/godotenv"
)

// dbtool creates the flight schema and seeds the schedule into the store
// selected by DATABASE_URL or DB_PATH.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	logger, closer, err := logging.New(logging.Config{
		Level:  config.Get("LOG_LEVEL", "info"),
		Format: config.Get("LOG_FORMAT", "text"),
	})
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()

	ctx := context.Background()
	backend, err := store.Open(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer backend.Close()

	if backend.DB == nil {
		log.Fatal("dbtool needs DATABASE_URL or DB_PATH, not FLIGHTS_FILE")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/flights.json")
	if err := backend.InitAndSeed(ctx, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	flights, err := backend.Repo.ListFlights(ctx)
	if err != nil {
		log.Fatal(err)
	}
	logger.Info("seeding complete",
		slog.String("backend", backend.Name),
		slog.Int("flights", len(flights)))
}
