// Package store selects the flight schedule backend from the environment.
package store

import (
	"context"
	"database/sql"
	"deconfliction-service/internal/adapters/repositories"
	"deconfliction-service/internal/config"
	"deconfliction-service/internal/platform/db"
	"deconfliction-service/internal/ports"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Backend is an opened flight store.
type Backend struct {
	Name    string
	Repo    ports.FlightRepository
	DB      *sql.DB
	Dialect repositories.Dialect
}

func (b *Backend) Close() error {
	if b.DB == nil {
		return nil
	}
	return b.DB.Close()
}

var _ io.Closer = (*Backend)(nil)

// Open picks, in order: FLIGHTS_FILE (read-only file), DATABASE_URL
// (Postgres) or DB_PATH (SQLite, default data/app.db).
func Open(ctx context.Context) (*Backend, error) {
	if path := config.Get("FLIGHTS_FILE", ""); path != "" {
		return &Backend{Name: "file", Repo: repositories.NewFileFlightRepository(path)}, nil
	}

	if url := config.Get("DATABASE_URL", ""); url != "" {
		conn, err := db.Open(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return &Backend{
			Name:    "postgres",
			Repo:    repositories.NewPostgresFlightRepository(conn),
			DB:      conn,
			Dialect: repositories.Postgres,
		}, nil
	}

	path := config.Get("DB_PATH", "data/app.db")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open store: create db dir: %w", err)
	}
	conn, err := db.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return &Backend{
		Name:    "sqlite",
		Repo:    repositories.NewSqliteFlightRepository(conn),
		DB:      conn,
		Dialect: repositories.SQLite,
	}, nil
}

// InitAndSeed creates the schema and loads seedPath into a SQL backend.
// File backends are left untouched.
func (b *Backend) InitAndSeed(ctx context.Context, seedPath string) error {
	if b.DB == nil {
		return nil
	}

	slog.Info("initializing database schema", slog.String("backend", b.Name))
	if err := repositories.InitSchema(ctx, b.DB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	slog.Info("seeding flights", slog.String("backend", b.Name), slog.String("seed", seedPath))
	if err := repositories.SeedFromFile(ctx, b.DB, b.Dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}
