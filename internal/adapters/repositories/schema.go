package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Dialect selects the placeholder syntax of the target database.
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

func (d Dialect) String() string {
	if d == Postgres {
		return "postgres"
	}
	return "sqlite"
}

// bind returns the n-th (1-based) positional placeholder.
func (d Dialect) bind(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// InitSchema creates the flight schedule tables. The DDL is valid for both
// SQLite and Postgres.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createFlightsQuery := `
	CREATE TABLE IF NOT EXISTS flights (
		flight_id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		t_start TEXT,
		t_start_kind TEXT,
		t_end TEXT,
		t_end_kind TEXT
	);
	`

	createWaypointsQuery := `
	CREATE TABLE IF NOT EXISTS flight_waypoints (
		flight_id TEXT NOT NULL REFERENCES flights(flight_id),
		seq INTEGER NOT NULL,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		z DOUBLE PRECISION,
		t DOUBLE PRECISION,
		PRIMARY KEY (flight_id, seq)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_flights_position
	ON flights(position);
	`

	statements := []string{
		createFlightsQuery,
		createWaypointsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
