package repositories

import (
	"context"
	"database/sql"
	"deconfliction-service/internal/domain"
	"errors"
	"fmt"
	"strings"
)

// SeedFromFile populates the flight tables from a JSON or YAML schedule file.
func SeedFromFile(ctx context.Context, db *sql.DB, dialect Dialect, path string) error {
	flights, err := ReadFlightsFile(path)
	if err != nil {
		return fmt.Errorf("seed flights: %w", err)
	}
	return SeedFlights(ctx, db, dialect, flights)
}

// SeedFlights replaces the stored schedule with flights in one transaction:
// flights absent from the slice are removed. Slice order becomes listing order.
func SeedFlights(ctx context.Context, db *sql.DB, dialect Dialect, flights []domain.Flight) error {
	if db == nil {
		return errors.New("seed flights: DB is nil")
	}

	seen := make(map[string]struct{}, len(flights))
	for i, f := range flights {
		id := strings.TrimSpace(f.Label())
		if _, dup := seen[id]; dup {
			return fmt.Errorf("seed flights: duplicate flight id %q at index %d", id, i+1)
		}
		seen[id] = struct{}{}

		if len(f.Waypoints) == 0 {
			return fmt.Errorf("seed flights: flight %q at index %d: waypoints cannot be empty", id, i+1)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed flights: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Children first; the schema does not rely on ON DELETE CASCADE, which
	// SQLite ignores unless foreign_keys is enabled.
	for _, stmt := range []string{
		`DELETE FROM flight_waypoints;`,
		`DELETE FROM flights;`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("seed flights: clear schedule: %w", err)
		}
	}

	b := dialect.bind
	insertFlight, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO flights (flight_id, position, t_start, t_start_kind, t_end, t_end_kind)
	VALUES (%s, %s, %s, %s, %s, %s);
	`, b(1), b(2), b(3), b(4), b(5), b(6)))
	if err != nil {
		return fmt.Errorf("seed flights: prepare flight insert: %w", err)
	}
	defer insertFlight.Close()

	insertWaypoint, err := tx.PrepareContext(ctx, fmt.Sprintf(`
	INSERT INTO flight_waypoints (flight_id, seq, x, y, z, t)
	VALUES (%s, %s, %s, %s, %s, %s);
	`, b(1), b(2), b(3), b(4), b(5), b(6)))
	if err != nil {
		return fmt.Errorf("seed flights: prepare waypoint insert: %w", err)
	}
	defer insertWaypoint.Close()

	for pos, f := range flights {
		id := strings.TrimSpace(f.Label())
		startVal, startKind := encodeWindowBound(f.Start)
		endVal, endKind := encodeWindowBound(f.End)

		if _, err := insertFlight.ExecContext(ctx, id, pos, startVal, startKind, endVal, endKind); err != nil {
			return fmt.Errorf("seed flights: insert flight_id=%q: %w", id, err)
		}
		for seq, w := range f.Waypoints {
			if _, err := insertWaypoint.ExecContext(ctx, id, seq, w.X, w.Y, w.Z, w.T); err != nil {
				return fmt.Errorf("seed flights: insert waypoint flight_id=%q seq=%d: %w", id, seq, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed flights: commit tx: %w", err)
	}

	return nil
}
