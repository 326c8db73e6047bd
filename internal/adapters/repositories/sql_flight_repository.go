package repositories

import (
	"context"
	"database/sql"
	"deconfliction-service/internal/domain"
	"deconfliction-service/internal/platform/obs"
	"fmt"
)

// SQLFlightRepository is a SQL-backed implementation of the FlightRepository
// port. It serves both SQLite and Postgres.
type SQLFlightRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSqliteFlightRepository(db *sql.DB) *SQLFlightRepository {
	return &SQLFlightRepository{DB: db, Dialect: SQLite}
}

func NewPostgresFlightRepository(db *sql.DB) *SQLFlightRepository {
	return &SQLFlightRepository{DB: db, Dialect: Postgres}
}

// Return all flights in seed order, each with its waypoints in sequence.
func (s *SQLFlightRepository) ListFlights(ctx context.Context) (_ []domain.Flight, err error) {
	defer obs.Time(ctx, "flights.ListFlights")(&err)

	if s.DB == nil {
		return nil, fmt.Errorf("%s flight repository: DB is nil", s.Dialect)
	}

	flights, index, err := s.listFlightRows(ctx)
	if err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return flights, nil
	}

	query := `
	SELECT
		flight_id,
		x,
		y,
		z,
		t
	FROM flight_waypoints
	ORDER BY flight_id, seq;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list flights: query flight_waypoints table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var w domain.Waypoint
		var z, t sql.NullFloat64
		if err := rows.Scan(&id, &w.X, &w.Y, &z, &t); err != nil {
			return nil, fmt.Errorf("list flights: scan waypoint row: %w", err)
		}
		if z.Valid {
			w.Z = domain.Float64(z.Float64)
		}
		if t.Valid {
			w.T = domain.Float64(t.Float64)
		}

		i, ok := index[id]
		if !ok {
			continue
		}
		flights[i].Waypoints = append(flights[i].Waypoints, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list flights: waypoint row iteration: %w", err)
	}

	return flights, nil
}

func (s *SQLFlightRepository) listFlightRows(ctx context.Context) ([]domain.Flight, map[string]int, error) {
	query := `
	SELECT
		flight_id,
		t_start,
		t_start_kind,
		t_end,
		t_end_kind
	FROM flights
	ORDER BY position, flight_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("list flights: query flights table: %w", err)
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0, 16)
	index := make(map[string]int)
	for rows.Next() {
		var id string
		var start, startKind, end, endKind sql.NullString
		if err := rows.Scan(&id, &start, &startKind, &end, &endKind); err != nil {
			return nil, nil, fmt.Errorf("list flights: scan flight row: %w", err)
		}

		f := domain.Flight{ID: id, Waypoints: []domain.Waypoint{}}
		if f.Start, err = decodeWindowBound(start, startKind); err != nil {
			return nil, nil, fmt.Errorf("list flights: flight %q: %w", id, err)
		}
		if f.End, err = decodeWindowBound(end, endKind); err != nil {
			return nil, nil, fmt.Errorf("list flights: flight %q: %w", id, err)
		}

		index[id] = len(flights)
		flights = append(flights, f)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("list flights: flight row iteration: %w", err)
	}

	return flights, index, nil
}
