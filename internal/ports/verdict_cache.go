package ports

import (
	"context"
	"deconfliction-service/internal/domain"
)

// CheckKey is the normalized input of a mission check. Two checks with equal
// keys always produce the same verdict.
type CheckKey struct {
	Waypoints    []domain.Waypoint
	Start        float64
	End          float64
	Flights      []FlightKey
	SafetyRadius float64
	Dt           float64
}

// A flight reduced to its id and timed waypoints.
type FlightKey struct {
	ID        string
	Waypoints []domain.Waypoint
}

// Optional store for previously computed verdicts.
type VerdictCache interface {
	// Return the cached verdict for key, if any.
	Get(ctx context.Context, key CheckKey) (domain.Verdict, bool, error)
	Put(ctx context.Context, key CheckKey, v domain.Verdict) error
}
