package services

import (
	"deconfliction-service/internal/domain"
	"fmt"
	"math"
	"time"
)

// AssignTimes timestamps each waypoint in proportion to the cumulative path
// length travelled, i.e. constant speed along the polyline between tStart
// and tEnd.
//
// A single waypoint receives tStart. A path of zero total length receives
// evenly spaced times from tStart to tEnd inclusive, ignoring geometry.
// tEnd before tStart is accepted and yields a reversed-time path.
func AssignTimes(waypoints []domain.Waypoint, tStart, tEnd float64) []domain.Waypoint {
	dims := domain.DimensionalityOf(waypoints)
	n := len(waypoints)

	positions := make([]domain.Point, n)
	for i, wp := range waypoints {
		positions[i] = wp.Position()
	}

	times := make([]float64, n)
	switch {
	case n == 0:
	case n == 1:
		times[0] = tStart
	default:
		cum := make([]float64, n)
		for i := 1; i < n; i++ {
			cum[i] = cum[i-1] + positions[i].Distance(positions[i-1])
		}
		total := cum[n-1]

		if total <= 0 {
			for i := range times {
				times[i] = tStart + float64(i)/float64(n-1)*(tEnd-tStart)
			}
			// tStart + (tEnd-tStart) can differ from tEnd by rounding.
			times[n-1] = tEnd
		} else {
			for i := range times {
				times[i] = tStart + (cum[i]/total)*(tEnd-tStart)
			}
		}
	}

	out := make([]domain.Waypoint, n)
	for i, p := range positions {
		wp := domain.Waypoint{X: p[0], Y: p[1], T: domain.Float64(times[i])}
		if dims == domain.ThreeD {
			wp.Z = domain.Float64(p[2])
		}
		out[i] = wp
	}
	return out
}

// PlanMission normalizes the window bounds and timestamps the waypoints.
func PlanMission(
	waypoints []domain.Waypoint,
	start domain.TimeValue,
	end domain.TimeValue,
	loc *time.Location,
) ([]domain.Waypoint, error) {
	t0, err := start.Seconds(loc)
	if err != nil {
		return nil, fmt.Errorf("plan mission: start: %w", err)
	}
	t1, err := end.Seconds(loc)
	if err != nil {
		return nil, fmt.Errorf("plan mission: end: %w", err)
	}
	if math.IsNaN(t0) || math.IsNaN(t1) {
		return nil, fmt.Errorf("plan mission: window bounds must be numbers: %w", domain.ErrInvalidParameter)
	}

	return AssignTimes(waypoints, t0, t1), nil
}
