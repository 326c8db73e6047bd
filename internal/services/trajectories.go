package services

import (
	"deconfliction-service/internal/domain"
	"fmt"
)

type FlightTrajectory struct {
	ID         string
	Trajectory domain.Trajectory
}

// TrajectorySet is what a renderer needs to animate a scenario.
type TrajectorySet struct {
	Primary domain.Trajectory
	Flights []FlightTrajectory
}

// SampleFlights samples the primary mission and every other flight at the
// request's dt, without running conflict detection.
func SampleFlights(req CheckRequest) (TrajectorySet, error) {
	primary, err := samplePrimary(req)
	if err != nil {
		return TrajectorySet{}, fmt.Errorf("sample flights: %w", err)
	}

	set := TrajectorySet{
		Primary: primary,
		Flights: make([]FlightTrajectory, 0, len(req.Flights)),
	}
	for _, f := range req.Flights {
		tw, err := TimeFlight(f, req.Location)
		if err != nil {
			return TrajectorySet{}, fmt.Errorf("sample flights: %w", err)
		}
		traj, err := SampleTrajectory(tw, req.Params.Dt)
		if err != nil {
			return TrajectorySet{}, fmt.Errorf("sample flights: flight %q: %w", f.Label(), err)
		}
		set.Flights = append(set.Flights, FlightTrajectory{ID: f.Label(), Trajectory: traj})
	}
	return set, nil
}
