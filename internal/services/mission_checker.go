package services

import (
	"context"
	"deconfliction-service/internal/domain"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"
)

type CheckRequest struct {
	Waypoints []domain.Waypoint
	Start     domain.TimeValue
	End       domain.TimeValue
	// Flights is a read-only snapshot; it is never modified.
	Flights  []domain.Flight
	Params   domain.Params
	Location *time.Location
}

// CheckMission times and samples the primary mission, then compares it with
// every other flight.
//
// Flight timing is resolved up front in input order, so a flight with no
// usable timing aborts the check with a MissingTimingError naming the first
// such flight and no partial verdict. Per-flight sampling and detection then
// run concurrently; conflicts are aggregated in flight order, then by time.
func CheckMission(ctx context.Context, req CheckRequest) (domain.Verdict, error) {
	if err := validateRadius(req.Params.SafetyRadius); err != nil {
		return domain.Verdict{}, fmt.Errorf("check mission: %w", err)
	}

	primary, err := samplePrimary(req)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("check mission: %w", err)
	}

	timed := make([][]domain.Waypoint, len(req.Flights))
	for i, f := range req.Flights {
		tw, err := TimeFlight(f, req.Location)
		if err != nil {
			return domain.Verdict{}, fmt.Errorf("check mission: %w", err)
		}
		timed[i] = tw
	}

	perFlight := make([][]domain.Conflict, len(req.Flights))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(req.Params.Workers, 1))

	for i, f := range req.Flights {
		i, f := i, f
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			traj, err := SampleTrajectory(timed[i], req.Params.Dt)
			if err != nil {
				return fmt.Errorf("flight %q: %w", f.Label(), err)
			}

			confs := DetectConflicts(primary, traj, req.Params.SafetyRadius)
			for k := range confs {
				confs[k].OtherID = f.Label()
			}
			perFlight[i] = confs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Verdict{}, fmt.Errorf("check mission: %w", err)
	}

	var all []domain.Conflict
	for _, confs := range perFlight {
		all = append(all, confs...)
	}
	return domain.NewVerdict(all), nil
}

// TimeFlight returns the flight's timed waypoints: its own when every
// waypoint carries a timestamp, otherwise derived from its window.
func TimeFlight(f domain.Flight, loc *time.Location) ([]domain.Waypoint, error) {
	if len(f.Waypoints) == 0 {
		return nil, fmt.Errorf("flight %q: %w", f.Label(), domain.ErrEmptyPath)
	}
	if domain.AllTimed(f.Waypoints) {
		return f.Waypoints, nil
	}
	if !f.HasWindow() {
		return nil, &domain.MissingTimingError{FlightID: f.Label()}
	}

	tw, err := PlanMission(f.Waypoints, *f.Start, *f.End, loc)
	if err != nil {
		return nil, fmt.Errorf("flight %q: %w", f.Label(), err)
	}
	return tw, nil
}

func samplePrimary(req CheckRequest) (domain.Trajectory, error) {
	if len(req.Waypoints) == 0 {
		return domain.Trajectory{}, fmt.Errorf("primary mission: %w", domain.ErrEmptyPath)
	}

	timed, err := PlanMission(req.Waypoints, req.Start, req.End, req.Location)
	if err != nil {
		return domain.Trajectory{}, fmt.Errorf("primary mission: %w", err)
	}

	traj, err := SampleTrajectory(timed, req.Params.Dt)
	if err != nil {
		return domain.Trajectory{}, fmt.Errorf("primary mission: %w", err)
	}
	return traj, nil
}

func validateRadius(r float64) error {
	if r < 0 || math.IsNaN(r) {
		return fmt.Errorf("safety radius %v: %w", r, domain.ErrInvalidParameter)
	}
	return nil
}

// IsInputError reports whether err stems from caller-supplied data rather
// than from the environment.
func IsInputError(err error) bool {
	var (
		pe *domain.ParseError
		me *domain.MissingTimingError
		fe *domain.FormatError
	)
	return errors.As(err, &pe) ||
		errors.As(err, &me) ||
		errors.As(err, &fe) ||
		errors.Is(err, domain.ErrEmptyPath) ||
		errors.Is(err, domain.ErrInvalidSamplingInterval) ||
		errors.Is(err, domain.ErrUntimedWaypoint) ||
		errors.Is(err, domain.ErrInvalidParameter)
}
