package services

import (
	"context"
	"deconfliction-service/internal/domain"
	"deconfliction-service/internal/platform/obs"
	"deconfliction-service/internal/ports"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// MissionInput is a primary mission as received from a caller. A nil
// Flights slice means "use the repository snapshot".
type MissionInput struct {
	Waypoints []domain.Waypoint
	Start     domain.TimeValue
	End       domain.TimeValue
	Flights   []domain.Flight
	Params    domain.Params
}

// Deconfliction binds the core checks to a flight source, an optional
// verdict cache and a logger.
type Deconfliction struct {
	Flights  ports.FlightRepository
	Cache    ports.VerdictCache
	Location *time.Location
	Logger   *slog.Logger
}

func (d *Deconfliction) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// LoadFlights returns supplied when non-nil, otherwise the repository snapshot.
func (d *Deconfliction) LoadFlights(ctx context.Context, supplied []domain.Flight) ([]domain.Flight, error) {
	if supplied != nil {
		return supplied, nil
	}
	if d.Flights == nil {
		return []domain.Flight{}, nil
	}

	flights, err := d.Flights.ListFlights(ctx)
	if err != nil {
		return nil, fmt.Errorf("load flights: %w", err)
	}
	return flights, nil
}

// Check runs a mission check, consulting the verdict cache when configured.
// Cache failures are logged and never fail the check.
func (d *Deconfliction) Check(ctx context.Context, in MissionInput) (_ domain.Verdict, err error) {
	defer obs.Time(ctx, "deconfliction.Check")(&err)

	flights, err := d.LoadFlights(ctx, in.Flights)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("check: %w", err)
	}

	req := CheckRequest{
		Waypoints: in.Waypoints,
		Start:     in.Start,
		End:       in.End,
		Flights:   flights,
		Params:    in.Params,
		Location:  d.Location,
	}

	var key ports.CheckKey
	cacheable := false
	if d.Cache != nil {
		if key, err = BuildCheckKey(req); err == nil {
			cacheable = true
			v, ok, cerr := d.Cache.Get(ctx, key)
			if cerr != nil {
				d.logger().Warn("verdict cache read failed", slog.Any("err", cerr))
			} else if ok {
				return v, nil
			}
		}
		// An unbuildable key means invalid input; CheckMission reports it.
	}

	verdict, err := CheckMission(ctx, req)
	if err != nil {
		return domain.Verdict{}, fmt.Errorf("check: %w", err)
	}

	if cacheable {
		if cerr := d.Cache.Put(ctx, key, verdict); cerr != nil {
			d.logger().Warn("verdict cache write failed", slog.Any("err", cerr))
		}
	}

	d.logger().Info("mission checked",
		slog.String("status", string(verdict.Status)),
		slog.Int("conflicts", len(verdict.Conflicts)),
		slog.Int("flights", len(flights)))

	return verdict, nil
}

// Resolve delays the mission until clear, logging every attempt.
func (d *Deconfliction) Resolve(ctx context.Context, in MissionInput) (_ Resolution, err error) {
	defer obs.Time(ctx, "deconfliction.Resolve")(&err)

	if in.Start.Kind() != domain.TimeText || in.End.Kind() != domain.TimeText {
		return Resolution{}, fmt.Errorf("resolve: %w", &domain.FormatError{
			Field: "window",
			Value: in.Start.String() + " / " + in.End.String(),
			Err:   errors.New("window bounds must be text"),
		})
	}

	flights, err := d.LoadFlights(ctx, in.Flights)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve: %w", err)
	}

	log := d.logger()
	res, err := ResolveConflict(ctx, ResolveRequest{
		Waypoints: in.Waypoints,
		Start:     in.Start.String(),
		End:       in.End.String(),
		Flights:   flights,
		Params:    in.Params,
		Location:  d.Location,
		OnAttempt: func(a Attempt) {
			log.Info("mission delayed",
				slog.Int("attempt", a.Number),
				slog.Duration("delay_step", in.Params.DelayStep),
				slog.String("t_start", a.Start.Format(domain.WindowLayout)),
				slog.String("status", string(a.Status)),
				slog.Int("conflicts", a.Conflicts))
		},
	})
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve: %w", err)
	}

	if res.Resolved() {
		log.Info("conflict resolved", slog.Int("attempts", len(res.Attempts)))
	} else {
		log.Warn("conflict unresolved within max attempts",
			slog.Int("attempts", len(res.Attempts)),
			slog.Int("conflicts", len(res.Verdict.Conflicts)))
	}
	return res, nil
}

// Trajectories samples the mission and the flight snapshot for rendering.
func (d *Deconfliction) Trajectories(ctx context.Context, in MissionInput) (_ TrajectorySet, err error) {
	defer obs.Time(ctx, "deconfliction.Trajectories")(&err)

	flights, err := d.LoadFlights(ctx, in.Flights)
	if err != nil {
		return TrajectorySet{}, fmt.Errorf("trajectories: %w", err)
	}

	set, err := SampleFlights(CheckRequest{
		Waypoints: in.Waypoints,
		Start:     in.Start,
		End:       in.End,
		Flights:   flights,
		Params:    in.Params,
		Location:  d.Location,
	})
	if err != nil {
		return TrajectorySet{}, fmt.Errorf("trajectories: %w", err)
	}
	return set, nil
}

// BuildCheckKey normalizes a check request into a cache key: window bounds as
// seconds and every flight reduced to timed waypoints.
func BuildCheckKey(req CheckRequest) (ports.CheckKey, error) {
	t0, err := req.Start.Seconds(req.Location)
	if err != nil {
		return ports.CheckKey{}, fmt.Errorf("build check key: start: %w", err)
	}
	t1, err := req.End.Seconds(req.Location)
	if err != nil {
		return ports.CheckKey{}, fmt.Errorf("build check key: end: %w", err)
	}

	flights := make([]ports.FlightKey, 0, len(req.Flights))
	for _, f := range req.Flights {
		tw, err := TimeFlight(f, req.Location)
		if err != nil {
			return ports.CheckKey{}, fmt.Errorf("build check key: %w", err)
		}
		flights = append(flights, ports.FlightKey{ID: f.Label(), Waypoints: tw})
	}

	return ports.CheckKey{
		Waypoints:    req.Waypoints,
		Start:        t0,
		End:          t1,
		Flights:      flights,
		SafetyRadius: req.Params.SafetyRadius,
		Dt:           req.Params.Dt,
	}, nil
}
