package services

import (
	"context"
	"deconfliction-service/internal/domain"
	"fmt"
	"time"
)

type ResolveRequest struct {
	Waypoints []domain.Waypoint
	// Start and End must match domain.WindowLayout.
	Start    string
	End      string
	Flights  []domain.Flight
	Params   domain.Params
	Location *time.Location
	// OnAttempt, when set, is called after each delayed re-check.
	OnAttempt func(Attempt)
}

// One delayed re-check of the mission.
type Attempt struct {
	Number    int
	Start     time.Time
	End       time.Time
	Status    domain.Status
	Conflicts int
}

// Resolution is the last verdict and the window it was computed for.
// Attempts holds one entry per delay applied; the window differs from the
// requested one by exactly len(Attempts) * DelayStep.
type Resolution struct {
	Verdict  domain.Verdict
	Start    time.Time
	End      time.Time
	Attempts []Attempt
}

func (r Resolution) Resolved() bool { return r.Verdict.Clear() }

// ResolveConflict delays the mission window by a fixed step until a check
// comes back clear or MaxAttempts delays have been tried.
//
// The search only moves forward in time and never varies the step. Running
// out of attempts is not an error: the last conflicting verdict is returned
// and the caller decides what to make of it.
func ResolveConflict(ctx context.Context, req ResolveRequest) (Resolution, error) {
	start, err := domain.ParseWindow("t_start", req.Start, req.Location)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve conflict: %w", err)
	}
	end, err := domain.ParseWindow("t_end", req.End, req.Location)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve conflict: %w", err)
	}

	step := req.Params.DelayStep
	if step <= 0 {
		return Resolution{}, fmt.Errorf("resolve conflict: delay step %v: %w", step, domain.ErrInvalidParameter)
	}
	if req.Params.MaxAttempts < 0 {
		return Resolution{}, fmt.Errorf("resolve conflict: max attempts %d: %w", req.Params.MaxAttempts, domain.ErrInvalidParameter)
	}

	check := func(s, e time.Time) (domain.Verdict, error) {
		return CheckMission(ctx, CheckRequest{
			Waypoints: req.Waypoints,
			Start:     domain.Instant(s),
			End:       domain.Instant(e),
			Flights:   req.Flights,
			Params:    req.Params,
			Location:  req.Location,
		})
	}

	verdict, err := check(start, end)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve conflict: %w", err)
	}

	attempts := []Attempt{}
	for !verdict.Clear() && len(attempts) < req.Params.MaxAttempts {
		if err := ctx.Err(); err != nil {
			return Resolution{}, fmt.Errorf("resolve conflict: %w", err)
		}

		start = start.Add(step)
		end = end.Add(step)

		verdict, err = check(start, end)
		if err != nil {
			return Resolution{}, fmt.Errorf("resolve conflict: attempt %d: %w", len(attempts)+1, err)
		}

		a := Attempt{
			Number:    len(attempts) + 1,
			Start:     start,
			End:       end,
			Status:    verdict.Status,
			Conflicts: len(verdict.Conflicts),
		}
		attempts = append(attempts, a)
		if req.OnAttempt != nil {
			req.OnAttempt(a)
		}
	}

	return Resolution{
		Verdict:  verdict,
		Start:    start,
		End:      end,
		Attempts: attempts,
	}, nil
}
