package dto

import (
	"deconfliction-service/internal/domain"
	"deconfliction-service/internal/services"
	"time"
)

// NewVerdictResponse renders conflict positions in 3D (z=0 for 2D sources)
// and conflict times in loc.
func NewVerdictResponse(v domain.Verdict, loc *time.Location) VerdictResponse {
	if loc == nil {
		loc = time.UTC
	}

	out := VerdictResponse{
		Status:    string(v.Status),
		Conflicts: make([]ConflictResponse, 0, len(v.Conflicts)),
	}
	for _, c := range v.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictResponse{
			Time:       c.Time,
			At:         domain.FromSeconds(c.Time, loc).Format(time.RFC3339Nano),
			PrimaryPos: c.PrimaryPos.Coords(domain.ThreeD),
			OtherPos:   c.OtherPos.Coords(domain.ThreeD),
			Distance:   c.Distance,
			OtherID:    c.OtherID,
		})
	}
	return out
}

func NewResolutionResponse(res services.Resolution, loc *time.Location) ResolutionResponse {
	out := ResolutionResponse{
		Verdict:  NewVerdictResponse(res.Verdict, loc),
		TStart:   res.Start.Format(domain.WindowLayout),
		TEnd:     res.End.Format(domain.WindowLayout),
		Resolved: res.Resolved(),
		Attempts: make([]AttemptResponse, 0, len(res.Attempts)),
	}
	for _, a := range res.Attempts {
		out.Attempts = append(out.Attempts, AttemptResponse{
			Attempt:   a.Number,
			TStart:    a.Start.Format(domain.WindowLayout),
			TEnd:      a.End.Format(domain.WindowLayout),
			Status:    string(a.Status),
			Conflicts: a.Conflicts,
		})
	}
	return out
}

func NewTrajectoriesResponse(set services.TrajectorySet) TrajectoriesResponse {
	out := TrajectoriesResponse{
		Primary: newTrajectoryResponse("primary", set.Primary),
		Flights: make([]TrajectoryResponse, 0, len(set.Flights)),
	}
	for _, f := range set.Flights {
		out.Flights = append(out.Flights, newTrajectoryResponse(f.ID, f.Trajectory))
	}
	return out
}

func newTrajectoryResponse(id string, t domain.Trajectory) TrajectoryResponse {
	out := TrajectoryResponse{
		ID:        id,
		Dims:      int(t.Dims),
		Times:     t.Times,
		Positions: make([][]float64, 0, t.Len()),
	}
	for _, p := range t.Positions {
		out.Positions = append(out.Positions, p.Coords(t.Dims))
	}
	return out
}
