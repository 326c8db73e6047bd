package services

import "deconfliction-service/internal/domain"

// DetectConflicts compares the primary trajectory with another over the
// primary samples that fall inside the other's time span (inclusive).
//
// The other trajectory is resampled onto those sample times and every pair
// closer than safetyRadius (strictly) is reported, in sample order. A
// distance equal to the radius is not a conflict. Encounters shorter than one
// sampling interval can fall between samples and go unreported.
//
// OtherID is left empty; the caller tags conflicts with the flight id.
func DetectConflicts(primary, other domain.Trajectory, safetyRadius float64) []domain.Conflict {
	otherStart, otherEnd, ok := other.Span()
	if !ok || primary.Len() == 0 {
		return nil
	}

	idxs := make([]int, 0, primary.Len())
	overlapTimes := make([]float64, 0, primary.Len())
	for i, t := range primary.Times {
		if t >= otherStart && t <= otherEnd {
			idxs = append(idxs, i)
			overlapTimes = append(overlapTimes, t)
		}
	}

	// Disjoint schedules never conflict, however close the paths are.
	if len(idxs) == 0 {
		return nil
	}

	resampled := Resample(other.Times, other.Positions, overlapTimes)

	var conflicts []domain.Conflict
	for k, i := range idxs {
		p := primary.Positions[i]
		o := resampled[k]
		d := p.Distance(o)
		if d < safetyRadius {
			conflicts = append(conflicts, domain.Conflict{
				Time:       primary.Times[i],
				PrimaryPos: p,
				OtherPos:   o,
				Distance:   d,
			})
		}
	}
	return conflicts
}
