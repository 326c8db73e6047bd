package services

import (
	"deconfliction-service/internal/domain"
	"math"
	"testing"
)

// hover builds a trajectory that stays at p from t0 to t1.
func hover(t *testing.T, p domain.Point, t0, t1 float64) domain.Trajectory {
	t.Helper()
	in := []domain.Waypoint{
		{X: p[0], Y: p[1], Z: domain.Float64(p[2]), T: domain.Float64(t0)},
		{X: p[0], Y: p[1], Z: domain.Float64(p[2]), T: domain.Float64(t1)},
	}
	traj, err := SampleTrajectory(in, 1)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	return traj
}

func TestDetectConflictsNoOverlap(t *testing.T) {
	primary := hover(t, domain.Point{0, 0, 0}, 0, 10)
	other := hover(t, domain.Point{0, 0, 0}, 10.5, 20)

	if got := DetectConflicts(primary, other, 100); len(got) != 0 {
		t.Fatalf("disjoint schedules produced %d conflicts", len(got))
	}
}

func TestDetectConflictsThresholdIsOpen(t *testing.T) {
	primary := hover(t, domain.Point{0, 0, 0}, 0, 4)
	other := hover(t, domain.Point{3, 4, 0}, 0, 4)

	if got := DetectConflicts(primary, other, 5); len(got) != 0 {
		t.Fatalf("distance equal to radius reported %d conflicts", len(got))
	}

	got := DetectConflicts(primary, other, math.Nextafter(5, 6))
	if len(got) != 5 {
		t.Fatalf("conflicts = %d, want 5", len(got))
	}
	for _, c := range got {
		if c.Distance != 5 {
			t.Fatalf("distance = %v, want 5", c.Distance)
		}
		if c.OtherID != "" {
			t.Fatalf("detector must not tag ids, got %q", c.OtherID)
		}
	}
}

func TestDetectConflictsInclusiveOverlapBoundary(t *testing.T) {
	primary := hover(t, domain.Point{0, 0, 0}, 0, 10)
	other := hover(t, domain.Point{1, 0, 0}, 10, 20)

	got := DetectConflicts(primary, other, 2)
	if len(got) != 1 || got[0].Time != 10 {
		t.Fatalf("conflicts = %+v, want one at t=10", got)
	}
}

func TestDetectConflictsResamplesOther(t *testing.T) {
	// Primary flies east along y=0; the other flies west along y=1 sampled
	// at a coarser interval. They pass each other at t=5.
	primary, err := SampleTrajectory([]domain.Waypoint{timedWp(0, 0, 0), timedWp(10, 0, 10)}, 1)
	if err != nil {
		t.Fatalf("sample primary: %v", err)
	}
	other, err := SampleTrajectory([]domain.Waypoint{timedWp(10, 1, 0), timedWp(0, 1, 10)}, 2.5)
	if err != nil {
		t.Fatalf("sample other: %v", err)
	}

	got := DetectConflicts(primary, other, 2)

	// |dx| = |10 - 2t| < sqrt(3) holds for t in {5}; t=4 and t=6 give |dx| = 2.
	if len(got) != 1 {
		t.Fatalf("conflicts = %+v, want 1", got)
	}
	c := got[0]
	if c.Time != 5 || c.PrimaryPos != (domain.Point{5, 0, 0}) || c.OtherPos != (domain.Point{5, 1, 0}) || c.Distance != 1 {
		t.Fatalf("conflict = %+v", c)
	}
}

func TestDetectConflictsEmptyTrajectories(t *testing.T) {
	primary := hover(t, domain.Point{0, 0, 0}, 0, 1)
	if got := DetectConflicts(primary, domain.Trajectory{}, 10); got != nil {
		t.Fatalf("empty other = %+v", got)
	}
	if got := DetectConflicts(domain.Trajectory{}, primary, 10); got != nil {
		t.Fatalf("empty primary = %+v", got)
	}
}
