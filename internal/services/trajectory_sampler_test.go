package services

import (
	"deconfliction-service/internal/domain"
	"errors"
	"math"
	"testing"
)

func TestSampleTrajectorySortsInput(t *testing.T) {
	in := []domain.Waypoint{timedWp(10, 0, 10), timedWp(0, 0, 0), timedWp(5, 5, 5)}

	traj, err := SampleTrajectory(in, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if traj.Len() != 11 {
		t.Fatalf("samples = %d, want 11", traj.Len())
	}
	if traj.Positions[0] != (domain.Point{0, 0, 0}) {
		t.Fatalf("first position = %v", traj.Positions[0])
	}
	if traj.Positions[5] != (domain.Point{5, 5, 0}) {
		t.Fatalf("position at t=5 = %v", traj.Positions[5])
	}
	if traj.Dims != domain.TwoD {
		t.Fatalf("dims = %v, want 2d", traj.Dims)
	}
}

func TestSampleTrajectorySingleWaypoint(t *testing.T) {
	traj, err := SampleTrajectory([]domain.Waypoint{timedWp(3, 4, 7)}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if traj.Len() != 1 || traj.Times[0] != 7 || traj.Positions[0] != (domain.Point{3, 4, 0}) {
		t.Fatalf("single sample = %+v", traj)
	}
}

func TestSampleTrajectoryEndpointInclusion(t *testing.T) {
	cases := []struct {
		name    string
		t0, t1  float64
		dt      float64
		samples int
	}{
		{"exact multiple", 0, 3, 1, 4},
		{"partial last step", 0, 10.5, 1, 12},
		{"fractional dt", 0, 1, 0.1, 11},
		{"large epoch", 1754820000, 1754820180, 1, 181},
		{"dt beyond span", 0, 0.5, 1, 2},
		{"coincident times", 5, 5, 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := []domain.Waypoint{timedWp(0, 0, tc.t0), timedWp(1, 1, tc.t1)}
			traj, err := SampleTrajectory(in, tc.dt)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if traj.Len() != tc.samples {
				t.Fatalf("samples = %d, want %d", traj.Len(), tc.samples)
			}
			if traj.Times[0] != tc.t0 {
				t.Fatalf("first sample = %v, want %v", traj.Times[0], tc.t0)
			}
			if traj.Times[traj.Len()-1] != tc.t1 {
				t.Fatalf("last sample = %v, want %v", traj.Times[traj.Len()-1], tc.t1)
			}
			for i := 1; i < traj.Len(); i++ {
				if traj.Times[i] <= traj.Times[i-1] {
					t.Fatalf("times not strictly increasing at %d", i)
				}
			}
			if len(traj.Positions) != traj.Len() {
				t.Fatalf("positions = %d, times = %d", len(traj.Positions), traj.Len())
			}
		})
	}
}

func TestSampleTrajectoryErrors(t *testing.T) {
	good := []domain.Waypoint{timedWp(0, 0, 0), timedWp(1, 0, 1)}

	for _, dt := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := SampleTrajectory(good, dt); !errors.Is(err, domain.ErrInvalidSamplingInterval) {
			t.Fatalf("dt=%v: expected ErrInvalidSamplingInterval, got %v", dt, err)
		}
	}
	if _, err := SampleTrajectory(nil, 1); !errors.Is(err, domain.ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
	if _, err := SampleTrajectory([]domain.Waypoint{timedWp(0, 0, 0), wp2(1, 1)}, 1); !errors.Is(err, domain.ErrUntimedWaypoint) {
		t.Fatalf("expected ErrUntimedWaypoint, got %v", err)
	}
}

func TestSampleTrajectoryRejectsOversizedGrid(t *testing.T) {
	tests := []struct {
		name string
		wps  []domain.Waypoint
		dt   float64
	}{
		{"tiny dt", []domain.Waypoint{timedWp(0, 0, 0), timedWp(1, 0, 1e9)}, 1e-9},
		{"just over the cap", []domain.Waypoint{timedWp(0, 0, 0), timedWp(1, 0, maxSamples)}, 1},
		{"span overflows", []domain.Waypoint{timedWp(0, 0, -math.MaxFloat64), timedWp(1, 0, math.MaxFloat64)}, 1},
		{"count overflows int", []domain.Waypoint{timedWp(0, 0, 0), timedWp(1, 0, 1e300)}, 1e-300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			traj, err := SampleTrajectory(tt.wps, tt.dt)
			if !errors.Is(err, domain.ErrInvalidSamplingInterval) {
				t.Fatalf("expected ErrInvalidSamplingInterval, got %v (samples=%d)", err, traj.Len())
			}
			if !IsInputError(err) {
				t.Fatalf("oversized grid must be an input error: %v", err)
			}
		})
	}
}

func TestResampleExactnessAndClamping(t *testing.T) {
	srcTimes := []float64{0, 10, 30}
	srcPos := []domain.Point{{0, 0, 0}, {10, -10, 5}, {10, 30, 5}}

	got := Resample(srcTimes, srcPos, []float64{30, 10, 0, -5, 45, 20, 5})

	want := []domain.Point{
		{10, 30, 5},  // control point
		{10, -10, 5}, // control point
		{0, 0, 0},    // control point
		{0, 0, 0},    // clamped low
		{10, 30, 5},  // clamped high
		{10, 10, 5},  // midway on the second leg
		{5, -5, 2.5}, // midway on the first leg
	}
	for i := range want {
		for k := 0; k < 3; k++ {
			if math.Abs(got[i][k]-want[i][k]) > 1e-12 {
				t.Fatalf("target %d = %v, want %v", i, got[i], want[i])
			}
		}
	}
}

func TestInterpDuplicateControlTimes(t *testing.T) {
	xp := []float64{0, 5, 5, 10}
	fp := []float64{0, 1, 3, 4}

	if got := Interp(5, xp, fp); got != 1 {
		t.Fatalf("at duplicate = %v, want 1", got)
	}
	if got := Interp(7.5, xp, fp); got != 3.5 {
		t.Fatalf("after duplicate = %v, want 3.5", got)
	}
	if got := Interp(1, nil, nil); got != 0 {
		t.Fatalf("empty control = %v, want 0", got)
	}
}
