package services

import (
	"deconfliction-service/internal/domain"
	"fmt"
	"math"
	"slices"
	"sort"
)

// endpointEpsilon is the tolerance, in seconds, within which a grid point is
// considered to coincide with the final control time.
const endpointEpsilon = 1e-9

// maxSamples bounds the grid of a single trajectory. A longer grid means the
// window is too long for dt and is rejected as an invalid sampling interval.
const maxSamples = 10_000_000

// SampleTrajectory turns timed waypoints (in any order) into a trajectory
// sampled every dt seconds from the first to the last control time.
//
// Grid points are t0 + i*dt. The last control time is always the final
// sample: it replaces a grid point within endpointEpsilon of it, otherwise it
// is appended. Positions are interpolated per axis and clamp outside the
// control range.
func SampleTrajectory(timed []domain.Waypoint, dt float64) (domain.Trajectory, error) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return domain.Trajectory{}, fmt.Errorf("sample trajectory: dt=%v: %w", dt, domain.ErrInvalidSamplingInterval)
	}
	if len(timed) == 0 {
		return domain.Trajectory{}, fmt.Errorf("sample trajectory: %w", domain.ErrEmptyPath)
	}
	for i, wp := range timed {
		if !wp.Timed() {
			return domain.Trajectory{}, fmt.Errorf("sample trajectory: waypoint %d: %w", i, domain.ErrUntimedWaypoint)
		}
	}

	dims := domain.DimensionalityOf(timed)

	sorted := slices.Clone(timed)
	slices.SortStableFunc(sorted, func(a, b domain.Waypoint) int {
		if *a.T < *b.T {
			return -1
		}
		if *a.T > *b.T {
			return 1
		}
		return 0
	})

	times := make([]float64, len(sorted))
	positions := make([]domain.Point, len(sorted))
	for i, wp := range sorted {
		times[i] = *wp.T
		positions[i] = wp.Position()
	}

	if len(sorted) == 1 {
		return domain.Trajectory{Dims: dims, Times: times, Positions: positions}, nil
	}

	grid, err := sampleGrid(times[0], times[len(times)-1], dt)
	if err != nil {
		return domain.Trajectory{}, fmt.Errorf("sample trajectory: %w", err)
	}

	return domain.Trajectory{
		Dims:      dims,
		Times:     grid,
		Positions: Resample(times, positions, grid),
	}, nil
}

func sampleGrid(t0, t1, dt float64) ([]float64, error) {
	count := math.Floor((t1-t0)/dt) + 1
	if math.IsNaN(count) || math.IsInf(count, 0) || count > maxSamples {
		return nil, fmt.Errorf("span %v s at dt=%v exceeds %d samples: %w",
			t1-t0, dt, maxSamples, domain.ErrInvalidSamplingInterval)
	}

	n := max(int(count), 1)
	grid := make([]float64, 0, n+1)
	for i := 0; i < n; i++ {
		t := t0 + float64(i)*dt
		if t >= t1-endpointEpsilon {
			break
		}
		grid = append(grid, t)
	}
	return append(grid, t1), nil
}

// Resample interpolates srcPos (controlled at ascending srcTimes) at each
// target time. Targets may be unsorted and out of range; out-of-range targets
// take the nearest endpoint position.
func Resample(srcTimes []float64, srcPos []domain.Point, targets []float64) []domain.Point {
	out := make([]domain.Point, len(targets))
	if len(srcTimes) == 0 {
		return out
	}

	axis := make([]float64, len(srcPos))
	for k := 0; k < 3; k++ {
		for i, p := range srcPos {
			axis[i] = p[k]
		}
		for j, t := range targets {
			out[j][k] = Interp(t, srcTimes, axis)
		}
	}
	return out
}

// Interp is one-dimensional piecewise-linear interpolation of fp over the
// ascending control points xp, with flat extension beyond either end.
func Interp(x float64, xp, fp []float64) float64 {
	n := len(xp)
	if n == 0 {
		return 0
	}
	if x <= xp[0] {
		return fp[0]
	}
	if x >= xp[n-1] {
		return fp[n-1]
	}

	// First index with xp[j] >= x; 0 < j < n here.
	j := sort.SearchFloat64s(xp, x)
	if xp[j] == x {
		return fp[j]
	}
	x0, x1 := xp[j-1], xp[j]
	f0, f1 := fp[j-1], fp[j]
	return f0 + (x-x0)/(x1-x0)*(f1-f0)
}
