package domain

// Trajectory is a path sampled at a fixed interval: Times is strictly
// increasing and Positions has the same length.
type Trajectory struct {
	Dims      Dimensionality
	Times     []float64
	Positions []Point
}

func (t Trajectory) Len() int { return len(t.Times) }

// Span returns the first and last sample time.
func (t Trajectory) Span() (start, end float64, ok bool) {
	if len(t.Times) == 0 {
		return 0, 0, false
	}
	return t.Times[0], t.Times[len(t.Times)-1], true
}
