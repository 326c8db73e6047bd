package domain

import "math"

// Dimensionality of a waypoint set. Decided once per mission and carried
// through every derived structure.
type Dimensionality int

const (
	TwoD Dimensionality = iota + 2
	ThreeD
)

func (d Dimensionality) String() string {
	if d == ThreeD {
		return "3d"
	}
	return "2d"
}

// Represents a spatial point of a planned path, optionally timed.
// Z and T are optional; a missing Z reads as 0 when the set is 3D.
type Waypoint struct {
	X float64  `json:"x" yaml:"x"`
	Y float64  `json:"y" yaml:"y"`
	Z *float64 `json:"z,omitempty" yaml:"z,omitempty"`
	T *float64 `json:"t,omitempty" yaml:"t,omitempty"`
}

// Position of the waypoint with z defaulting to 0.
func (w Waypoint) Position() Point {
	p := Point{w.X, w.Y, 0}
	if w.Z != nil {
		p[2] = *w.Z
	}
	return p
}

func (w Waypoint) Timed() bool { return w.T != nil }

// DimensionalityOf reports ThreeD if any waypoint carries z.
func DimensionalityOf(waypoints []Waypoint) Dimensionality {
	for _, wp := range waypoints {
		if wp.Z != nil {
			return ThreeD
		}
	}
	return TwoD
}

// AllTimed reports whether every waypoint carries a timestamp.
// An empty set is not considered timed.
func AllTimed(waypoints []Waypoint) bool {
	if len(waypoints) == 0 {
		return false
	}
	for _, wp := range waypoints {
		if !wp.Timed() {
			return false
		}
	}
	return true
}

// Point is an x, y, z position. 2D points keep z at 0.
type Point [3]float64

// Coords returns the point as [x, y] or [x, y, z] for external consumers.
func (p Point) Coords(d Dimensionality) []float64 {
	if d == ThreeD {
		return []float64{p[0], p[1], p[2]}
	}
	return []float64{p[0], p[1]}
}

// Distance is the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	dx := p[0] - q[0]
	dy := p[1] - q[1]
	dz := p[2] - q[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Float64 returns a pointer to v, for building optional waypoint fields.
func Float64(v float64) *float64 { return &v }
