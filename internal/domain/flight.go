package domain

// DefaultFlightID labels flights supplied without an identifier.
const DefaultFlightID = "other"

// Represents another scheduled flight sharing the airspace.
// Either every waypoint carries T, or Start and End describe the window
// over which the spatial path is flown at constant speed.
type Flight struct {
	ID        string     `json:"id" yaml:"id"`
	Waypoints []Waypoint `json:"waypoints" yaml:"waypoints"`
	Start     *TimeValue `json:"T_start,omitempty" yaml:"T_start,omitempty"`
	End       *TimeValue `json:"T_end,omitempty" yaml:"T_end,omitempty"`
}

// Label returns the flight id, or DefaultFlightID when empty.
func (f Flight) Label() string {
	if f.ID == "" {
		return DefaultFlightID
	}
	return f.ID
}

// HasWindow reports whether both ends of the time window are present.
func (f Flight) HasWindow() bool {
	return f.Start != nil && !f.Start.IsZero() && f.End != nil && !f.End.IsZero()
}
