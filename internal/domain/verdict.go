package domain

type Status string

const (
	StatusClear    Status = "clear"
	StatusConflict Status = "conflict detected"
)

// A time-aligned pair of positions closer than the safety radius.
type Conflict struct {
	Time       float64
	PrimaryPos Point
	OtherPos   Point
	Distance   float64
	OtherID    string
}

// Verdict is the aggregate outcome of a mission check. Conflicts are ordered
// by flight (input order) and then by sample time.
type Verdict struct {
	Status    Status
	Conflicts []Conflict
}

// NewVerdict derives the status from the conflict list.
func NewVerdict(conflicts []Conflict) Verdict {
	if len(conflicts) == 0 {
		return Verdict{Status: StatusClear, Conflicts: []Conflict{}}
	}
	return Verdict{Status: StatusConflict, Conflicts: conflicts}
}

func (v Verdict) Clear() bool { return v.Status == StatusClear }
