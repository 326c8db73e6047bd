package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPath               = errors.New("path has no waypoints")
	ErrInvalidSamplingInterval = errors.New("sampling interval must be a positive finite number")
	ErrUntimedWaypoint         = errors.New("waypoint has no timestamp")
	ErrInvalidParameter        = errors.New("invalid parameter")
)

// ParseError reports a time value that matches no known representation.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse time %q: unrecognized format", e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingTimingError reports a flight with neither per-waypoint timestamps
// nor a start/end window.
type MissingTimingError struct {
	FlightID string
}

func (e *MissingTimingError) Error() string {
	return fmt.Sprintf("other flight %q missing timing info", e.FlightID)
}

// FormatError reports a window bound that does not match WindowLayout.
type FormatError struct {
	Field string
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s %q does not match %q", e.Field, e.Value, "YYYY-MM-DD HH:MM:SS")
}

func (e *FormatError) Unwrap() error { return e.Err }
