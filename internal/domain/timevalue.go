package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WindowLayout is the fixed text pattern used for mission windows.
const WindowLayout = "2006-01-02 15:04:05"

type TimeKind int

const (
	TimeUnset TimeKind = iota
	TimeNumeric
	TimeInstant
	TimeText
)

// TimeValue holds a timestamp in one of the accepted representations:
// seconds since epoch, a structured time.Time, or text.
type TimeValue struct {
	kind    TimeKind
	seconds float64
	instant time.Time
	text    string
}

func Numeric(seconds float64) TimeValue { return TimeValue{kind: TimeNumeric, seconds: seconds} }
func Instant(t time.Time) TimeValue     { return TimeValue{kind: TimeInstant, instant: t} }
func Text(s string) TimeValue           { return TimeValue{kind: TimeText, text: s} }

func (v TimeValue) Kind() TimeKind { return v.kind }
func (v TimeValue) IsZero() bool   { return v.kind == TimeUnset }

// Layouts tried, in order, for ISO-8601-like text. Layouts without a zone
// are interpreted in the caller's location.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02T15:04Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// Seconds normalizes the value to float seconds since the Unix epoch.
// Zone-less text is read in loc (UTC when nil).
func (v TimeValue) Seconds(loc *time.Location) (float64, error) {
	switch v.kind {
	case TimeNumeric:
		return v.seconds, nil
	case TimeInstant:
		return unixSeconds(v.instant), nil
	case TimeText:
		t, err := ParseText(v.text, loc)
		if err != nil {
			return 0, err
		}
		return unixSeconds(t), nil
	default:
		return 0, &ParseError{Value: "", Err: errors.New("time value is unset")}
	}
}

// ParseText parses ISO-8601-like text first and falls back to WindowLayout.
func ParseText(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	t, err := time.ParseInLocation(WindowLayout, s, loc)
	if err != nil {
		return time.Time{}, &ParseError{Value: s, Err: err}
	}
	return t, nil
}

// ParseWindow parses a window bound that must match WindowLayout exactly.
func ParseWindow(field, s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(WindowLayout, s, loc)
	if err != nil {
		return time.Time{}, &FormatError{Field: field, Value: s, Err: err}
	}
	return t, nil
}

// FromSeconds converts epoch seconds back to a time in loc.
func FromSeconds(s float64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	sec, frac := math.Modf(s)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).In(loc)
}

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

func (v TimeValue) String() string {
	switch v.kind {
	case TimeNumeric:
		return strconv.FormatFloat(v.seconds, 'f', -1, 64)
	case TimeInstant:
		return v.instant.Format(time.RFC3339Nano)
	case TimeText:
		return v.text
	default:
		return ""
	}
}

func (v TimeValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case TimeNumeric:
		return json.Marshal(v.seconds)
	case TimeUnset:
		return []byte("null"), nil
	default:
		return json.Marshal(v.String())
	}
}

func (v *TimeValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = TimeValue{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decode time value: %w", err)
		}
		*v = Text(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("decode time value: %w", err)
	}
	*v = Numeric(f)
	return nil
}

func (v *TimeValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("decode time value: line %d: expected scalar", node.Line)
	}
	switch node.Tag {
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			return fmt.Errorf("decode time value: line %d: %w", node.Line, err)
		}
		*v = Numeric(f)
	case "!!null":
		*v = TimeValue{}
	default:
		// Timestamps are kept as text so the same parsing rules apply.
		*v = Text(node.Value)
	}
	return nil
}
