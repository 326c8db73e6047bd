package services

import (
	"context"
	"deconfliction-service/internal/domain"
	"errors"
	"reflect"
	"testing"
)

func TestCheckMissionDemoScenario(t *testing.T) {
	req := CheckRequest{
		Waypoints: demoPrimary(),
		Start:     domain.Text(demoStart),
		End:       domain.Text(demoEnd),
		Flights:   demoFlights(),
		Params:    demoParams(),
	}

	v, err := CheckMission(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v.Status != domain.StatusConflict {
		t.Fatalf("status = %q, want %q", v.Status, domain.StatusConflict)
	}
	if len(v.Conflicts) != 22 {
		t.Fatalf("conflicts = %d, want 22", len(v.Conflicts))
	}

	t0 := epoch(demoStart)
	if first := v.Conflicts[0].Time - t0; first != 109 {
		t.Fatalf("first conflict at +%v, want +109", first)
	}
	if last := v.Conflicts[len(v.Conflicts)-1].Time - t0; last != 130 {
		t.Fatalf("last conflict at +%v, want +130", last)
	}
	for i, c := range v.Conflicts {
		if c.OtherID != "Drone3" {
			t.Fatalf("conflict %d with %q, want Drone3", i, c.OtherID)
		}
		if c.Distance >= 10 {
			t.Fatalf("conflict %d distance %v not under radius", i, c.Distance)
		}
		if i > 0 && c.Time <= v.Conflicts[i-1].Time {
			t.Fatalf("conflicts not in time order at %d", i)
		}
	}

	// Reproducible regardless of fan-out width.
	req.Params.Workers = 1
	again, err := CheckMission(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(v, again) {
		t.Fatal("verdict differs between runs")
	}
}

func TestCheckMissionDisjointWindowsAreClear(t *testing.T) {
	s, e := window("2025-08-10 10:05:00", "2025-08-10 10:10:00")
	flights := []domain.Flight{{
		ID:        "late",
		Waypoints: demoPrimary(),
		Start:     s,
		End:       e,
	}}

	v, err := CheckMission(context.Background(), CheckRequest{
		Waypoints: demoPrimary(),
		Start:     domain.Text(demoStart),
		End:       domain.Text(demoEnd),
		Flights:   flights,
		Params:    demoParams(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !v.Clear() || len(v.Conflicts) != 0 {
		t.Fatalf("verdict = %+v, want clear", v)
	}
}

func TestCheckMissionMissingTiming(t *testing.T) {
	flights := append(demoFlights(),
		domain.Flight{ID: "untimed-1", Waypoints: []domain.Waypoint{wp2(0, 0), wp2(1, 1)}},
		domain.Flight{ID: "untimed-2", Waypoints: []domain.Waypoint{wp2(0, 0)}},
	)

	_, err := CheckMission(context.Background(), CheckRequest{
		Waypoints: demoPrimary(),
		Start:     domain.Text(demoStart),
		End:       domain.Text(demoEnd),
		Flights:   flights,
		Params:    demoParams(),
	})

	var me *domain.MissingTimingError
	if !errors.As(err, &me) {
		t.Fatalf("expected MissingTimingError, got %v", err)
	}
	if me.FlightID != "untimed-1" {
		t.Fatalf("flight id = %q, want untimed-1", me.FlightID)
	}
}

func TestCheckMissionTimingSources(t *testing.T) {
	t0 := epoch(demoStart)
	s, e := window(demoStart, demoEnd)

	cases := []struct {
		name   string
		flight domain.Flight
	}{
		{
			name: "pre-timed waypoints without window",
			flight: domain.Flight{ID: "timed", Waypoints: []domain.Waypoint{
				timedWp(0, 0, t0+60), timedWp(0, 0, t0),
			}},
		},
		{
			name: "partially timed falls back to window",
			flight: domain.Flight{ID: "partial", Start: s, End: e, Waypoints: []domain.Waypoint{
				timedWp(0, 0, 0), wp2(0, 0),
			}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := CheckMission(context.Background(), CheckRequest{
				Waypoints: []domain.Waypoint{wp2(0, 0), wp2(100, 0)},
				Start:     domain.Numeric(t0),
				End:       domain.Numeric(t0 + 100),
				Flights:   []domain.Flight{tc.flight},
				Params:    demoParams(),
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			// Primary moves 1 unit/s away from the origin: t0..t0+9 are inside 10 units.
			if len(v.Conflicts) != 10 {
				t.Fatalf("conflicts = %d, want 10", len(v.Conflicts))
			}
			if v.Conflicts[0].Time != t0 || v.Conflicts[0].OtherID != tc.flight.ID {
				t.Fatalf("first conflict = %+v", v.Conflicts[0])
			}
		})
	}
}

func TestCheckMissionOrdersByFlightThenTime(t *testing.T) {
	late := []domain.Waypoint{timedWp(50, 0, 45), timedWp(50, 0, 55)}
	early := []domain.Waypoint{timedWp(10, 0, 5), timedWp(10, 0, 15)}

	v, err := CheckMission(context.Background(), CheckRequest{
		Waypoints: []domain.Waypoint{wp2(0, 0), wp2(100, 0)},
		Start:     domain.Numeric(0),
		End:       domain.Numeric(100),
		Flights: []domain.Flight{
			{ID: "late", Waypoints: late},
			{ID: "early", Waypoints: early},
		},
		Params: domain.Params{SafetyRadius: 2, Dt: 1, Workers: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ids []string
	for _, c := range v.Conflicts {
		if len(ids) == 0 || ids[len(ids)-1] != c.OtherID {
			ids = append(ids, c.OtherID)
		}
	}
	if !reflect.DeepEqual(ids, []string{"late", "early"}) {
		t.Fatalf("flight order = %v, want [late early]", ids)
	}
	if len(v.Conflicts) != 6 {
		t.Fatalf("conflicts = %d, want 6", len(v.Conflicts))
	}
}

func TestCheckMissionReversedWindow(t *testing.T) {
	// The reversed primary flies from (100,0) at t=0 back to the origin at
	// t=100, so it meets a flight hovering at (100,0) early on.
	v, err := CheckMission(context.Background(), CheckRequest{
		Waypoints: []domain.Waypoint{wp2(0, 0), wp2(100, 0)},
		Start:     domain.Numeric(100),
		End:       domain.Numeric(0),
		Flights: []domain.Flight{{
			ID:        "hover",
			Waypoints: []domain.Waypoint{timedWp(100, 0, 0), timedWp(100, 0, 100)},
		}},
		Params: domain.Params{SafetyRadius: 1.5, Dt: 1, Workers: 1},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(v.Conflicts) != 2 || v.Conflicts[0].Time != 0 || v.Conflicts[1].Time != 1 {
		t.Fatalf("conflicts = %+v, want t=0 and t=1", v.Conflicts)
	}
}

func TestCheckMissionInvalidInput(t *testing.T) {
	base := CheckRequest{
		Waypoints: demoPrimary(),
		Start:     domain.Text(demoStart),
		End:       domain.Text(demoEnd),
		Params:    demoParams(),
	}

	noPath := base
	noPath.Waypoints = nil
	if _, err := CheckMission(context.Background(), noPath); !errors.Is(err, domain.ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}

	badRadius := base
	badRadius.Params.SafetyRadius = -1
	if _, err := CheckMission(context.Background(), badRadius); !errors.Is(err, domain.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}

	badDt := base
	badDt.Params.Dt = 0
	_, err := CheckMission(context.Background(), badDt)
	if !errors.Is(err, domain.ErrInvalidSamplingInterval) || !IsInputError(err) {
		t.Fatalf("expected ErrInvalidSamplingInterval, got %v", err)
	}

	emptyFlight := base
	emptyFlight.Flights = []domain.Flight{{ID: "ghost"}}
	if _, err := CheckMission(context.Background(), emptyFlight); !errors.Is(err, domain.ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath for flight, got %v", err)
	}

	if IsInputError(context.Canceled) {
		t.Fatal("context errors are not input errors")
	}
}

func TestCheckMissionDoesNotModifyFlights(t *testing.T) {
	flights := demoFlights()
	flights[0].Waypoints = []domain.Waypoint{timedWp(5, 0, 2), timedWp(0, 0, 1)}
	before := flights[0].Waypoints[0]

	_, err := CheckMission(context.Background(), CheckRequest{
		Waypoints: demoPrimary(),
		Start:     domain.Text(demoStart),
		End:       domain.Text(demoEnd),
		Flights:   flights,
		Params:    demoParams(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if flights[0].Waypoints[0] != before || flights[1].Waypoints[0].T != nil {
		t.Fatal("flight snapshot was modified")
	}
}
