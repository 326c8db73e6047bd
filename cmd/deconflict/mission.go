package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"deconfliction-service/internal/adapters/repositories"
	"deconfliction-service/internal/config"
	"deconfliction-service/internal/domain"
	"deconfliction-service/internal/platform/store"
	"deconfliction-service/internal/services"
)

// missionFile is the on-disk shape of a primary mission.
type missionFile struct {
	Waypoints []domain.Waypoint `json:"waypoints" yaml:"waypoints"`
	TStart    domain.TimeValue  `json:"t_start" yaml:"t_start"`
	TEnd      domain.TimeValue  `json:"t_end" yaml:"t_end"`
	Flights   []domain.Flight   `json:"flights" yaml:"flights"`
}

func readMission(path string) (missionFile, error) {
	var m missionFile
	if strings.TrimSpace(path) == "" {
		return m, fmt.Errorf("read mission: --mission is required")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("read mission: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &m); err != nil {
			return m, fmt.Errorf("read mission %q: parse yaml: %w", path, err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return m, fmt.Errorf("read mission %q: parse json: %w", path, err)
		}
	}
	return m, nil
}

// params layers flags and DECONFLICT_* variables over config.Params. The
// delay step follows config.ParseDuration: a bare number is seconds.
func (a *app) params() (domain.Params, error) {
	p := config.Params()
	p.SafetyRadius = a.v.GetFloat64("safety-radius")
	p.Dt = a.v.GetFloat64("dt")
	p.Workers = a.v.GetInt("workers")
	if a.v.IsSet("delay-step") {
		d, err := config.ParseDuration(a.v.GetString("delay-step"))
		if err != nil {
			return p, fmt.Errorf("delay-step: %w", err)
		}
		p.DelayStep = d
	}
	if a.v.IsSet("max-attempts") {
		p.MaxAttempts = a.v.GetInt("max-attempts")
	}
	return p, nil
}

// setup loads the mission and builds a service bound to the selected flight
// source. The returned func releases any database handle.
func (a *app) setup(ctx context.Context) (*services.Deconfliction, services.MissionInput, func(), error) {
	noop := func() {}

	loc, err := time.LoadLocation(a.v.GetString("tz"))
	if err != nil {
		return nil, services.MissionInput{}, noop, fmt.Errorf("load time zone: %w", err)
	}

	m, err := readMission(a.v.GetString("mission"))
	if err != nil {
		return nil, services.MissionInput{}, noop, err
	}

	params, err := a.params()
	if err != nil {
		return nil, services.MissionInput{}, noop, err
	}

	svc := &services.Deconfliction{Location: loc}
	cleanup := noop
	switch {
	case m.Flights != nil:
		// Flights embedded in the mission file win.
	case a.v.GetBool("store"):
		backend, err := store.Open(ctx)
		if err != nil {
			return nil, services.MissionInput{}, noop, err
		}
		svc.Flights = backend.Repo
		cleanup = func() { _ = backend.Close() }
	default:
		svc.Flights = repositories.NewFileFlightRepository(a.v.GetString("flights"))
	}

	in := services.MissionInput{
		Waypoints: m.Waypoints,
		Start:     m.TStart,
		End:       m.TEnd,
		Flights:   m.Flights,
		Params:    params,
	}
	return svc, in, cleanup, nil
}
