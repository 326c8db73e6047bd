package config

import (
	"deconfliction-service/internal/domain"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := Get(key, ""); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		slog.Warn("ignoring invalid integer env value", slog.String("key", key), slog.String("value", v))
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	if v := Get(key, ""); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		slog.Warn("ignoring invalid number env value", slog.String("key", key), slog.String("value", v))
	}
	return fallback
}

// GetDuration accepts Go durations ("90s") or bare seconds ("60").
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	d, err := ParseDuration(v)
	if err != nil {
		slog.Warn("ignoring invalid duration env value", slog.String("key", key), slog.String("value", v))
		return fallback
	}
	return d
}

// ParseDuration reads a Go duration ("90s", "1m30s") or a bare number of
// seconds ("60", "1.5").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("parse duration %q: want a Go duration or seconds", s)
	}
	return time.Duration(math.Round(secs * float64(time.Second))), nil
}

// Params returns the deconfliction defaults with environment overrides.
func Params() domain.Params {
	p := domain.DefaultParams()
	p.SafetyRadius = GetFloat("SAFETY_RADIUS", p.SafetyRadius)
	p.Dt = GetFloat("SAMPLE_DT", p.Dt)
	p.DelayStep = GetDuration("DELAY_STEP", p.DelayStep)
	p.MaxAttempts = GetInt("MAX_ATTEMPTS", p.MaxAttempts)
	p.Workers = GetInt("CHECK_WORKERS", p.Workers)
	return p
}

// Location resolves TIME_ZONE (an IANA name), used for zone-less timestamps.
func Location() (*time.Location, error) {
	name := Get("TIME_ZONE", "UTC")
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", name, err)
	}
	return loc, nil
}
