package domain

import "time"

// Tunables of a check or resolution. All are passed explicitly.
type Params struct {
	SafetyRadius float64
	Dt           float64
	DelayStep    time.Duration
	MaxAttempts  int
	Workers      int
}

func DefaultParams() Params {
	return Params{
		SafetyRadius: 5.0,
		Dt:           1.0,
		DelayStep:    60 * time.Second,
		MaxAttempts:  10,
		Workers:      4,
	}
}
