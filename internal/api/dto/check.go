package dto

import (
	"deconfliction-service/internal/domain"
)

// CheckRequest describes a primary mission. Omitted flights mean the stored
// schedule; an explicit empty list checks against nothing.
type CheckRequest struct {
	Waypoints    []domain.Waypoint `json:"waypoints"`
	TStart       domain.TimeValue  `json:"t_start"`
	TEnd         domain.TimeValue  `json:"t_end"`
	Flights      []domain.Flight   `json:"flights"`
	SafetyRadius *float64          `json:"safety_radius"`
	Dt           *float64          `json:"dt"`
}

type ResolveRequest struct {
	CheckRequest
	DelayStepSeconds *float64 `json:"delay_step"`
	MaxAttempts      *int     `json:"max_attempts"`
}

type ConflictResponse struct {
	Time       float64   `json:"time"`
	At         string    `json:"at"`
	PrimaryPos []float64 `json:"primary_pos"`
	OtherPos   []float64 `json:"other_pos"`
	Distance   float64   `json:"distance"`
	OtherID    string    `json:"other_id"`
}

type VerdictResponse struct {
	Status    string             `json:"status"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

type AttemptResponse struct {
	Attempt   int    `json:"attempt"`
	TStart    string `json:"t_start"`
	TEnd      string `json:"t_end"`
	Status    string `json:"status"`
	Conflicts int    `json:"conflicts"`
}

type ResolutionResponse struct {
	Verdict  VerdictResponse   `json:"verdict"`
	TStart   string            `json:"t_start"`
	TEnd     string            `json:"t_end"`
	Resolved bool              `json:"resolved"`
	Attempts []AttemptResponse `json:"attempts"`
}
