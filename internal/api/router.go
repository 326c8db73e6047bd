package api

import (
	"deconfliction-service/internal/api/handlers"
	"deconfliction-service/internal/domain"
	"deconfliction-service/internal/services"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc *services.Deconfliction, defaults domain.Params) http.Handler {
	mux := http.NewServeMux()

	flightHandler := &handlers.FlightHandler{Svc: svc}
	missionHandler := &handlers.MissionHandler{
		Svc:      svc,
		Defaults: defaults,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/flights", flightHandler.List)
	mux.HandleFunc("/checks", missionHandler.Check)
	mux.HandleFunc("/resolutions", missionHandler.Resolve)
	mux.HandleFunc("/trajectories", missionHandler.Trajectories)

	return requestIDMiddleware(loggingMiddleware(mux))
}
