package handlers

import (
	"deconfliction-service/internal/api/dto"
	"deconfliction-service/internal/services"
	"net/http"
)

// FlightHandler exposes the scheduled flight snapshot.
type FlightHandler struct {
	Svc *services.Deconfliction
}

func (h *FlightHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	flights, err := h.Svc.LoadFlights(r.Context(), nil)
	if err != nil {
		writeServiceError(w, r, "list flights", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListFlightsResponse{Flights: flights})
}
