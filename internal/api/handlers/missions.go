package handlers

import (
	"deconfliction-service/internal/api/dto"
	"deconfliction-service/internal/domain"
	"deconfliction-service/internal/services"
	"fmt"
	"math"
	"net/http"
	"time"
)

// MaxResolveAttempts caps max_attempts per resolution request.
const MaxResolveAttempts = 100

// MissionHandler serves mission checks, delay resolution and trajectory
// export. Defaults fills parameters a request leaves out.
type MissionHandler struct {
	Svc      *services.Deconfliction
	Defaults domain.Params
}

func (h *MissionHandler) Check(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CheckRequest
	if !decodeBody(w, r, &req) {
		return
	}

	verdict, err := h.Svc.Check(r.Context(), h.missionInput(req))
	if err != nil {
		writeServiceError(w, r, "check mission", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewVerdictResponse(verdict, h.Svc.Location))
}

func (h *MissionHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.ResolveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	in := h.missionInput(req.CheckRequest)
	if req.DelayStepSeconds != nil {
		in.Params.DelayStep = secondsToDuration(*req.DelayStepSeconds)
	}
	if req.MaxAttempts != nil {
		if *req.MaxAttempts > MaxResolveAttempts {
			writeError(w, r, http.StatusUnprocessableEntity,
				fmt.Sprintf("max_attempts must be at most %d", MaxResolveAttempts))
			return
		}
		in.Params.MaxAttempts = *req.MaxAttempts
	}

	res, err := h.Svc.Resolve(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, "resolve conflict", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewResolutionResponse(res, h.Svc.Location))
}

func (h *MissionHandler) Trajectories(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.CheckRequest
	if !decodeBody(w, r, &req) {
		return
	}

	set, err := h.Svc.Trajectories(r.Context(), h.missionInput(req))
	if err != nil {
		writeServiceError(w, r, "sample trajectories", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewTrajectoriesResponse(set))
}

func (h *MissionHandler) missionInput(req dto.CheckRequest) services.MissionInput {
	p := h.Defaults
	if req.SafetyRadius != nil {
		p.SafetyRadius = *req.SafetyRadius
	}
	if req.Dt != nil {
		p.Dt = *req.Dt
	}

	return services.MissionInput{
		Waypoints: req.Waypoints,
		Start:     req.TStart,
		End:       req.TEnd,
		Flights:   req.Flights,
		Params:    p,
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
