package dto

import "deconfliction-service/internal/domain"

type ListFlightsResponse struct {
	Flights []domain.Flight `json:"flights"`
}
