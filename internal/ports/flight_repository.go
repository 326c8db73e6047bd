package ports

import (
	"context"
	"deconfliction-service/internal/domain"
)

// Port: a boundary for retrieving the schedule of other flights.
type FlightRepository interface {
	// Return every scheduled flight, in a stable order.
	ListFlights(ctx context.Context) ([]domain.Flight, error)
}
