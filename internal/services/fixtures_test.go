package services

import (
	"deconfliction-service/internal/domain"
	"time"
)

const (
	demoStart = "2025-08-10 10:00:00"
	demoEnd   = "2025-08-10 10:03:00"
)

func wp(x, y, z float64) domain.Waypoint {
	return domain.Waypoint{X: x, Y: y, Z: domain.Float64(z)}
}

func wp2(x, y float64) domain.Waypoint {
	return domain.Waypoint{X: x, Y: y}
}

func timedWp(x, y, t float64) domain.Waypoint {
	return domain.Waypoint{X: x, Y: y, T: domain.Float64(t)}
}

func window(start, end string) (*domain.TimeValue, *domain.TimeValue) {
	s, e := domain.Text(start), domain.Text(end)
	return &s, &e
}

func demoPrimary() []domain.Waypoint {
	return []domain.Waypoint{wp(0, 0, 0), wp(100, 0, 20), wp(200, 50, 50)}
}

func demoFlights() []domain.Flight {
	s1, e1 := window("2025-08-10 10:00:00", "2025-08-10 10:04:00")
	s2, e2 := window("2025-08-10 10:02:00", "2025-08-10 10:06:00")
	s3, e3 := window("2025-08-10 09:59:00", "2025-08-10 10:03:00")

	return []domain.Flight{
		{
			ID:        "Drone1",
			Waypoints: []domain.Waypoint{wp(10, -40, 0), wp(50, -30, 50), wp(150, -9, 50), wp(180, 0, 0)},
			Start:     s1,
			End:       e1,
		},
		{
			ID:        "Drone2",
			Waypoints: []domain.Waypoint{wp(0, 10, 0), wp(200, 40, 50)},
			Start:     s2,
			End:       e2,
		},
		{
			ID:        "Drone3",
			Waypoints: []domain.Waypoint{wp(100, -20, 0), wp(150, 30, 40)},
			Start:     s3,
			End:       e3,
		},
	}
}

func demoParams() domain.Params {
	p := domain.DefaultParams()
	p.SafetyRadius = 10
	p.Dt = 1
	return p
}

func epoch(s string) float64 {
	t, err := time.ParseInLocation(domain.WindowLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return float64(t.Unix())
}
