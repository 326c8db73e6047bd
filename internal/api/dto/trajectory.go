package dto

type TrajectoryResponse struct {
	ID        string      `json:"id"`
	Dims      int         `json:"dims"`
	Times     []float64   `json:"times"`
	Positions [][]float64 `json:"positions"`
}

type TrajectoriesResponse struct {
	Primary TrajectoryResponse   `json:"primary"`
	Flights []TrajectoryResponse `json:"flights"`
}
