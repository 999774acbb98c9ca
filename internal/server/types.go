package server

import "github.com/katalvlaran/crucible/grid"

// GridRequest carries the grid and search parameters shared by every
// search endpoint. Zero values fall back to the server's configured
// defaults.
type GridRequest struct {
	Grid      string `json:"grid" binding:"required"`
	Format    string `json:"format" binding:"omitempty,oneof=digits fields"`
	To        []int  `json:"to" binding:"omitempty,coord"`
	MinRun    int    `json:"min_run" binding:"omitempty,min=1"`
	MaxRun    int    `json:"max_run" binding:"omitempty,min=1"`
	Heuristic string `json:"heuristic" binding:"omitempty,oneof=zero dijkstra manhattan astar scaled"`
	StartCost *bool  `json:"start_cost"`
}

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	GridRequest
	From []int `json:"from" binding:"omitempty,coord"`
}

// SolveResponse is returned by POST /v1/solve.
type SolveResponse struct {
	Cost      uint64 `json:"cost"`
	Found     bool   `json:"found"`
	Finalized int    `json:"finalized"`
	Pushed    int    `json:"pushed"`
	Cached    bool   `json:"cached"`
	RequestID string `json:"request_id"`
}

// SweepRequest is the body of POST /v1/sweep. Starts defaults to every
// border cell.
type SweepRequest struct {
	GridRequest
	Starts  [][]int `json:"starts" binding:"omitempty,dive,coord"`
	Workers int     `json:"workers" binding:"omitempty,min=1,max=256"`
}

// SweepItem is one start's outcome.
type SweepItem struct {
	From  [2]int `json:"from"`
	Cost  uint64 `json:"cost"`
	Found bool   `json:"found"`
}

// SweepResponse is returned by POST /v1/sweep. Best is nil when no start
// reaches the end cell.
type SweepResponse struct {
	Best      *SweepItem  `json:"best"`
	Found     bool        `json:"found"`
	Results   []SweepItem `json:"results"`
	RequestID string      `json:"request_id"`
}

// HealthResponse is returned by GET /v1/health.
type HealthResponse struct {
	Status string `json:"status"`
	Cache  bool   `json:"cache"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func pair(xy []int) grid.Coordinate {
	return grid.Coordinate{X: xy[0], Y: xy[1]}
}

func unpair(c grid.Coordinate) [2]int {
	return [2]int{c.X, c.Y}
}
