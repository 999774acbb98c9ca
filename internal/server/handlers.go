package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/crucible/grid"
	"github.com/katalvlaran/crucible/internal/store"
	"github.com/katalvlaran/crucible/runpath"
)

// search is a decoded GridRequest ready to run.
type search struct {
	g    *grid.Grid
	to   grid.Coordinate
	opts []runpath.Option
	key  store.Params
}

// prepare parses the grid and merges request fields over the configured
// defaults. Errors are client errors.
func (s *Server) prepare(req GridRequest) (search, error) {
	cfg := s.cfg
	if req.Format != "" {
		cfg.Search.Format = req.Format
	}
	g, err := grid.ParseString(req.Grid, grid.WithFormat(cfg.GridFormat()))
	if err != nil {
		return search{}, err
	}

	if req.MinRun != 0 {
		cfg.Search.MinRun = req.MinRun
	}
	if req.MaxRun != 0 {
		cfg.Search.MaxRun = req.MaxRun
	}
	if req.Heuristic != "" {
		cfg.Search.Heuristic = req.Heuristic
	}
	if req.StartCost != nil {
		cfg.Search.StartCost = *req.StartCost
	}

	out := search{
		g:  g,
		to: g.BottomRight(),
		opts: append(cfg.SearchOptions(g),
			runpath.WithLogger(s.logger)),
		key: store.Params{
			MinRun:    cfg.Search.MinRun,
			MaxRun:    cfg.Search.MaxRun,
			StartCost: cfg.Search.StartCost,
			Heuristic: cfg.Search.Heuristic,
		},
	}
	if len(req.To) == 2 {
		out.to = pair(req.To)
	}
	out.key.To = out.to

	return out, nil
}

func (s *Server) handleSolve(c *gin.Context) {
	var req SolveRequest
	if !s.bind(c, &req) {
		return
	}
	sr, err := s.prepare(req.GridRequest)
	if err != nil {
		s.fail(c, err)
		return
	}
	from := sr.g.TopLeft()
	if len(req.From) == 2 {
		from = pair(req.From)
	}
	sr.key.From = from

	resp := SolveResponse{RequestID: c.GetString(ctxRequestID)}
	if s.cache != nil && sr.g.InBounds(from) && sr.g.InBounds(sr.to) {
		key := store.Key(sr.g, sr.key)
		if e, err := s.cache.Get(key); err == nil {
			resp.Cost, resp.Found, resp.Finalized, resp.Pushed = e.Cost, e.Found, e.Finalized, e.Pushed
			resp.Cached = true
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	ctx, cancel := s.searchContext(c)
	defer cancel()
	res, err := runpath.Search(ctx, sr.g, from, sr.to, sr.opts...)
	if err != nil {
		s.fail(c, err)
		return
	}

	if s.cache != nil {
		entry := store.Entry{Cost: res.Cost, Found: res.Found, Finalized: res.Finalized, Pushed: res.Pushed}
		if err := s.cache.Put(store.Key(sr.g, sr.key), entry); err != nil {
			s.logger.Warn("cache put failed", slog.String("error", err.Error()))
		}
	}

	resp.Cost, resp.Found, resp.Finalized, resp.Pushed = res.Cost, res.Found, res.Finalized, res.Pushed
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSweep(c *gin.Context) {
	var req SweepRequest
	if !s.bind(c, &req) {
		return
	}
	sr, err := s.prepare(req.GridRequest)
	if err != nil {
		s.fail(c, err)
		return
	}

	starts := sr.g.Border()
	if len(req.Starts) > 0 {
		starts = make([]grid.Coordinate, len(req.Starts))
		for i, xy := range req.Starts {
			starts[i] = pair(xy)
		}
	}
	opts := sr.opts
	if req.Workers > 0 {
		opts = append(opts, runpath.WithWorkers(req.Workers))
	}

	ctx, cancel := s.searchContext(c)
	defer cancel()
	out, err := runpath.Sweep(ctx, sr.g, starts, sr.to, opts...)
	if err != nil {
		s.fail(c, err)
		return
	}

	resp := SweepResponse{
		Found:     out.Found,
		Results:   make([]SweepItem, len(out.Results)),
		RequestID: c.GetString(ctxRequestID),
	}
	for i, r := range out.Results {
		resp.Results[i] = SweepItem{From: unpair(r.From), Cost: r.Result.Cost, Found: r.Result.Found}
	}
	if out.Found {
		resp.Best = &SweepItem{From: unpair(out.Best.From), Cost: out.Best.Result.Cost, Found: true}
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Cache: s.cache != nil})
}

func (s *Server) searchContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if d := s.cfg.Search.Timeout; d > 0 {
		return context.WithTimeout(c.Request.Context(), d)
	}
	return context.WithCancel(c.Request.Context())
}

// bind decodes the JSON body into dst, answering 400 or 413 on failure.
func (s *Server) bind(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		s.abort(c, http.StatusRequestEntityTooLarge, "BODY_TOO_LARGE", err)
		return false
	}
	s.abort(c, http.StatusBadRequest, "BAD_REQUEST", err)

	return false
}

// fail maps a search or parse error to a status code.
func (s *Server) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, grid.ErrMalformedGrid):
		s.abort(c, http.StatusBadRequest, "MALFORMED_GRID", err)
	case errors.Is(err, grid.ErrOutOfBounds):
		s.abort(c, http.StatusBadRequest, "OUT_OF_BOUNDS", err)
	case errors.Is(err, runpath.ErrBadRunBounds), errors.Is(err, runpath.ErrNoStarts):
		s.abort(c, http.StatusBadRequest, "BAD_PARAMETERS", err)
	case errors.Is(err, context.DeadlineExceeded):
		s.abort(c, http.StatusGatewayTimeout, "TIMEOUT", err)
	case errors.Is(err, context.Canceled):
		// Client went away; the status is never seen.
		s.abort(c, 499, "CANCELED", err)
	default:
		s.abort(c, http.StatusInternalServerError, "INTERNAL", err)
	}
}

func (s *Server) abort(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     err.Error(),
		Code:      code,
		RequestID: c.GetString(ctxRequestID),
	})
}
