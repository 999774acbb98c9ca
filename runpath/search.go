package runpath

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/crucible/grid"
)

// ctxPollEvery is how many pops happen between context checks.
const ctxPollEvery = 1024

// Search returns the minimal total cost of travelling from start to end on g
// using straight runs of MinRun..MaxRun cells with a turn between runs.
//
// Returns:
//
//   - Result with Found=true and the minimal Cost, or Found=false when no
//     legal sequence of runs reaches end (not an error).
//   - err: ErrNilGrid, ErrBadRunBounds, ErrBadHeuristic, a wrapped
//     grid.ErrOutOfBounds for endpoints off the grid, or ctx.Err().
//
// Preconditions and validation (in order):
//  1. g must be non-nil.
//  2. Options must be valid (1 ≤ MinRun ≤ MaxRun, non-nil Heuristic).
//  3. start and end must lie on the grid.
//
// Behavior:
//
//   - The synthetic start state (start, AxisNone) is pushed with cost 0, or
//     the start cell's cost under WithStartCost, and priority cost+h(start).
//   - The first popped state whose position equals end is the answer; the
//     arrival axis does not matter. A path has at least one run, so when
//     start == end the search looks for the cheapest loop back to start
//     (unreachable on a 1×1 grid).
//   - Popped states are finalized and never reopened. Successors that are
//     already finalized are not generated.
//
// Complexity:
//
//   - Time:  O(S·MaxRun·log S) with S ≤ 2·W·H + 1 states.
//   - Space: O(S).
func Search(ctx context.Context, g *grid.Grid, start, end grid.Coordinate, opts ...Option) (Result, error) {
	// 1) Build options and validate inputs
	cfg := buildOptions(opts)

	if g == nil {
		return Result{}, ErrNilGrid
	}
	if err := cfg.validate(); err != nil {
		return Result{}, err
	}
	if !g.InBounds(start) {
		return Result{}, fmt.Errorf("%w: start %s", grid.ErrOutOfBounds, start)
	}
	if !g.InBounds(end) {
		return Result{}, fmt.Errorf("%w: end %s", grid.ErrOutOfBounds, end)
	}

	// 2) Prepare the state space
	space, err := NewSpace(g, cfg.MinRun, cfg.MaxRun)
	if err != nil {
		return Result{}, err
	}

	ctx, span := startSearchSpan(ctx, g, start, end, cfg)
	defer span.End()

	// 3) Seed the frontier and run the main loop
	began := time.Now()
	r := newRunner(space, start, end, cfg)
	r.init()
	res, err := r.process(ctx)
	elapsed := time.Since(began)

	// 4) Report metrics, span status and a log line
	recordSearch(elapsed, res, err)
	setSearchSpanResult(span, res, err)
	r.log(ctx, res, err, elapsed)

	return res, err
}

// runner holds the mutable state for a single search.
type runner struct {
	space     *Space
	options   Options
	start     grid.Coordinate
	end       grid.Coordinate
	frontier  *Frontier
	finalized map[State]struct{} // grows monotonically, never shrinks
	moves     []Move             // successor buffer reused across expansions
	res       Result
}

func newRunner(space *Space, start, end grid.Coordinate, cfg Options) *runner {
	// Two arrival axes per cell plus the synthetic start.
	capacity := 2*space.g.Len() + 1

	return &runner{
		space:     space,
		options:   cfg,
		start:     start,
		end:       end,
		frontier:  NewFrontier(capacity / 4),
		finalized: make(map[State]struct{}, capacity),
		moves:     make([]Move, 0, 4*space.maxRun),
	}
}

// init pushes the synthetic start state.
func (r *runner) init() {
	var cost uint64
	if r.options.StartCost {
		c, _ := r.space.g.Lookup(r.start)
		cost = uint64(c)
	}
	r.push(State{Pos: r.start, Axis: AxisNone}, cost)
}

// process is the main loop: pop and finalize the best state, stop at the
// end cell, otherwise expand it.
func (r *runner) process(ctx context.Context) (Result, error) {
	for pops := 0; ; pops++ {
		if pops%ctxPollEvery == 0 {
			if err := ctx.Err(); err != nil {
				return r.res, err
			}
		}

		// 1) Pop the cheapest open state
		e, ok := r.frontier.PopMin()
		if !ok {
			// Frontier exhausted without reaching end: unreachable.
			return r.res, nil
		}

		// 2) Finalize it; its cost can no longer improve
		r.finalized[e.State] = struct{}{}
		r.res.Finalized++
		r.options.OnFinalize(e.State, e.Cost, e.Priority)

		// 3) Stop at end. A path has at least one run, so the synthetic
		//    start never counts.
		if e.State.Pos == r.end && e.State.Axis != AxisNone {
			r.res.Cost = e.Cost
			r.res.Found = true
			return r.res, nil
		}

		// 4) Relax its successors
		r.expand(e.State, e.Cost)
	}
}

// expand relaxes every legal, not yet finalized successor of s.
func (r *runner) expand(s State, cost uint64) {
	r.moves = r.space.Successors(s, cost, r.isFinalized, r.moves[:0])
	for _, m := range r.moves {
		r.push(m.State(), m.Cost)
	}
}

func (r *runner) push(s State, cost uint64) {
	priority := cost + r.options.Heuristic(s.Pos, r.end)
	inserted, changed := r.frontier.PushOrImprove(s, cost, priority)
	if !changed {
		return
	}
	if inserted {
		r.res.Pushed++
	} else {
		r.res.Improved++
	}
	r.options.OnPush(s, cost, priority)
}

func (r *runner) isFinalized(s State) bool {
	_, ok := r.finalized[s]
	return ok
}

func (r *runner) log(ctx context.Context, res Result, err error, elapsed time.Duration) {
	attrs := []slog.Attr{
		slog.String("start", r.start.String()),
		slog.String("end", r.end.String()),
		slog.Int("min_run", r.options.MinRun),
		slog.Int("max_run", r.options.MaxRun),
		slog.Bool("found", res.Found),
		slog.Uint64("cost", res.Cost),
		slog.Int("finalized", res.Finalized),
		slog.Int("pushed", res.Pushed),
		slog.Int("improved", res.Improved),
		slog.Duration("elapsed", elapsed),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		r.options.Logger.LogAttrs(ctx, slog.LevelWarn, "runpath search aborted", attrs...)
		return
	}
	r.options.Logger.LogAttrs(ctx, slog.LevelDebug, "runpath search done", attrs...)
}

// startSearchSpan creates a span for one Search call.
func startSearchSpan(ctx context.Context, g *grid.Grid, start, end grid.Coordinate, cfg Options) (context.Context, trace.Span) {
	return tracer.Start(ctx, "runpath.Search",
		trace.WithAttributes(
			attribute.Int("grid.width", g.Width()),
			attribute.Int("grid.height", g.Height()),
			attribute.String("search.start", start.String()),
			attribute.String("search.end", end.String()),
			attribute.Int("search.min_run", cfg.MinRun),
			attribute.Int("search.max_run", cfg.MaxRun),
		),
	)
}

// setSearchSpanResult sets the result attributes on a search span.
func setSearchSpanResult(span trace.Span, res Result, err error) {
	span.SetAttributes(
		attribute.Bool("search.found", res.Found),
		attribute.Int64("search.cost", int64(res.Cost)),
		attribute.Int("search.finalized", res.Finalized),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
