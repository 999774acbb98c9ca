package runpath

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/crucible/grid"
)

// StartResult pairs one sweep start with its search result.
type StartResult struct {
	From   grid.Coordinate
	Result Result
}

// SweepResult is the outcome of Sweep.
//
// Results follows the order of the starts passed in. Best is the reachable
// start with the lowest cost (earliest start on ties) and is only meaningful
// when Found is true.
type SweepResult struct {
	Results []StartResult
	Best    StartResult
	Found   bool
}

// Sweep runs one independent Search from every start towards end and returns
// all results plus the cheapest reachable one.
//
// Searches run concurrently, at most Options.Workers at a time, and share g
// read-only. Each search owns its frontier and finalized set. The first
// search error cancels the remaining ones and is returned.
//
// Returns ErrNoStarts for an empty start list, plus everything Search returns.
func Sweep(ctx context.Context, g *grid.Grid, starts []grid.Coordinate, end grid.Coordinate, opts ...Option) (SweepResult, error) {
	cfg := buildOptions(opts)
	if g == nil {
		return SweepResult{}, ErrNilGrid
	}
	if len(starts) == 0 {
		return SweepResult{}, ErrNoStarts
	}
	if err := cfg.validate(); err != nil {
		return SweepResult{}, err
	}

	ctx, span := tracer.Start(ctx, "runpath.Sweep",
		trace.WithAttributes(
			attribute.Int("sweep.starts", len(starts)),
			attribute.Int("sweep.workers", cfg.Workers),
		),
	)
	defer span.End()

	results := make([]StartResult, len(starts))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)

	for i, from := range starts {
		eg.Go(func() error {
			res, err := Search(egCtx, g, from, end, opts...)
			if err != nil {
				return err
			}
			results[i] = StartResult{From: from, Result: res}
			sweepStarts.Inc()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return SweepResult{}, err
	}

	out := SweepResult{Results: results}
	for _, sr := range results {
		if !sr.Result.Found {
			continue
		}
		if !out.Found || sr.Result.Cost < out.Best.Result.Cost {
			out.Best = sr
			out.Found = true
		}
	}

	span.SetAttributes(attribute.Bool("sweep.found", out.Found))
	cfg.Logger.LogAttrs(ctx, slog.LevelInfo, "runpath sweep done",
		slog.Int("starts", len(starts)),
		slog.Bool("found", out.Found),
		slog.String("best_from", out.Best.From.String()),
		slog.Uint64("best_cost", out.Best.Result.Cost),
	)

	return out, nil
}
