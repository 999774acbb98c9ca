package scenario

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/crucible/runpath"
)

// Outcome is the result of running one scenario.
type Outcome struct {
	Scenario Scenario
	Result   runpath.Result
	Elapsed  time.Duration
	Err      error
}

// Pass reports whether the outcome meets the scenario's expectation.
// Scenarios without an expectation pass whenever the search ran.
func (o Outcome) Pass() bool {
	switch {
	case o.Err != nil:
		return false
	case o.Scenario.Unreachable:
		return !o.Result.Found
	case o.Scenario.Expect != nil:
		return o.Result.Found && o.Result.Cost == *o.Scenario.Expect
	default:
		return true
	}
}

// Describe renders the outcome for humans: the cost or "unreachable",
// plus the expectation when it was not met.
func (o Outcome) Describe() string {
	if o.Err != nil {
		return "error: " + o.Err.Error()
	}
	got := "unreachable"
	if o.Result.Found {
		got = fmt.Sprintf("%d", o.Result.Cost)
	}
	if o.Pass() {
		return got
	}
	if o.Scenario.Unreachable {
		return got + " (want unreachable)"
	}

	return fmt.Sprintf("%s (want %d)", got, *o.Scenario.Expect)
}

// Run executes every scenario, at most workers at a time (< 1 means one
// per scenario). Per-scenario search errors are reported in the Outcome;
// only context cancellation aborts the run.
func Run(ctx context.Context, scenarios []Scenario, workers int, logger *slog.Logger) ([]Outcome, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := make([]Outcome, len(scenarios))

	eg, egCtx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for i, sc := range scenarios {
		eg.Go(func() error {
			began := time.Now()
			res, err := runpath.Search(egCtx, sc.Grid, sc.From, sc.To,
				append(sc.Options(), runpath.WithLogger(logger))...)
			if err != nil && egCtx.Err() != nil {
				return err
			}
			out[i] = Outcome{Scenario: sc, Result: res, Elapsed: time.Since(began), Err: err}
			logger.LogAttrs(egCtx, slog.LevelInfo, "scenario done",
				slog.String("name", sc.Name),
				slog.Bool("pass", out[i].Pass()),
				slog.String("result", out[i].Describe()),
			)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
