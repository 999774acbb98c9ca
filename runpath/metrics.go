package runpath

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

// Package-level tracer for search operations.
var tracer = otel.Tracer("crucible.runpath")

// Outcome labels for searchTotal.
const (
	outcomeFound       = "found"
	outcomeUnreachable = "unreachable"
	outcomeCanceled    = "canceled"
	outcomeError       = "error"
)

var (
	// searchTotal counts searches by outcome.
	// Labels: "found", "unreachable", "canceled", "error".
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crucible_runpath_searches_total",
		Help: "Total run-constrained searches by outcome",
	}, []string{"outcome"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "crucible_runpath_search_duration_seconds",
		Help:    "Search wall time",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	})

	statesFinalized = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "crucible_runpath_states_finalized",
		Help:    "States finalized per search",
		Buckets: prometheus.ExponentialBuckets(16, 4, 10),
	})

	sweepStarts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crucible_runpath_sweep_starts_total",
		Help: "Start cells evaluated by sweeps",
	})
)

// recordSearch records metrics for one Search call.
func recordSearch(elapsed time.Duration, res Result, err error) {
	searchTotal.WithLabelValues(outcomeLabel(res, err)).Inc()
	searchDuration.Observe(elapsed.Seconds())
	statesFinalized.Observe(float64(res.Finalized))
}

func outcomeLabel(res Result, err error) string {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	case err != nil:
		return outcomeError
	case res.Found:
		return outcomeFound
	default:
		return outcomeUnreachable
	}
}
