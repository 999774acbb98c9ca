// Run-constrained search: state identity, options and sentinel errors.
//
// A path is a sequence of straight runs. Every run covers between MinRun and
// MaxRun cells along one axis and must be followed by a run on the
// perpendicular axis. The search state is therefore (position, arrival axis):
// two arrivals at the same cell along different axes allow different next
// runs and are tracked separately.

package runpath

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/katalvlaran/crucible/grid"
)

// Sentinel errors returned by Search, Sweep and NewSpace.
var (
	// ErrNilGrid indicates that a nil *grid.Grid was passed.
	ErrNilGrid = errors.New("runpath: grid is nil")

	// ErrBadRunBounds indicates run bounds outside 1 ≤ MinRun ≤ MaxRun.
	ErrBadRunBounds = errors.New("runpath: run bounds must satisfy 1 <= min <= max")

	// ErrBadHeuristic indicates that a nil heuristic was configured.
	ErrBadHeuristic = errors.New("runpath: heuristic must not be nil")

	// ErrNoStarts indicates that Sweep was called without start coordinates.
	ErrNoStarts = errors.New("runpath: sweep needs at least one start")
)

// Axis is the axis of the most recently completed run.
type Axis uint8

const (
	// AxisNone marks the synthetic start state: both axes are open.
	AxisNone Axis = iota
	// Horizontal runs move along X.
	Horizontal
	// Vertical runs move along Y.
	Vertical
)

// String returns "none", "horizontal" or "vertical".
func (a Axis) String() string {
	switch a {
	case AxisNone:
		return "none"
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("Axis(%d)", uint8(a))
	}
}

// Perpendicular returns the other axis. AxisNone maps to itself.
func (a Axis) Perpendicular() Axis {
	switch a {
	case Horizontal:
		return Vertical
	case Vertical:
		return Horizontal
	default:
		return AxisNone
	}
}

// State identifies a search node: where we are and how we got here.
type State struct {
	Pos  grid.Coordinate
	Axis Axis
}

// String formats s as "(x,y)/axis".
func (s State) String() string {
	return s.Pos.String() + "/" + s.Axis.String()
}

// Move is one legal run out of a state.
// Cost is the total accumulated path cost at To, not the run's own cost.
type Move struct {
	To   grid.Coordinate
	Via  Axis
	Cost uint64
}

// State returns the search state the move arrives in.
func (m Move) State() State {
	return State{Pos: m.To, Axis: m.Via}
}

// Result is the outcome of one search.
//
// Found=false means no sequence of legal runs reaches the end cell; it is a
// normal outcome, not an error, and Cost is then zero.
type Result struct {
	Cost      uint64 // minimal total cost when Found
	Found     bool   // whether the end cell was reached
	Finalized int    // states popped and finalized
	Pushed    int    // frontier insertions
	Improved  int    // frontier decrease-key updates
}

// Options configures Search and Sweep.
//
// MinRun, MaxRun – inclusive bounds on every run's length (default 1..3).
// Heuristic      – A* estimate of remaining cost; Zero gives plain Dijkstra.
// StartCost      – count the start cell's own cost in the total.
// Workers        – concurrent searches in Sweep (default runtime.NumCPU()).
// Logger         – receives one debug record per search (default: discard).
// OnFinalize     – called for every finalized state with its cost and priority.
// OnPush         – called whenever the frontier gains or improves an entry.
type Options struct {
	MinRun     int
	MaxRun     int
	Heuristic  Heuristic
	StartCost  bool
	Workers    int
	Logger     *slog.Logger
	OnFinalize func(s State, cost, priority uint64)
	OnPush     func(s State, cost, priority uint64)
}

// Option represents a functional option for Search and Sweep.
type Option func(*Options)

// WithRunBounds sets the inclusive run-length window.
// Invalid bounds are reported by Search as ErrBadRunBounds.
func WithRunBounds(minRun, maxRun int) Option {
	return func(o *Options) {
		o.MinRun = minRun
		o.MaxRun = maxRun
	}
}

// WithHeuristic sets the A* heuristic. It must be admissible and consistent
// for the returned cost to be minimal.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		o.Heuristic = h
	}
}

// WithManhattan is WithHeuristic(Manhattan).
func WithManhattan() Option {
	return WithHeuristic(Manhattan)
}

// WithStartCost counts the start cell's cost as part of the path.
func WithStartCost() Option {
	return func(o *Options) {
		o.StartCost = true
	}
}

// WithWorkers caps the number of concurrent searches run by Sweep.
// Values < 1 fall back to runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(o *Options) {
		o.Workers = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnFinalize registers a callback run each time a state is finalized.
func WithOnFinalize(fn func(s State, cost, priority uint64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnFinalize = fn
		}
	}
}

// WithOnPush registers a callback run on every frontier insert or improvement.
func WithOnPush(fn func(s State, cost, priority uint64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPush = fn
		}
	}
}

// DefaultOptions returns an Options struct initialized with defaults:
//   - MinRun, MaxRun: 1, 3
//   - Heuristic:      Zero (Dijkstra)
//   - StartCost:      false
//   - Workers:        runtime.NumCPU()
//   - Logger:         discards everything
//   - hooks:          no-ops
func DefaultOptions() Options {
	return Options{
		MinRun:     1,
		MaxRun:     3,
		Heuristic:  Zero,
		Workers:    runtime.NumCPU(),
		Logger:     slog.New(slog.DiscardHandler),
		OnFinalize: func(State, uint64, uint64) {},
		OnPush:     func(State, uint64, uint64) {},
	}
}

// validate checks bounds and the heuristic.
func (o Options) validate() error {
	if o.MinRun < 1 || o.MaxRun < o.MinRun {
		return fmt.Errorf("%w: got min=%d max=%d", ErrBadRunBounds, o.MinRun, o.MaxRun)
	}
	if o.Heuristic == nil {
		return ErrBadHeuristic
	}

	return nil
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}

	return cfg
}
