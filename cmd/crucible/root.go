package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/crucible/grid"
	"github.com/katalvlaran/crucible/internal/config"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	stdout io.Writer
	stderr io.Writer
	cfg    config.Config
	logger *slog.Logger

	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "crucible",
		Short:         "Least-cost grid routes with bounded straight runs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML or JSON config file")
	pf.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	pf.StringVar(&a.logFormat, "log-format", "", "text or json (overrides config)")

	root.AddCommand(
		newSolveCmd(a),
		newSweepCmd(a),
		newScenarioCmd(a),
		newServeCmd(a),
	)

	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	logger, err := cfg.Log.NewLogger(a.stderr)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	a.cfg = cfg
	a.logger = logger

	return nil
}

// searchFlags are the per-search overrides shared by solve and sweep.
type searchFlags struct {
	minRun    int
	maxRun    int
	heuristic string
	startCost bool
	format    string
	to        string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.IntVar(&f.minRun, "min-run", 0, "shortest straight run (overrides config)")
	fl.IntVar(&f.maxRun, "max-run", 0, "longest straight run (overrides config)")
	fl.StringVar(&f.heuristic, "heuristic", "", "zero, manhattan or scaled (overrides config)")
	fl.BoolVar(&f.startCost, "start-cost", false, "count the start cell's cost")
	fl.StringVar(&f.format, "format", "", "grid format: digits or fields (overrides config)")
	fl.StringVar(&f.to, "to", "", "end cell as x,y (default bottom-right)")
}

// apply merges changed flags into cfg.
func (f *searchFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fl := cmd.Flags()
	if fl.Changed("min-run") {
		cfg.Search.MinRun = f.minRun
	}
	if fl.Changed("max-run") {
		cfg.Search.MaxRun = f.maxRun
	}
	if fl.Changed("heuristic") {
		cfg.Search.Heuristic = f.heuristic
	}
	if fl.Changed("start-cost") {
		cfg.Search.StartCost = f.startCost
	}
	if fl.Changed("format") {
		cfg.Search.Format = f.format
	}
	if err := cfg.Validate(); err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	return nil
}

// loadGrid reads a grid from path, or stdin for "-".
func loadGrid(cmd *cobra.Command, path string, format grid.Format) (*grid.Grid, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	g, err := grid.Parse(r, grid.WithFormat(format))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return g, nil
}

// parseCoordinate parses "x,y". An empty string yields def.
func parseCoordinate(s string, def grid.Coordinate) (grid.Coordinate, error) {
	if s == "" {
		return def, nil
	}
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return def, &ExitError{Code: 2, Message: fmt.Sprintf("coordinate %q: want x,y", s)}
	}
	x, errX := strconv.Atoi(strings.TrimSpace(xs))
	y, errY := strconv.Atoi(strings.TrimSpace(ys))
	if errX != nil || errY != nil {
		return def, &ExitError{Code: 2, Message: fmt.Sprintf("coordinate %q: want integers x,y", s)}
	}

	return grid.Coordinate{X: x, Y: y}, nil
}
