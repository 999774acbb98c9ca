// Package scenario loads and runs named search scenarios described in HCL.
//
//	scenario "part1" {
//	  grid      = "example.txt"
//	  min_run   = 1
//	  max_run   = 3
//	  heuristic = "manhattan"
//	  expect    = 102
//	}
//
// Grid paths are relative to the scenario file. Values may reference
// caller-supplied variables as var.NAME.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/crucible/grid"
	"github.com/katalvlaran/crucible/runpath"
)

// ErrInvalid is wrapped by every scenario validation failure.
var ErrInvalid = errors.New("scenario: invalid")

// Scenario is one decoded and validated scenario block.
type Scenario struct {
	Name      string
	Grid      *grid.Grid
	GridPath  string // empty for inline cells
	MinRun    int
	MaxRun    int
	Heuristic string
	StartCost bool
	From, To  grid.Coordinate

	// Expect is the wanted cost; nil means "report only".
	Expect *uint64
	// Unreachable asserts that no path exists.
	Unreachable bool
}

// Options returns the runpath options for s.
func (s Scenario) Options() []runpath.Option {
	h, ok := runpath.HeuristicByName(s.Heuristic, s.Grid)
	if !ok {
		h = runpath.Zero
	}
	opts := []runpath.Option{
		runpath.WithRunBounds(s.MinRun, s.MaxRun),
		runpath.WithHeuristic(h),
	}
	if s.StartCost {
		opts = append(opts, runpath.WithStartCost())
	}

	return opts
}

type hclFile struct {
	Scenarios []*hclScenario `hcl:"scenario,block"`
}

type hclScenario struct {
	Name        string  `hcl:"name,label"`
	Grid        *string `hcl:"grid,optional"`
	Cells       *string `hcl:"cells,optional"`
	Format      *string `hcl:"format,optional"`
	MinRun      *int    `hcl:"min_run,optional"`
	MaxRun      *int    `hcl:"max_run,optional"`
	Heuristic   *string `hcl:"heuristic,optional"`
	StartCost   *bool   `hcl:"start_cost,optional"`
	From        []int   `hcl:"from,optional"`
	To          []int   `hcl:"to,optional"`
	Expect      *int64  `hcl:"expect,optional"`
	Unreachable *bool   `hcl:"unreachable,optional"`
}

// Loader parses scenario files.
type Loader struct {
	parser *hclparse.Parser
	vars   map[string]string
}

// NewLoader returns a Loader. vars are exposed to expressions as var.NAME.
func NewLoader(vars map[string]string) *Loader {
	return &Loader{parser: hclparse.NewParser(), vars: vars}
}

// LoadFile parses, decodes and validates every scenario in path, loading
// the referenced grids.
func (l *Loader) LoadFile(path string) ([]Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	return l.Load(src, path)
}

// Load is LoadFile for in-memory source. filename names the source in
// diagnostics and anchors relative grid paths.
func (l *Loader) Load(src []byte, filename string) ([]Scenario, error) {
	file, diags := l.parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, l.evalContext(), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	dir := filepath.Dir(filename)
	seen := make(map[string]bool, len(parsed.Scenarios))
	out := make([]Scenario, 0, len(parsed.Scenarios))
	for _, raw := range parsed.Scenarios {
		if seen[raw.Name] {
			return nil, fmt.Errorf("%w: %s: duplicate scenario %q", ErrInvalid, filename, raw.Name)
		}
		seen[raw.Name] = true

		sc, err := raw.build(dir)
		if err != nil {
			return nil, fmt.Errorf("%s: scenario %q: %w", filename, raw.Name, err)
		}
		out = append(out, sc)
	}

	return out, nil
}

func (l *Loader) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(l.vars))
	for k, v := range l.vars {
		vars[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(vars),
		},
	}
}

func (h *hclScenario) build(dir string) (Scenario, error) {
	sc := Scenario{
		Name:      h.Name,
		MinRun:    valueOr(h.MinRun, 1),
		MaxRun:    valueOr(h.MaxRun, 3),
		Heuristic: valueOr(h.Heuristic, "zero"),
		StartCost: valueOr(h.StartCost, false),
	}

	format, err := grid.ParseFormat(valueOr(h.Format, ""))
	if err != nil {
		return sc, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	switch {
	case h.Grid != nil && h.Cells != nil:
		return sc, fmt.Errorf("%w: grid and cells are mutually exclusive", ErrInvalid)
	case h.Grid != nil:
		sc.GridPath = *h.Grid
		if !filepath.IsAbs(sc.GridPath) {
			sc.GridPath = filepath.Join(dir, sc.GridPath)
		}
		f, err := os.Open(sc.GridPath)
		if err != nil {
			return sc, fmt.Errorf("open grid: %w", err)
		}
		defer f.Close()
		sc.Grid, err = grid.Parse(f, grid.WithFormat(format))
		if err != nil {
			return sc, fmt.Errorf("grid %s: %w", sc.GridPath, err)
		}
	case h.Cells != nil:
		sc.Grid, err = grid.ParseString(strings.TrimSpace(*h.Cells), grid.WithFormat(format))
		if err != nil {
			return sc, err
		}
	default:
		return sc, fmt.Errorf("%w: one of grid or cells is required", ErrInvalid)
	}

	if sc.MinRun < 1 || sc.MaxRun < sc.MinRun {
		return sc, fmt.Errorf("%w: run bounds %d..%d", ErrInvalid, sc.MinRun, sc.MaxRun)
	}
	if _, ok := runpath.HeuristicByName(sc.Heuristic, sc.Grid); !ok {
		return sc, fmt.Errorf("%w: unknown heuristic %q", ErrInvalid, sc.Heuristic)
	}

	sc.From = sc.Grid.TopLeft()
	sc.To = sc.Grid.BottomRight()
	if sc.From, err = coordinate(h.From, sc.From, "from"); err != nil {
		return sc, err
	}
	if sc.To, err = coordinate(h.To, sc.To, "to"); err != nil {
		return sc, err
	}
	for _, c := range []grid.Coordinate{sc.From, sc.To} {
		if !sc.Grid.InBounds(c) {
			return sc, fmt.Errorf("%w: %s", grid.ErrOutOfBounds, c)
		}
	}

	if h.Expect != nil {
		if *h.Expect < 0 {
			return sc, fmt.Errorf("%w: expect must be >= 0", ErrInvalid)
		}
		want := uint64(*h.Expect)
		sc.Expect = &want
	}
	sc.Unreachable = valueOr(h.Unreachable, false)
	if sc.Unreachable && sc.Expect != nil {
		return sc, fmt.Errorf("%w: expect and unreachable are mutually exclusive", ErrInvalid)
	}

	return sc, nil
}

func coordinate(xy []int, def grid.Coordinate, attr string) (grid.Coordinate, error) {
	switch len(xy) {
	case 0:
		return def, nil
	case 2:
		return grid.Coordinate{X: xy[0], Y: xy[1]}, nil
	default:
		return def, fmt.Errorf("%w: %s needs two elements [x, y], got %d", ErrInvalid, attr, len(xy))
	}
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}
