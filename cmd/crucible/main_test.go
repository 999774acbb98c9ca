package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), &out, &errOut, args)

	return out.String(), errOut.String(), err
}

func exitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if err != nil {
		return 1
	}
	return 0
}

func TestSolve(t *testing.T) {
	grid := filepath.Join("testdata", "crucible.txt")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"defaults", []string{"solve", grid}, "102\n"},
		{"long runs", []string{"solve", grid, "--min-run", "4", "--max-run", "10"}, "94\n"},
		{"dijkstra", []string{"solve", grid, "--heuristic", "zero"}, "102\n"},
		{"endpoints", []string{"solve", grid, "--from", "12,0", "--to", "12,12"}, "67\n"},
		{"start cost", []string{"solve", filepath.Join("testdata", "small.txt"), "--start-cost"}, "13\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestSolve_Stats(t *testing.T) {
	out, _, err := execute(t, "solve", filepath.Join("testdata", "small.txt"), "--stats")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "11\nfinalized="), out)
}

func TestSolve_Unreachable(t *testing.T) {
	out, _, err := execute(t, "solve", filepath.Join("testdata", "small.txt"), "--min-run", "4", "--max-run", "10")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(err))
	assert.Equal(t, "unreachable\n", out)
}

func TestSolve_Stdin(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd(&out, &bytes.Buffer{})
	root.SetIn(strings.NewReader("241\n321\n325\n"))
	root.SetArgs([]string{"solve", "-"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "11\n", out.String())
}

func TestSolve_Errors(t *testing.T) {
	_, _, err := execute(t, "solve", filepath.Join("testdata", "missing.txt"))
	assert.Equal(t, 1, exitCode(err))

	_, _, err = execute(t, "solve", filepath.Join("testdata", "crucible.txt"), "--from", "1;2")
	assert.Equal(t, 2, exitCode(err))

	_, _, err = execute(t, "solve", filepath.Join("testdata", "crucible.txt"), "--min-run", "0")
	assert.Equal(t, 2, exitCode(err))

	_, _, err = execute(t, "solve", filepath.Join("testdata", "crucible.txt"), "--to", "20,20")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of bounds")

	_, _, err = execute(t, "solve")
	assert.Error(t, err, "FILE is required")
}

func TestSweep(t *testing.T) {
	out, _, err := execute(t, "sweep", filepath.Join("testdata", "crucible.txt"), "--workers", "2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "best ("), out)

	out, _, err = execute(t, "sweep", filepath.Join("testdata", "small.txt"), "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "FROM")
	assert.Contains(t, out, "(0,0)")
}

func TestRunScenarios(t *testing.T) {
	out, _, err := execute(t, "run", filepath.Join("testdata", "scenarios.hcl"), "--var", "min=4", "--var", "max=10")
	require.NoError(t, err, out)
	assert.Contains(t, out, "part1")
	assert.Contains(t, out, "102")
	assert.Contains(t, out, "94")
	assert.NotContains(t, out, "FAIL")
}

func TestRunScenarios_Failure(t *testing.T) {
	out, _, err := execute(t, "run", filepath.Join("testdata", "scenarios.hcl"), "--var", "min=1", "--var", "max=3")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, err.Error(), "1 of 2 scenarios failed")
	assert.Contains(t, out, "102 (want 94)")
}

func TestConfigFileAndLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crucible.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  min_run: 4\n  max_run: 10\nlog:\n  level: debug\n  format: json\n"), 0o600))

	out, logs, err := execute(t, "--config", path, "solve", filepath.Join("testdata", "crucible.txt"))
	require.NoError(t, err)
	assert.Equal(t, "94\n", out)
	assert.Contains(t, logs, `"msg":"runpath search done"`)

	_, _, err = execute(t, "--log-level", "chatty", "solve", filepath.Join("testdata", "crucible.txt"))
	assert.Equal(t, 2, exitCode(err))
}

func TestServe_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	err := run(ctx, &out, &errOut, []string{"serve", "--addr", "127.0.0.1:0"})
	assert.NoError(t, err)
}
