// Package config loads crucible settings from defaults, an optional YAML or
// JSON file and CRUCIBLE_* environment variables, in increasing priority.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/crucible/grid"
	"github.com/katalvlaran/crucible/runpath"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "CRUCIBLE_"

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the top-level configuration.
//
// Safe to read concurrently. Not safe to modify after Load returns.
type Config struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Sweep  SweepConfig  `json:"sweep" yaml:"sweep"`
	Server ServerConfig `json:"server" yaml:"server"`
	Cache  CacheConfig  `json:"cache" yaml:"cache"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// SearchConfig holds the defaults for a single search.
type SearchConfig struct {
	MinRun    int           `json:"min_run" yaml:"min_run"`
	MaxRun    int           `json:"max_run" yaml:"max_run"`
	Heuristic string        `json:"heuristic" yaml:"heuristic"`
	StartCost bool          `json:"start_cost" yaml:"start_cost"`
	Format    string        `json:"format" yaml:"format"`
	Timeout   time.Duration `json:"timeout" yaml:"timeout"`
}

// SweepConfig controls multi-start sweeps.
type SweepConfig struct {
	Workers int `json:"workers" yaml:"workers"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr         string        `json:"addr" yaml:"addr"`
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`
	MaxGridBytes int64         `json:"max_grid_bytes" yaml:"max_grid_bytes"`
}

// CacheConfig controls the result cache. Dir wins over InMemory.
type CacheConfig struct {
	Enabled  bool   `json:"enabled" yaml:"enabled"`
	Dir      string `json:"dir" yaml:"dir"`
	InMemory bool   `json:"in_memory" yaml:"in_memory"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Search: SearchConfig{
			MinRun:    1,
			MaxRun:    3,
			Heuristic: "manhattan",
			Format:    "digits",
			Timeout:   30 * time.Second,
		},
		Sweep: SweepConfig{
			Workers: 0, // runtime.NumCPU()
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			MaxGridBytes: 4 << 20,
		},
		Cache: CacheConfig{
			Enabled:  false,
			InMemory: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds a Config with priority env > file > defaults.
//
// An empty path or a missing file means defaults plus environment.
// A file that exists but does not parse as YAML or JSON is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}
	if err := loadEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, fmt.Errorf("load config env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// Try YAML first, then JSON.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
			return fmt.Errorf("parse %s (tried YAML and JSON): YAML error: %v, JSON error: %w", path, err, jsonErr)
		}
	}

	return nil
}

// loadEnv applies CRUCIBLE_* overrides. Unparseable values are errors
// rather than silently ignored.
func loadEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = i
		}
	}
	flag := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}

	// Search
	num("MIN_RUN", &cfg.Search.MinRun)
	num("MAX_RUN", &cfg.Search.MaxRun)
	str("HEURISTIC", &cfg.Search.Heuristic)
	flag("START_COST", &cfg.Search.StartCost)
	str("FORMAT", &cfg.Search.Format)
	dur("TIMEOUT", &cfg.Search.Timeout)

	// Sweep
	num("WORKERS", &cfg.Sweep.Workers)

	// Server
	str("ADDR", &cfg.Server.Addr)
	dur("READ_TIMEOUT", &cfg.Server.ReadTimeout)
	dur("WRITE_TIMEOUT", &cfg.Server.WriteTimeout)

	// Cache
	flag("CACHE_ENABLED", &cfg.Cache.Enabled)
	str("CACHE_DIR", &cfg.Cache.Dir)
	flag("CACHE_IN_MEMORY", &cfg.Cache.InMemory)

	// Log
	str("LOG_LEVEL", &cfg.Log.Level)
	str("LOG_FORMAT", &cfg.Log.Format)

	return errors.Join(errs...)
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Search.MinRun < 1 || c.Search.MaxRun < c.Search.MinRun {
		return fmt.Errorf("%w: search run bounds %d..%d must satisfy 1 <= min <= max", ErrInvalid, c.Search.MinRun, c.Search.MaxRun)
	}
	if _, ok := runpath.HeuristicByName(c.Search.Heuristic, nil); !ok {
		return fmt.Errorf("%w: unknown heuristic %q", ErrInvalid, c.Search.Heuristic)
	}
	if _, err := grid.ParseFormat(c.Search.Format); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Search.Timeout < 0 {
		return fmt.Errorf("%w: search timeout must be >= 0", ErrInvalid)
	}
	if c.Sweep.Workers < 0 {
		return fmt.Errorf("%w: sweep workers must be >= 0", ErrInvalid)
	}
	if c.Server.MaxGridBytes < 1 {
		return fmt.Errorf("%w: server max_grid_bytes must be >= 1", ErrInvalid)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q must be text or json", ErrInvalid, c.Log.Format)
	}

	return nil
}

// SearchOptions converts the search section into runpath options for g.
// g is needed by the "scaled" heuristic and may be nil otherwise.
func (c Config) SearchOptions(g *grid.Grid) []runpath.Option {
	h, ok := runpath.HeuristicByName(c.Search.Heuristic, g)
	if !ok {
		h = runpath.Zero
	}
	opts := []runpath.Option{
		runpath.WithRunBounds(c.Search.MinRun, c.Search.MaxRun),
		runpath.WithHeuristic(h),
	}
	if c.Search.StartCost {
		opts = append(opts, runpath.WithStartCost())
	}
	if c.Sweep.Workers > 0 {
		opts = append(opts, runpath.WithWorkers(c.Sweep.Workers))
	}

	return opts
}

// GridFormat returns the parsed grid format. Validate guarantees it parses.
func (c Config) GridFormat() grid.Format {
	f, _ := grid.ParseFormat(c.Search.Format)
	return f
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger builds the slog logger described by c, writing to w.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", c.Format)
	}
}
