// Package store caches search results in BadgerDB, keyed by a fingerprint
// of the grid and the cost-relevant search parameters.
package store

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"

	"github.com/katalvlaran/crucible/grid"
)

// keyPrefix versions the key space; bump it when Entry changes shape.
const keyPrefix = "v2/solve/"

// ErrNotFound is returned by Get for unknown keys.
var ErrNotFound = errors.New("store: not found")

// Options configures Open. Dir wins over InMemory.
type Options struct {
	Dir      string
	InMemory bool
	TTL      time.Duration // 0 keeps entries forever
	Logger   *slog.Logger  // nil disables badger's internal logging
}

// Params are the search parameters a cached answer depends on.
type Params struct {
	MinRun    int
	MaxRun    int
	StartCost bool
	Heuristic string
	From      grid.Coordinate
	To        grid.Coordinate
}

// Entry is one cached outcome.
type Entry struct {
	Cost      uint64    `json:"cost"`
	Found     bool      `json:"found"`
	Finalized int       `json:"finalized"`
	Pushed    int       `json:"pushed"`
	StoredAt  time.Time `json:"stored_at"`
}

// Store is a badger-backed result cache. Safe for concurrent use.
type Store struct {
	db  *badger.DB
	ttl time.Duration
}

// Open opens (or creates) the cache.
func Open(o Options) (*Store, error) {
	var opts badger.Options
	switch {
	case o.Dir != "":
		if err := os.MkdirAll(o.Dir, 0o750); err != nil {
			return nil, fmt.Errorf("create cache directory %s: %w", o.Dir, err)
		}
		opts = badger.DefaultOptions(o.Dir)
	case o.InMemory:
		opts = badger.DefaultOptions("").WithInMemory(true)
	default:
		return nil, errors.New("store: dir is required unless in_memory is set")
	}

	opts = opts.WithNumVersionsToKeep(1)
	if o.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: o.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	return &Store{db: db, ttl: o.TTL}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the entry for key or ErrNotFound.
func (s *Store) Get(key []byte) (Entry, error) {
	var e Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("store get: %w", err)
	}

	return e, nil
}

// Put stores e under key, stamping StoredAt when unset.
func (s *Store) Put(key []byte, e Entry) error {
	if e.StoredAt.IsZero() {
		e.StoredAt = time.Now().UTC()
	}
	val, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("store encode: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		be := badger.NewEntry(key, val)
		if s.ttl > 0 {
			be = be.WithTTL(s.ttl)
		}
		return txn.SetEntry(be)
	})
	if err != nil {
		return fmt.Errorf("store put: %w", err)
	}

	return nil
}

// Len counts cached entries.
func (s *Store) Len() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})

	return n, err
}

// Key fingerprints g and p with xxhash64. Equal grids and parameters always
// produce equal keys.
func Key(g *grid.Grid, p Params) []byte {
	d := xxhash.New()
	var buf [8]byte
	word := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}

	word(uint64(g.Width()))
	word(uint64(g.Height()))
	g.Each(func(_ grid.Coordinate, cost uint32) {
		binary.LittleEndian.PutUint32(buf[:4], cost)
		_, _ = d.Write(buf[:4])
	})
	word(uint64(p.MinRun))
	word(uint64(p.MaxRun))
	if p.StartCost {
		word(1)
	} else {
		word(0)
	}
	word(uint64(len(p.Heuristic)))
	_, _ = d.WriteString(p.Heuristic)
	word(uint64(p.From.X))
	word(uint64(p.From.Y))
	word(uint64(p.To.X))
	word(uint64(p.To.Y))

	return fmt.Appendf([]byte(keyPrefix), "%016x", d.Sum64())
}

// badgerLogger adapts slog.Logger to badger.Logger.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...any) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
