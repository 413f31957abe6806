package history

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/quantmind-br/clicktwice-go/internal/domain"
)

// ErrClosed is returned when the store is used after Close
var ErrClosed = errors.New("history store is closed")

// Options contains options for opening a Store
type Options struct {
	Directory string
	InMemory  bool
	// Retention expires entries after the given duration; zero keeps them
	Retention time.Duration
	// Logger enables badger's internal logging
	Logger bool
}

// ResultEntry is the persisted form of a handler result
type ResultEntry struct {
	Handler  string         `json:"handler"`
	Phase    domain.Phase   `json:"phase"`
	Outcome  domain.Outcome `json:"outcome"`
	Message  string         `json:"message,omitempty"`
	Duration time.Duration  `json:"duration"`
}

// Entry is one recorded publish run
type Entry struct {
	RunID       string              `json:"run_id"`
	ProjectPath string              `json:"project_path"`
	State       domain.RunState     `json:"state"`
	StartedAt   time.Time           `json:"started_at"`
	Duration    time.Duration       `json:"duration"`
	Attempts    int                 `json:"attempts,omitempty"`
	Manifest    *domain.AppManifest `json:"manifest,omitempty"`
	SidecarPath string              `json:"sidecar_path,omitempty"`
	Results     []ResultEntry       `json:"results"`
	Error       string              `json:"error,omitempty"`
}

// Failed returns the number of Error results in the entry
func (e Entry) Failed() int {
	n := 0
	for _, r := range e.Results {
		if r.Outcome == domain.OutcomeError {
			n++
		}
	}
	return n
}

// NewEntry converts a finished outcome into an Entry
func NewEntry(o *domain.PublishOutcome) Entry {
	e := Entry{
		RunID:       o.RunID,
		ProjectPath: o.ProjectPath,
		State:       o.State,
		StartedAt:   o.StartedAt.UTC(),
		Duration:    o.Duration,
		SidecarPath: o.SidecarPath,
		Results:     make([]ResultEntry, 0, len(o.Results)),
	}
	if o.Manifest != nil {
		m := o.Manifest.Clone()
		e.Manifest = &m
	}
	if o.Build != nil {
		e.Attempts = o.Build.Attempts
	}
	if o.Err != nil {
		e.Error = o.Err.Error()
	}
	for _, r := range o.Results {
		e.Results = append(e.Results, ResultEntry{
			Handler:  r.Handler,
			Phase:    r.Phase,
			Outcome:  r.Outcome,
			Message:  r.Message,
			Duration: r.Duration,
		})
	}
	return e
}

// Store keeps publish run history in BadgerDB
type Store struct {
	db        *badger.DB
	retention time.Duration
	stop      chan struct{}
	closeOnce sync.Once
}

// NewStore opens a history store
func NewStore(opts Options) (*Store, error) {
	var badgerOpts badger.Options

	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Directory == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			opts.Directory = filepath.Join(homeDir, ".clicktwice", "history")
		}

		if err := os.MkdirAll(opts.Directory, 0755); err != nil {
			return nil, err
		}

		badgerOpts = badger.DefaultOptions(opts.Directory)
	}

	// Disable logging unless explicitly enabled
	if !opts.Logger {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db, retention: opts.Retention, stop: make(chan struct{})}
	if !opts.InMemory {
		go s.runGC()
	}
	return s, nil
}

func (s *Store) runGC() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			_ = s.db.RunValueLogGC(0.5)
		}
	}
}

// Record stores the outcome of a finished run
func (s *Store) Record(ctx context.Context, o *domain.PublishOutcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return ErrClosed
	}

	entry := NewEntry(o)
	value, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	key := RunKey(o.ProjectPath, entry.StartedAt, o.RunID)
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), value)
		if s.retention > 0 {
			e = e.WithTTL(s.retention)
		}
		return txn.SetEntry(e)
	})
}

// List returns the most recent runs first. An empty project lists every
// project; limit <= 0 returns all entries.
func (s *Store) List(ctx context.Context, projectPath string, limit int) ([]Entry, error) {
	if s.db.IsClosed() {
		return nil, ErrClosed
	}

	prefix := []byte(projectPrefix(projectPath))
	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var e Entry
			err := it.Item().Value(func(val []byte) error {
				return json.NewDecoder(bytes.NewReader(val)).Decode(&e)
			})
			if err != nil {
				return err
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartedAt.After(entries[j].StartedAt)
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Size returns the number of stored runs
func (s *Store) Size() int64 {
	var count int64
	_ = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count
}

// Clear removes all entries
func (s *Store) Clear() error {
	return s.db.DropAll()
}

// Close releases store resources
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.stop)
		err = s.db.Close()
	})
	return err
}
