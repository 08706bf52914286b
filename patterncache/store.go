package patterncache

import (
	"context"
	"fmt"
	"sort"
)

// Entry is one cached pattern.
type Entry struct {
	Number  int64  `json:"number" yaml:"number"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

// Store is a persistent map from integers to signatures. Implementations are
// safe for concurrent use.
type Store interface {
	// Get returns the pattern stored for n; ok is false when there is none.
	Get(ctx context.Context, n int64) (pattern string, ok bool, err error)
	// Put stores pattern for n, replacing any previous entry.
	Put(ctx context.Context, n int64, pattern string) error
	// Delete removes n. Deleting a missing entry is not an error.
	Delete(ctx context.Context, n int64) error
	// All returns every entry sorted by number descending.
	All(ctx context.Context) ([]Entry, error)
	// Close releases the backend. Further calls return ErrClosed.
	Close() error
}

// BatchPutter is implemented by stores that write many entries in one
// operation. Import prefers it over per-entry Put.
type BatchPutter interface {
	PutBatch(ctx context.Context, entries []Entry) error
}

// Backend names accepted by Open.
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Backends lists the names Open accepts.
var Backends = []string{BackendText, BackendSQLite, BackendBadger}

// Open opens the named backend at path. For text and sqlite path is a file,
// for badger a directory.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendText:
		return OpenText(path)
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendBadger:
		return OpenBadger(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Import puts every entry into s and returns how many were written. A
// BatchPutter receives all entries in one call, so its count is all or none.
func Import(ctx context.Context, s Store, entries []Entry) (int, error) {
	if b, ok := s.(BatchPutter); ok {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := b.PutBatch(ctx, entries); err != nil {
			return 0, err
		}
		return len(entries), nil
	}
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if err := s.Put(ctx, e.Number, e.Pattern); err != nil {
			return i, fmt.Errorf("entry %d: %w", e.Number, err)
		}
	}
	return len(entries), nil
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Number > entries[j].Number })
}
