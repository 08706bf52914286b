package patterncache

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

const textHeader = "# number,pattern"

// ReadText parses the two-column text format. Blank lines and lines starting
// with '#' are skipped; a later line for the same number wins when the
// entries are loaded into a Store.
func ReadText(r io.Reader) ([]Entry, error) {
	var out []Entry
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		num, pattern, ok := strings.Cut(s, ",")
		if !ok {
			return nil, fmt.Errorf("%w: line %d: missing comma", ErrMalformed, line)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			return nil, fmt.Errorf("%w: line %d: empty pattern", ErrMalformed, line)
		}
		out = append(out, Entry{Number: n, Pattern: pattern})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteText writes entries in the two-column text format, sorted by number
// descending, after a header comment. entries is not modified.
func WriteText(w io.Writer, entries []Entry) error {
	sorted := append([]Entry(nil), entries...)
	sortEntries(sorted)

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, textHeader); err != nil {
		return err
	}
	for _, e := range sorted {
		if _, err := fmt.Fprintf(bw, "%d,%s\n", e.Number, e.Pattern); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// flushEvery is how many unwritten changes a TextStore buffers before it
// rewrites its file.
const flushEvery = 256

// TextStore is a Store over one text file. The whole file is held in memory;
// changes are written back every flushEvery changes, on Flush and on Close.
type TextStore struct {
	mu      sync.RWMutex
	path    string
	entries map[int64]string
	pending int // changes not yet on disk
	writes  int // file rewrites
	closed  bool
}

// OpenText loads path, which need not exist yet. Its directory is created.
func OpenText(path string) (*TextStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	s := &TextStore{path: path, entries: make(map[int64]string)}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open text cache: %w", err)
	}
	defer f.Close()

	entries, err := ReadText(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, e := range entries {
		s.entries[e.Number] = e.Pattern
	}
	return s, nil
}

// Path returns the backing file.
func (s *TextStore) Path() string { return s.path }

func (s *TextStore) Get(_ context.Context, n int64) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	p, ok := s.entries[n]
	return p, ok, nil
}

func (s *TextStore) Put(_ context.Context, n int64, pattern string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.set(n, pattern)
	return s.maybeFlush()
}

// PutBatch stores every entry and writes the file at most once.
func (s *TextStore) PutBatch(ctx context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.set(e.Number, e.Pattern)
	}
	if s.pending == 0 {
		return nil
	}
	return s.flush()
}

func (s *TextStore) Delete(_ context.Context, n int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if _, ok := s.entries[n]; !ok {
		return nil
	}
	delete(s.entries, n)
	s.pending++
	return s.maybeFlush()
}

func (s *TextStore) All(_ context.Context) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.snapshot(), nil
}

// Flush writes buffered changes to the file.
func (s *TextStore) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.pending == 0 {
		return nil
	}
	return s.flush()
}

// Close writes buffered changes and releases the store.
func (s *TextStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.pending == 0 {
		return nil
	}
	return s.flush()
}

// set records n unless it already holds pattern. Caller holds mu.
func (s *TextStore) set(n int64, pattern string) {
	if old, ok := s.entries[n]; ok && old == pattern {
		return
	}
	s.entries[n] = pattern
	s.pending++
}

// maybeFlush writes the file once enough changes are buffered. Caller holds mu.
func (s *TextStore) maybeFlush() error {
	if s.pending < flushEvery {
		return nil
	}
	return s.flush()
}

// snapshot returns the entries sorted descending. Caller holds mu.
func (s *TextStore) snapshot() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for n, p := range s.entries {
		out = append(out, Entry{Number: n, Pattern: p})
	}
	sortEntries(out)
	return out
}

// flush rewrites the file through a temporary sibling. Caller holds mu.
func (s *TextStore) flush() error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write text cache: %w", err)
	}
	if err := WriteText(f, s.snapshot()); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write text cache: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write text cache: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write text cache: %w", err)
	}
	s.pending = 0
	s.writes++
	return nil
}
