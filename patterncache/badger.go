package patterncache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// keyPrefix namespaces pattern keys inside the Badger keyspace.
var keyPrefix = []byte("pattern/")

// BadgerStore is a Store over a Badger directory.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens or creates a Badger database in dir. An empty dir keeps
// the database in memory.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// patternKey encodes n so that byte order matches numeric order.
func patternKey(n int64) []byte {
	k := make([]byte, len(keyPrefix)+8)
	copy(k, keyPrefix)
	binary.BigEndian.PutUint64(k[len(keyPrefix):], uint64(n)^(1<<63))
	return k
}

func numberOf(key []byte) int64 {
	return int64(binary.BigEndian.Uint64(key[len(keyPrefix):]) ^ (1 << 63))
}

func (s *BadgerStore) Get(_ context.Context, n int64) (string, bool, error) {
	var pattern string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(patternKey(n))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			pattern = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapBadger(err)
	}
	return pattern, true, nil
}

func (s *BadgerStore) Put(_ context.Context, n int64, pattern string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(patternKey(n), []byte(pattern))
	})
	return wrapBadger(err)
}

// PutBatch writes entries through one WriteBatch.
func (s *BadgerStore) PutBatch(_ context.Context, entries []Entry) error {
	if s.db.IsClosed() {
		return wrapBadger(badger.ErrDBClosed)
	}
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, e := range entries {
		if err := wb.Set(patternKey(e.Number), []byte(e.Pattern)); err != nil {
			return wrapBadger(err)
		}
	}
	return wrapBadger(wb.Flush())
}

func (s *BadgerStore) Delete(_ context.Context, n int64) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(patternKey(n))
	})
	return wrapBadger(err)
}

func (s *BadgerStore) All(ctx context.Context) ([]Entry, error) {
	var out []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = keyPrefix
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration seeks from the last key under the prefix.
		seek := append(append([]byte(nil), keyPrefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(keyPrefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			item := it.Item()
			n := numberOf(item.Key())
			if err := item.Value(func(val []byte) error {
				out = append(out, Entry{Number: n, Pattern: string(val)})
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapBadger(err)
	}
	return out, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}

func wrapBadger(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, badger.ErrDBClosed) {
		return fmt.Errorf("%w: %v", ErrClosed, err)
	}
	return fmt.Errorf("badger cache: %w", err)
}
