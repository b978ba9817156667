// Package pebbledb implements a storage backend on cockroachdb's pebble,
// for deployments that want an LSM engine instead of the builtin log.
package pebbledb

import (
	"encoding/binary"

	"github.com/cockroachdb/pebble"

	"github.com/larderdb/larder/pkg/storage"
)

// Key layout: product records live under "p:" followed by the big-endian
// id, the id counter under its own sequence key.
const productKeyPrefix = "p:"

var counterKey = []byte("seq:products")

// Store is a pebble-backed storage backend
type Store struct {
	db         *pebble.DB
	syncWrites bool
}

// Options holds configuration for the pebble backend
type Options struct {
	Path       string // Database directory
	SyncWrites bool   // Fsync every record write
}

// Open creates or opens a pebble database at the given path
func Open(opts Options) (*Store, error) {
	db, err := pebble.Open(opts.Path, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db, syncWrites: opts.SyncWrites}, nil
}

func productKey(id uint64) []byte {
	key := make([]byte, len(productKeyPrefix)+8)
	copy(key, productKeyPrefix)
	binary.BigEndian.PutUint64(key[len(productKeyPrefix):], id)
	return key
}

func (s *Store) writeOption() *pebble.WriteOptions {
	if s.syncWrites {
		return pebble.Sync
	}
	return pebble.NoSync
}

// Get retrieves the stored bytes for an id
func (s *Store) Get(id uint64) ([]byte, error) {
	data, closer, err := s.db.Get(productKey(id))
	if err != nil {
		if err == pebble.ErrNotFound {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()

	// The slice pebble returns is only valid until the closer runs
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put stores bytes under an id, overwriting any previous record
func (s *Store) Put(id uint64, data []byte) error {
	return s.db.Set(productKey(id), data, s.writeOption())
}

// Delete removes the record for an id. Deleting an absent id is a no-op.
func (s *Store) Delete(id uint64) error {
	return s.db.Delete(productKey(id), s.writeOption())
}

// Counter reads the id counter. A database that never allocated an id
// reads as zero.
func (s *Store) Counter() (uint64, error) {
	data, closer, err := s.db.Get(counterKey)
	if err != nil {
		if err == pebble.ErrNotFound {
			return 0, nil
		}
		return 0, err
	}
	defer closer.Close()

	if len(data) != 8 {
		return 0, storage.ErrCorruption
	}
	return binary.BigEndian.Uint64(data), nil
}

// SetCounter durably replaces the id counter. Counter writes are always
// synced so an allocated id is never reused after a crash.
func (s *Store) SetCounter(value uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, value)
	return s.db.Set(counterKey, buf, pebble.Sync)
}

// Count returns the number of live records
func (s *Store) Count() (int, error) {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(productKeyPrefix),
		UpperBound: keyUpperBound([]byte(productKeyPrefix)),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	count := 0
	for iter.First(); iter.Valid(); iter.Next() {
		count++
	}
	return count, iter.Error()
}

// Sync flushes the memtable to stable media
func (s *Store) Sync() error {
	return s.db.Flush()
}

// Close shuts down the database
func (s *Store) Close() error {
	return s.db.Close()
}

// keyUpperBound returns the smallest key greater than every key with the
// given prefix.
func keyUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil // Prefix is all 0xFF, no upper bound
}
