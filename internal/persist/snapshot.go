// Package persist implements an optional, purely diagnostic export of an
// interning pool's contents to an embedded Badger store, mirroring how the
// teacher cache's examples/disk_eject uses Badger as an L2 store for
// evicted entries. Here there is no eviction and nothing to restore into
// live handles: spec.md's non-goal of cross-process sharing still holds.
// The export exists so a long-lived process's interned corpus can be
// inspected (by cmd/intern-inspect or an operator) without attaching a
// debugger to a running binary.
//
// © 2025 strpool authors. MIT License.
package persist

import (
	"encoding/binary"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Snapshotter writes hash -> bytes pairs to an embedded Badger database.
type Snapshotter struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens (creating if necessary) a Badger database rooted at dir.
func Open(dir string, logger *zap.Logger) (*Snapshotter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("persist: open badger at %q: %w", dir, err)
	}
	return &Snapshotter{db: db, logger: logger}, nil
}

// Close releases the underlying Badger database.
func (s *Snapshotter) Close() error {
	return s.db.Close()
}

// Put records one interned string under its content hash.
func (s *Snapshotter) Put(hash uint64, b []byte) error {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], hash)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key[:], append([]byte(nil), b...))
	})
}

// Export walks every string reported by each (typically an adapter over
// Interner.Each) and persists it under its content hash, logging progress
// at Debug level every 10,000 entries.
func (s *Snapshotter) Export(each func(fn func(hash uint64, b []byte))) (int, error) {
	var count int
	var firstErr error
	each(func(hash uint64, b []byte) {
		if firstErr != nil {
			return
		}
		if err := s.Put(hash, b); err != nil {
			firstErr = err
			return
		}
		count++
		if count%10000 == 0 {
			s.logger.Debug("snapshot export progress", zap.Int("exported", count))
		}
	})
	if firstErr != nil {
		return count, firstErr
	}
	s.logger.Debug("snapshot export complete", zap.Int("exported", count))
	return count, nil
}

// Count returns the number of keys currently stored, for diagnostics.
func (s *Snapshotter) Count() (uint64, error) {
	var n uint64
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
