// SPDX-License-Identifier: MIT

package snapshot

import (
	"encoding/binary"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// keyLen is 16 bytes of run id followed by the big-endian frame number, so
// a run's frames iterate in order under the run-id prefix.
const keyLen = 16 + 8

func frameKey(run uuid.UUID, frame uint64) []byte {
	k := make([]byte, keyLen)
	copy(k, run[:])
	binary.BigEndian.PutUint64(k[16:], frame)

	return k
}

// Store persists snapshots in badger, one YAML value per (run, frame).
type Store struct {
	db  *badger.DB
	log logr.Logger
}

// Open opens a store over an existing badger configuration, e.g.
// badger.DefaultOptions(dir) or badger.DefaultOptions("").WithInMemory(true).
// Badger's own logger is silenced; store events go to log.
func Open(opts badger.Options, log logr.Logger) (*Store, error) {
	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, snapshotErrorf("Open", err)
	}

	return &Store{db: db, log: log}, nil
}

// OpenDir opens (or creates) an on-disk store under dir.
func OpenDir(dir string, log logr.Logger) (*Store, error) {
	return Open(badger.DefaultOptions(dir), log)
}

// Put writes s under (s.RunID, s.Frame), replacing any previous value.
func (st *Store) Put(s *Snapshot) error {
	if s == nil {
		return snapshotErrorf("Put", ErrNilSnapshot)
	}
	val, err := yaml.Marshal(s)
	if err != nil {
		return snapshotErrorf("Put", err)
	}
	err = st.db.Update(func(txn *badger.Txn) error {
		return txn.Set(frameKey(s.RunID, s.Frame), val)
	})
	if err != nil {
		return snapshotErrorf("Put", err)
	}
	st.log.V(2).Info("snapshot stored", "run", s.RunID, "frame", s.Frame, "bytes", len(val))

	return nil
}

// Get loads one frame. ErrNotFound when absent.
func (st *Store) Get(run uuid.UUID, frame uint64) (*Snapshot, error) {
	var val []byte
	err := st.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(frameKey(run, frame))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, snapshotErrorf("Get", ErrNotFound)
	}
	if err != nil {
		return nil, snapshotErrorf("Get", err)
	}

	return unmarshal("Get", val)
}

// Frames lists the stored frame numbers of a run in ascending order.
func (st *Store) Frames(run uuid.UUID) ([]uint64, error) {
	var frames []uint64
	err := st.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = run[:]
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			frames = append(frames, binary.BigEndian.Uint64(it.Item().Key()[16:]))
		}

		return nil
	})
	if err != nil {
		return nil, snapshotErrorf("Frames", err)
	}

	return frames, nil
}

// Latest loads the highest frame of a run. ErrNotFound for an unknown run.
func (st *Store) Latest(run uuid.UUID) (*Snapshot, error) {
	var val []byte
	err := st.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = run[:]
		it := txn.NewIterator(opts)
		defer it.Close()
		// reverse iteration seeks to the largest key <= the probe
		it.Seek(frameKey(run, ^uint64(0)))
		if !it.ValidForPrefix(run[:]) {
			return badger.ErrKeyNotFound
		}
		var err error
		val, err = it.Item().ValueCopy(nil)

		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, snapshotErrorf("Latest", ErrNotFound)
	}
	if err != nil {
		return nil, snapshotErrorf("Latest", err)
	}

	return unmarshal("Latest", val)
}

// Delete removes every frame of a run.
func (st *Store) Delete(run uuid.UUID) error {
	frames, err := st.Frames(run)
	if err != nil {
		return err
	}
	wb := st.db.NewWriteBatch()
	defer wb.Cancel()
	for _, f := range frames {
		if err := wb.Delete(frameKey(run, f)); err != nil {
			return snapshotErrorf("Delete", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return snapshotErrorf("Delete", err)
	}

	return nil
}

// Close flushes and closes the database.
func (st *Store) Close() error {
	if err := st.db.Close(); err != nil {
		return snapshotErrorf("Close", err)
	}

	return nil
}

func unmarshal(tag string, val []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(val, &s); err != nil {
		return nil, snapshotErrorf(tag, err)
	}

	return &s, nil
}
