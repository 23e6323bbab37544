package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	exportsBucket = []byte("exports")

	errBucketMissing = errors.New("exports bucket missing")
)

// exportRecord is the value stored per comparison key: when it was first
// exported and when the suppression window ends, both as unix nanoseconds.
type exportRecord struct {
	markedAt  int64
	expiresAt int64
}

const exportRecordSize = 16

func (r exportRecord) encode() []byte {
	buf := make([]byte, exportRecordSize)
	binary.BigEndian.PutUint64(buf[:8], uint64(r.markedAt))
	binary.BigEndian.PutUint64(buf[8:], uint64(r.expiresAt))
	return buf
}

func decodeExportRecord(v []byte) (exportRecord, bool) {
	if len(v) != exportRecordSize {
		return exportRecord{}, false
	}
	return exportRecord{
		markedAt:  int64(binary.BigEndian.Uint64(v[:8])),
		expiresAt: int64(binary.BigEndian.Uint64(v[8:])),
	}, true
}

func (r exportRecord) liveAt(now time.Time) bool {
	return r.expiresAt > now.UnixNano()
}

// boltStore is a Store backed by a single bbolt bucket.
type boltStore struct {
	db   *bolt.DB
	opts Options

	mu        sync.Mutex
	lastPrune time.Time
}

func openBolt(path string, opts Options) (*boltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(exportsBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	return &boltStore{db: db, opts: opts, lastPrune: opts.Now()}, nil
}

func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SeenComparison reports whether key was marked and its window is still open.
func (b *boltStore) SeenComparison(key string) (bool, error) {
	now := b.opts.Now()
	if _, err := b.maybePrune(now); err != nil {
		return false, err
	}

	var live bool
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(exportsBucket)
		if bucket == nil {
			return errBucketMissing
		}
		if rec, ok := decodeExportRecord(bucket.Get([]byte(key))); ok {
			live = rec.liveAt(now)
		}
		return nil
	})
	return live, err
}

// MarkComparison opens a new suppression window for key.
func (b *boltStore) MarkComparison(key string) error {
	now := b.opts.Now()
	if _, err := b.maybePrune(now); err != nil {
		return err
	}

	rec := exportRecord{
		markedAt:  now.UnixNano(),
		expiresAt: now.Add(b.opts.EntryTTL).UnixNano(),
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(exportsBucket)
		if bucket == nil {
			return errBucketMissing
		}
		return bucket.Put([]byte(key), rec.encode())
	})
}

// maybePrune deletes expired or malformed records at most once per cleanup
// interval and returns how many were removed.
func (b *boltStore) maybePrune(now time.Time) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Sub(b.lastPrune) < b.opts.CleanupInterval {
		return 0, nil
	}

	removed := 0
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(exportsBucket)
		if bucket == nil {
			return errBucketMissing
		}
		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if rec, ok := decodeExportRecord(v); ok && rec.liveAt(now) {
				continue
			}
			if err := c.Delete(); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune expired exports: %w", err)
	}
	b.lastPrune = now
	return removed, nil
}

// count returns the number of stored records.
func (b *boltStore) count() (int, error) {
	n := 0
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(exportsBucket)
		if bucket == nil {
			return errBucketMissing
		}
		n = bucket.Stats().KeyN
		return nil
	})
	return n, err
}
