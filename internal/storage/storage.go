// Package storage remembers which comparison outcomes were already exported.
package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store tracks exported comparison keys.
type Store interface {
	Close() error
	SeenComparison(key string) (bool, error)
	MarkComparison(key string) error
}

// Options controls retention for concrete store implementations.
type Options struct {
	// EntryTTL is how long a marked comparison suppresses re-export.
	EntryTTL time.Duration
	// CleanupInterval is the minimum time between sweeps of expired keys.
	CleanupInterval time.Duration
	// Now overrides the clock; time.Now when nil.
	Now func() time.Time
}

const (
	defaultEntryTTL        = 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// Supported store types.
const (
	TypeNone  = "none"
	TypeBBolt = "bbolt"
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = withDefaults(opts)

	switch typ {
	case "", TypeNone, "disabled":
		return disabledStore{}, nil
	case TypeBBolt:
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func withDefaults(opts Options) Options {
	if opts.EntryTTL <= 0 {
		opts.EntryTTL = defaultEntryTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

// disabledStore never remembers anything, so every result is exported.
type disabledStore struct{}

func (disabledStore) Close() error                        { return nil }
func (disabledStore) SeenComparison(string) (bool, error) { return false, nil }
func (disabledStore) MarkComparison(string) error         { return nil }
