package history

import (
	"sync"

	"github.com/samvad-hq/namematch-console/internal/domain"
)

// DefaultCapacity is the number of comparisons kept when no capacity is given.
const DefaultCapacity = 10

// Buffer keeps the most recent comparison results, newest first.
// It lives only as long as the session that owns it.
type Buffer struct {
	mu       sync.RWMutex
	entries  []domain.ComparisonResult
	capacity int
}

// New returns an empty buffer holding at most capacity entries.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		entries:  make([]domain.ComparisonResult, 0, capacity),
		capacity: capacity,
	}
}

// Record inserts r at the front, evicting the oldest entries beyond capacity.
func (b *Buffer) Record(r domain.ComparisonResult) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) < b.capacity {
		b.entries = append(b.entries, domain.ComparisonResult{})
	}
	copy(b.entries[1:], b.entries[:len(b.entries)-1])
	b.entries[0] = r
}

// Clear removes every entry.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.entries = b.entries[:0]
	b.mu.Unlock()
}

// List returns a copy of the entries, newest first.
func (b *Buffer) List() []domain.ComparisonResult {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.ComparisonResult, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of stored entries.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Capacity returns the maximum number of entries kept.
func (b *Buffer) Capacity() int { return b.capacity }
