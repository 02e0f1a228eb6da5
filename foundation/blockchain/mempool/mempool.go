// Package mempool maintains the payloads waiting to be mined into blocks.
package mempool

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an entry is not in the pool.
var ErrNotFound = errors.New("entry not found")

// =============================================================================

// Entry represents one payload submitted for mining.
type Entry struct {
	ID        string `json:"id"`
	Data      string `json:"data"`
	TimeStamp uint64 `json:"timestamp"` // Unix milliseconds the entry was submitted.
}

// NewEntry constructs an entry with a unique id for the payload.
func NewEntry(data string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Data:      data,
		TimeStamp: uint64(time.Now().UTC().UnixMilli()),
	}
}

// =============================================================================

// Mempool represents a cache of pending entries kept in submission order.
type Mempool struct {
	mu    sync.RWMutex
	pool  map[string]Entry
	order []string
}

// New constructs a new, empty mempool.
func New() *Mempool {
	return &Mempool{
		pool: make(map[string]Entry),
	}
}

// Count returns the current number of entries in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds or replaces an entry. A replaced entry keeps its position.
func (mp *Mempool) Upsert(entry Entry) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if _, exists := mp.pool[entry.ID]; !exists {
		mp.order = append(mp.order, entry.ID)
	}
	mp.pool[entry.ID] = entry

	return len(mp.pool)
}

// Delete removes an entry from the pool.
func (mp *Mempool) Delete(id string) error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	if _, exists := mp.pool[id]; !exists {
		return ErrNotFound
	}

	delete(mp.pool, id)
	for i, key := range mp.order {
		if key == id {
			mp.order = append(mp.order[:i], mp.order[i+1:]...)
			break
		}
	}

	return nil
}

// Oldest returns the entry that has been waiting the longest.
func (mp *Mempool) Oldest() (Entry, bool) {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	if len(mp.order) == 0 {
		return Entry{}, false
	}

	return mp.pool[mp.order[0]], true
}

// Copy returns the entries in submission order.
func (mp *Mempool) Copy() []Entry {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	entries := make([]Entry, 0, len(mp.order))
	for _, id := range mp.order {
		entries = append(entries, mp.pool[id])
	}

	return entries
}

// Truncate clears all the entries from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]Entry)
	mp.order = nil
}
