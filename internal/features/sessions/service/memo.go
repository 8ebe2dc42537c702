package service

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Memoizer caches computed report payloads keyed by content fingerprints.
// A changed upload changes the fingerprint and therefore the key, so stale
// entries are never served; they just age out of the bounded window.
type Memoizer struct {
	mu       sync.Mutex
	capacity int
	entries  map[uint64]any
	order    []uint64
}

// NewMemoizer creates a memoizer holding at most capacity entries.
// capacity <= 0 disables memoization.
func NewMemoizer(capacity int) *Memoizer {
	return &Memoizer{
		capacity: capacity,
		entries:  make(map[uint64]any),
	}
}

// MemoKey hashes the identifying parts of a computation into a cache key.
// Callers pass the report name plus every input fingerprint.
func MemoKey(parts ...string) uint64 {
	h := xxhash.New()
	for _, part := range parts {
		h.WriteString(part)
		h.Write([]byte{0x1f})
	}
	return h.Sum64()
}

// Get returns the cached value for a key, if present.
func (m *Memoizer) Get(key uint64) (any, bool) {
	if m == nil || m.capacity <= 0 {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok
}

// Set stores a value, evicting the oldest entry when full.
func (m *Memoizer) Set(key uint64, v any) {
	if m == nil || m.capacity <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[key]; ok {
		m.entries[key] = v
		return
	}

	for len(m.entries) >= m.capacity && len(m.order) > 0 {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.entries, oldest)
	}

	m.entries[key] = v
	m.order = append(m.order, key)
}

// Reset drops every cached entry.
func (m *Memoizer) Reset() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[uint64]any)
	m.order = nil
}

// Len returns the number of cached entries.
func (m *Memoizer) Len() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
