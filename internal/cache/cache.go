package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/mintfeed/mintfeed/internal/metrics"
	"github.com/mintfeed/mintfeed/internal/models"
)

// Store is the process-wide content cache. All state is in-memory and
// rebuilt from the ledger after a restart; there is no persistence.
//
// Entries keep their value after expiry so callers can explicitly fall
// back to stale data when a scan fails (GetStale). Writes to the same key
// are last-write-wins.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

func (e entry) fresh(now time.Time) bool {
	return now.Sub(e.storedAt) < e.ttl
}

// New creates an empty cache store.
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

// Get returns the value for key if it exists and is within its TTL.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || !e.fresh(time.Now()) {
		metrics.Get().CacheMisses.WithLabelValues(keyClass(key)).Inc()
		return nil, false
	}
	metrics.Get().CacheHits.WithLabelValues(keyClass(key)).Inc()
	return e.value, true
}

// GetStale returns the value for key even if its TTL has elapsed. This is
// the resilience fallback used when a re-scan is rate limited or failing;
// stale reports whether the entry had expired.
func (s *Store) GetStale(key string) (value any, stale bool, ok bool) {
	s.mu.RLock()
	e, found := s.entries[key]
	s.mu.RUnlock()

	if !found {
		return nil, false, false
	}
	return e.value, !e.fresh(time.Now()), true
}

// StoredAt returns when the entry for key was written.
func (s *Store) StoredAt(key string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return time.Time{}, false
	}
	return e.storedAt, true
}

// Put stores value under key with the given TTL.
func (s *Store) Put(key string, value any, ttl time.Duration) {
	s.mu.Lock()
	s.entries[key] = entry{value: value, storedAt: time.Now(), ttl: ttl}
	s.mu.Unlock()
}

// Invalidate removes every entry whose key starts with prefix and returns
// how many were dropped.
func (s *Store) Invalidate(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			n++
		}
	}
	return n
}

// Reset drops every entry. Tests use this to isolate runs.
func (s *Store) Reset() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// Key layout. Bulk lists are keyed by collection and content type, point
// lookups by owner address, raw scans by collection.

// ScanKey is the cache key for a collection's raw scan result.
func ScanKey(collection string) string {
	return "scan:" + collection
}

// ListKey is the cache key for a classified bulk list.
func ListKey(collection string, kind models.ContentKind) string {
	return "list:" + collection + ":" + string(kind)
}

// ListPrefix covers every bulk list for a collection.
func ListPrefix(collection string) string {
	return "list:" + collection + ":"
}

// ProfileKey is the cache key for a profile point lookup.
func ProfileKey(owner string) string {
	return "profile:" + owner
}

func keyClass(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}
