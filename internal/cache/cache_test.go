package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFreshAndExpired(t *testing.T) {
	s := New()
	s.Put("scan:col", []string{"a", "b"}, 30*time.Millisecond)

	got, ok := s.Get("scan:col")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, got)

	time.Sleep(50 * time.Millisecond)

	_, ok = s.Get("scan:col")
	assert.False(t, ok, "expired entry must not satisfy a fresh read")
}

func TestGetStaleServesExpiredEntries(t *testing.T) {
	s := New()
	s.Put("scan:col", "payload", 20*time.Millisecond)

	got, stale, ok := s.GetStale("scan:col")
	require.True(t, ok)
	assert.False(t, stale)
	assert.Equal(t, "payload", got)

	time.Sleep(40 * time.Millisecond)

	got, stale, ok = s.GetStale("scan:col")
	require.True(t, ok, "expired entries remain readable until overwritten")
	assert.True(t, stale)
	assert.Equal(t, "payload", got)

	_, _, ok = s.GetStale("missing")
	assert.False(t, ok)
}

func TestStoredAt(t *testing.T) {
	s := New()

	_, ok := s.StoredAt("scan:col")
	assert.False(t, ok)

	before := time.Now()
	s.Put("scan:col", 1, time.Minute)

	at, ok := s.StoredAt("scan:col")
	require.True(t, ok)
	assert.False(t, at.Before(before))
}

func TestInvalidatePrefix(t *testing.T) {
	s := New()
	s.Put(ListKey("col", "post"), 1, time.Minute)
	s.Put(ListKey("col", "reply"), 2, time.Minute)
	s.Put(ListKey("other", "post"), 3, time.Minute)
	s.Put(ProfileKey("wallet-a"), 4, time.Minute)

	removed := s.Invalidate(ListPrefix("col"))
	assert.Equal(t, 2, removed)

	_, ok := s.Get(ListKey("col", "post"))
	assert.False(t, ok)
	_, ok = s.Get(ListKey("other", "post"))
	assert.True(t, ok)
	_, ok = s.Get(ProfileKey("wallet-a"))
	assert.True(t, ok)
}

func TestReset(t *testing.T) {
	s := New()
	s.Put("a", 1, time.Minute)
	s.Put("b", 2, time.Minute)

	s.Reset()

	_, ok := s.Get("a")
	assert.False(t, ok)
	_, _, ok = s.GetStale("b")
	assert.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Put(ScanKey("col"), n, time.Minute)
				s.Get(ScanKey("col"))
				s.GetStale(ScanKey("col"))
			}
		}(i)
	}
	wg.Wait()

	_, ok := s.Get(ScanKey("col"))
	assert.True(t, ok)
}
