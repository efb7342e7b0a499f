package ratelimit

import (
	"context"
	"sync"
	"time"
)

type windowEntry struct {
	count   int64
	resetAt time.Time
}

type memoryQuotaTracker struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
}

// NewMemoryQuotaTracker returns a map-backed tracker for tests and
// redis-less development. Windows are created lazily on first increment
// and reset when their duration elapses.
func NewMemoryQuotaTracker() QuotaTracker {
	return &memoryQuotaTracker{entries: make(map[string]*windowEntry)}
}

func (t *memoryQuotaTracker) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	entry, ok := t.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &windowEntry{resetAt: now.Add(window)}
		t.entries[key] = entry
	}
	entry.count++
	return entry.count, nil
}
