// internal/analytics/cache/memory.go
package cache

import (
	"context"
	"sync"
	"time"

	"analytics-dashboard/internal/models"
)

type entry struct {
	result    models.AnalyticsQuery
	timestamp time.Time
}

// Memory is the default process-lifetime cache: a mutex-guarded map with
// TTL checks on read. Stale entries stay until overwritten.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an in-memory cache with the given TTL; ttl <= 0 uses
// DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) (*models.AnalyticsQuery, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.now().Sub(e.timestamp) > m.ttl {
		return nil, false
	}
	result := e.result
	return &result, true
}

func (m *Memory) Set(_ context.Context, key string, result models.AnalyticsQuery) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{result: result, timestamp: m.now()}
}
