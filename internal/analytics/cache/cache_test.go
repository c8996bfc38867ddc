// internal/analytics/cache/cache_test.go
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"analytics-dashboard/internal/models"
)

func sampleQuery() models.AnalyticsQuery {
	return models.AnalyticsQuery{
		Intent:             models.IntentShowChart,
		Entity:             models.EntityUsers,
		Metric:             models.MetricNewUsers,
		Visualization:      models.VisualizationBar,
		Timeframe:          models.DefaultTimeframe,
		Confidence:         0.98,
		IsValidCombination: true,
	}
}

// ==========================
// Key Construction
// ==========================

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		query   string
		convCtx *models.Context
		want    string
	}{
		{
			name:  "no context uses sentinel",
			model: "gpt-4o-mini",
			query: "show new users",
			want:  "gpt-4o-mini|show new users|none",
		},
		{
			name:    "context metric is part of the key",
			model:   "gpt-4o-mini",
			query:   "make it a line chart",
			convCtx: &models.Context{Entity: models.EntityUsers, Metric: models.MetricNewUsers},
			want:    "gpt-4o-mini|make it a line chart|new_users",
		},
		{
			name:    "context without metric falls back to sentinel",
			model:   "gpt-4o-mini",
			query:   "show new users",
			convCtx: &models.Context{},
			want:    "gpt-4o-mini|show new users|none",
		},
		{
			name:  "query is trimmed and lowercased",
			model: "m",
			query: "  Show New USERS  ",
			want:  "m|show new users|none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.model, tt.query, tt.convCtx))
		})
	}
}

func TestKey_ContextSeparatesEntries(t *testing.T) {
	bare := Key("m", "make it a line chart", nil)
	withCtx := Key("m", "make it a line chart", &models.Context{Metric: models.MetricNewUsers})
	assert.NotEqual(t, bare, withCtx)
}

// ==========================
// Memory Cache
// ==========================

func TestMemory_SetGet(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	c.Set(ctx, "k", sampleQuery())

	got, ok := c.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, sampleQuery(), *got)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()
	c.Set(ctx, "k", sampleQuery())

	first, _ := c.Get(ctx, "k")
	first.Confidence = 0.1

	second, _ := c.Get(ctx, "k")
	assert.Equal(t, 0.98, second.Confidence)
}

func TestMemory_TTLExpiry(t *testing.T) {
	c := NewMemory(5 * time.Minute)
	current := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }
	ctx := context.Background()

	c.Set(ctx, "k", sampleQuery())

	// Exactly at the TTL the entry is still live; expiry is strict.
	current = current.Add(5 * time.Minute)
	_, ok := c.Get(ctx, "k")
	assert.True(t, ok)

	current = current.Add(time.Nanosecond)
	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemory_ExpiredEntryOverwritten(t *testing.T) {
	c := NewMemory(time.Minute)
	current := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }
	ctx := context.Background()

	c.Set(ctx, "k", sampleQuery())
	current = current.Add(2 * time.Minute)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)

	// A fresh write resurrects the key.
	c.Set(ctx, "k", sampleQuery())
	_, ok = c.Get(ctx, "k")
	assert.True(t, ok)
}

func TestMemory_ZeroTTLUsesDefault(t *testing.T) {
	c := NewMemory(0)
	assert.Equal(t, DefaultTTL, c.ttl)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				c.Set(ctx, "k", sampleQuery())
				c.Get(ctx, "k")
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
