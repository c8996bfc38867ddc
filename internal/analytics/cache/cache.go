// internal/analytics/cache/cache.go

// Package cache memoizes remote resolutions for a short window so repeated
// identical questions in a session do not trigger redundant remote calls.
package cache

import (
	"context"
	"strings"
	"time"

	"analytics-dashboard/internal/models"
)

// DefaultTTL is how long a cached resolution stays live. Entries past the TTL
// are treated as absent on read; nothing sweeps them proactively.
const DefaultTTL = 5 * time.Minute

// Cache is the resolution memoization surface. Implementations must be safe
// for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (*models.AnalyticsQuery, bool)
	Set(ctx context.Context, key string, result models.AnalyticsQuery)
}

// Key builds the memoization key from the selected model, the query text and
// the conversation context's metric (or a sentinel when there is none). Two
// turns differing only in context must not share an entry.
func Key(model, query string, convCtx *models.Context) string {
	contextMetric := "none"
	if convCtx != nil && convCtx.Metric != "" {
		contextMetric = string(convCtx.Metric)
	}
	return model + "|" + strings.ToLower(strings.TrimSpace(query)) + "|" + contextMetric
}
