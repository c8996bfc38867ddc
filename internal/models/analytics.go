// internal/models/analytics.go
package models

import "time"

// Confidence thresholds shared across the resolution pipeline. These are
// contractual heuristic constants, not tunables.
const (
	ConfidenceUnknown       = 0.2
	ConfidenceNeedContext   = 0.3
	ConfidenceChartMinimum  = 0.5
	ConfidenceFallbackFloor = 0.7
	ConfidencePatternCap    = 0.95
)

// AnalyticsQuery is the resolver's output contract: a structured chart
// request derived from free text. It is produced fresh per turn and is always
// structurally valid, whatever the input.
type AnalyticsQuery struct {
	Intent        Intent        `json:"intent"`
	Entity        Entity        `json:"entity,omitempty"`
	Metric        Metric        `json:"metric,omitempty"`
	Visualization Visualization `json:"visualization"`
	Timeframe     Timeframe     `json:"timeframe"`
	Confidence    float64       `json:"confidence"`

	IsValidCombination bool     `json:"isValidCombination"`
	Suggestions        []string `json:"suggestions,omitempty"`
	IsContextual       bool     `json:"isContextual,omitempty"`

	IsUnsupportedVisualization bool   `json:"isUnsupportedVisualization,omitempty"`
	RequestedVisualization     string `json:"requestedVisualization,omitempty"`
}

// Context is the conversation memory: the most recently resolved insight,
// consumed read-only to interpret elliptical follow-ups like "make it a line
// chart".
type Context struct {
	Entity Entity `json:"entity"`
	Metric Metric `json:"metric"`
	Title  string `json:"title"`
}

// SeriesPoint is a single bucket of an ordered time series.
type SeriesPoint struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// Insight is a single-number callout rendered instead of a series.
type Insight struct {
	Value      float64 `json:"value"`
	Label      string  `json:"label"`
	Subtitle   string  `json:"subtitle,omitempty"`
	Change     float64 `json:"change"`
	ChangeType string  `json:"changeType"` // "increase" or "decrease"
}

// ChartData carries either a series or an insight, never both.
type ChartData struct {
	Series  []SeriesPoint `json:"series,omitempty"`
	Insight *Insight      `json:"insight,omitempty"`
}

// Resolution is what the resolver hands to the presentation layer for one
// conversational turn.
type Resolution struct {
	Query        AnalyticsQuery `json:"query"`
	Title        string         `json:"title,omitempty"`
	Data         *ChartData     `json:"data,omitempty"`
	Source       Source         `json:"source"`
	FallbackUsed bool           `json:"fallbackUsed,omitempty"`
	UsedCache    bool           `json:"usedCache,omitempty"`
}

// Message is one entry in a session's ordered conversation log.
type Message struct {
	ID         string      `json:"id"`
	Role       string      `json:"role"` // "user" or "assistant"
	Content    string      `json:"content"`
	Resolution *Resolution `json:"resolution,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// Feedback is a thumbs-up/down on a single assistant message.
type Feedback struct {
	SessionID string    `json:"sessionId"`
	MessageID string    `json:"messageId"`
	Helpful   bool      `json:"helpful"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
