// internal/analytics/classifier/classifier.go

// Package classifier turns a raw text query plus the optional last-result
// context into a structured AnalyticsQuery. It is the guaranteed-to-succeed
// local half of the resolution pipeline: pure pattern matching over a fixed
// vocabulary, no I/O, total over all inputs.
package classifier

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"analytics-dashboard/internal/analytics/catalog"
	"analytics-dashboard/internal/analytics/suggest"
	"analytics-dashboard/internal/analytics/vischart"
	"analytics-dashboard/internal/models"
)

// visOnlyRe matches queries that carry nothing but a "change the chart type"
// phrasing: an optional rephrase lead-in, an article, one chart-type word and
// an optional chart/graph/view tail. Any business content breaks the match.
var visOnlyRe = regexp.MustCompile(
	`^(?:(?:please|hey)[\s,]+)?` +
		`(?:(?:can|could)\s+you\s+)?` +
		`(?:(?:make|turn)\s+(?:it|this|that)(?:\s+into)?|change(?:\s+(?:it|this|that))?\s+to|show(?:\s+(?:it|this|that))?\s+as|switch(?:\s+(?:it|this))?\s+to|display\s+as|as)?` +
		`\s*(?:a\s+|an\s+)?` +
		`(?:` + vischart.Vocabulary() + `)` +
		`(?:\s+(?:chart|graph|view|plot))?` +
		`\s*[.!?]?$`)

var (
	compareRe = regexp.MustCompile(`\bcompared?\b|\bcomparison\b|\bversus\b|\bvs\.?\b`)
	trendRe   = regexp.MustCompile(`\btrends?\b|over\s+time`)
	insightRe = regexp.MustCompile(`\binsights?\b|\bsummar(y|ize)\b`)
)

// Classify resolves a query against the local pattern tables. It never fails:
// when nothing matches it returns the unknown fallback with canned
// suggestions. Identical inputs always produce identical outputs.
func Classify(query string, convCtx *models.Context) models.AnalyticsQuery {
	lowered := strings.ToLower(strings.TrimSpace(query))

	visMatch, visFound := vischart.Detect(lowered)

	// Visualization-only short-circuit: "make it a line chart" and friends
	// are follow-ups about the previous chart, not new questions.
	if visFound && visOnlyRe.MatchString(lowered) {
		return classifyVisualizationOnly(visMatch, convCtx)
	}

	intent := models.IntentShowChart
	vis := models.VisualizationBar
	if visFound {
		vis = visMatch.Visualization
	}

	// Intent overrides win over detected chart words for the visualization
	// field, except when the request already degraded from an unsupported
	// kind (the bar degradation and its flag must survive).
	switch {
	case compareRe.MatchString(lowered):
		intent = models.IntentCompare
		if !visMatch.Unsupported {
			vis = models.VisualizationBar
		}
	case trendRe.MatchString(lowered):
		intent = models.IntentShowTrend
		if !visMatch.Unsupported {
			vis = models.VisualizationLine
		}
	case insightRe.MatchString(lowered):
		intent = models.IntentShowInsight
		if !visMatch.Unsupported {
			vis = models.VisualizationInsight
		}
	}

	if best := bestMatch(lowered); best != nil {
		result := models.AnalyticsQuery{
			Intent:             intent,
			Entity:             best.entity,
			Metric:             best.metric,
			Visualization:      vis,
			Timeframe:          detectTimeframe(lowered),
			Confidence:         math.Min(best.confidence, models.ConfidencePatternCap),
			IsValidCombination: catalog.IsValidCombination(best.entity, best.metric),
		}
		applyUnsupported(&result, visMatch)
		return result
	}

	// Unknown fallback: never an error, always a next step.
	guidance := suggest.Suggest(query, "", "", models.ConfidenceUnknown)
	result := models.AnalyticsQuery{
		Intent:        models.IntentUnknown,
		Visualization: vis,
		Timeframe:     models.DefaultTimeframe,
		Confidence:    models.ConfidenceUnknown,
		Suggestions:   append(guidance.Suggestions, guidance.Examples...),
	}
	applyUnsupported(&result, visMatch)
	return result
}

func classifyVisualizationOnly(visMatch vischart.Match, convCtx *models.Context) models.AnalyticsQuery {
	if convCtx != nil && convCtx.Entity != "" {
		result := models.AnalyticsQuery{
			Intent:             models.IntentChangeVisualization,
			Entity:             convCtx.Entity,
			Metric:             convCtx.Metric,
			Visualization:      visMatch.Visualization,
			Timeframe:          models.DefaultTimeframe,
			Confidence:         models.ConfidencePatternCap,
			IsValidCombination: catalog.IsValidCombination(convCtx.Entity, convCtx.Metric),
			IsContextual:       true,
		}
		applyUnsupported(&result, visMatch)
		return result
	}

	// Same phrasing with no prior chart to re-style.
	var suggestion string
	if visMatch.Unsupported {
		suggestion = fmt.Sprintf(
			"I can't render a %s, but I can show a bar chart instead. Ask for a metric first, e.g. \"show new users\".",
			visMatch.Label)
	} else {
		suggestion = fmt.Sprintf(
			"Tell me what to chart first, e.g. \"show new users as a %s chart\".",
			visMatch.Visualization)
	}
	result := models.AnalyticsQuery{
		Intent:        models.IntentNeedContext,
		Visualization: visMatch.Visualization,
		Timeframe:     models.DefaultTimeframe,
		Confidence:    models.ConfidenceNeedContext,
		Suggestions:   []string{suggestion},
	}
	applyUnsupported(&result, visMatch)
	return result
}

func applyUnsupported(q *models.AnalyticsQuery, visMatch vischart.Match) {
	if visMatch.Unsupported {
		q.Visualization = models.VisualizationBar
		q.IsUnsupportedVisualization = true
		q.RequestedVisualization = visMatch.Label
	}
}

var timeframePatterns = []struct {
	re        *regexp.Regexp
	timeframe models.Timeframe
}{
	{regexp.MustCompile(`(last|past)\s+30\s+days|(last|past)\s+month`), models.TimeframeLast30Days},
	{regexp.MustCompile(`(last|past)\s+(3|three)\s+months|(last|past)\s+quarter`), models.TimeframeLast3Months},
	{regexp.MustCompile(`(last|past)\s+(6|six)\s+months|half\s+year`), models.TimeframeLast6Months},
	{regexp.MustCompile(`this\s+year|year\s+to\s+date|\bytd\b`), models.TimeframeThisYear},
	{regexp.MustCompile(`(last|past)\s+(12|twelve)\s+months|(last|past)\s+year`), models.TimeframeLast12Months},
}

func detectTimeframe(lowered string) models.Timeframe {
	for _, p := range timeframePatterns {
		if p.re.MatchString(lowered) {
			return p.timeframe
		}
	}
	return models.DefaultTimeframe
}
