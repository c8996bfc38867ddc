// internal/api/respond.go
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"analytics-dashboard/internal/analytics/suggest"
	"analytics-dashboard/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// composeReply turns a resolution into the assistant's chat text. Charts get
// a short confirmation; everything below the chart threshold gets guidance
// from the suggestion engine instead.
func composeReply(query string, res *models.Resolution) string {
	q := res.Query

	if res.Title != "" {
		var b strings.Builder
		switch q.Intent {
		case models.IntentChangeVisualization:
			b.WriteString("Switched to a " + string(q.Visualization) + " view of " + res.Title + ".")
		case models.IntentShowInsight:
			b.WriteString("Here's a summary of " + res.Title + ".")
		default:
			b.WriteString("Here's " + res.Title + ".")
		}
		if q.IsUnsupportedVisualization && q.RequestedVisualization != "" {
			b.WriteString(" A " + q.RequestedVisualization + " isn't supported, so I used a bar chart instead.")
		}
		if !q.IsValidCombination {
			b.WriteString(" Note: this metric isn't a standard view for " + string(q.Entity) + ".")
		}
		appendDisclaimer(&b, q.Confidence)
		return b.String()
	}

	guidance := suggest.Suggest(query, q.Entity, q.Metric, q.Confidence)

	var b strings.Builder
	if len(guidance.Suggestions) > 0 {
		b.WriteString(guidance.Suggestions[0])
	}
	switch guidance.Category {
	case suggest.CategoryPartialEntityMatch:
		if len(guidance.Examples) > 0 {
			b.WriteString(" You can try: " + strings.Join(guidance.Examples, "; ") + ".")
		}
	case suggest.CategoryPartialMetricMatch:
		if len(guidance.Examples) > 0 {
			b.WriteString(" For example: " + guidance.Examples[0])
		}
	default:
		if len(guidance.Examples) > 0 {
			b.WriteString(" Some things you can ask:")
			for _, ex := range guidance.Examples {
				b.WriteString("\n- " + ex)
			}
		}
	}
	appendDisclaimer(&b, q.Confidence)
	return b.String()
}

// Disclaimer applies only in the uncertain band: above zero, below the
// fallback floor.
func appendDisclaimer(b *strings.Builder, confidence float64) {
	if confidence > 0 && confidence < models.ConfidenceFallbackFloor {
		b.WriteString(" (I'm " + suggest.ConfidenceDisclaimer(confidence) + " about this interpretation.)")
	}
}
