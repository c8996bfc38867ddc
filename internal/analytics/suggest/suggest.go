// internal/analytics/suggest/suggest.go

// Package suggest builds the follow-up guidance shown when a query could not
// be resolved into a confident chart: ranked suggestions, a coarse failure
// category and example queries the user can copy. Pure and deterministic.
package suggest

import (
	"fmt"
	"strings"

	"analytics-dashboard/internal/analytics/catalog"
	"analytics-dashboard/internal/models"
)

// Category is the coarse failure class a suggestion set belongs to.
type Category string

const (
	CategoryPartialEntityMatch  Category = "partial_entity_match"
	CategoryPartialMetricMatch  Category = "partial_metric_match"
	CategoryGeneralGuidance     Category = "general_guidance"
	CategoryClarificationNeeded Category = "clarification_needed"
)

// Guidance is a ranked suggestion set for one unresolved query.
type Guidance struct {
	Suggestions []string `json:"suggestions"`
	Category    Category `json:"category"`
	Examples    []string `json:"examples"`
}

var cannedExamples = []string{
	"Show me new companies this year",
	"Commission tickets by provider",
	"New users as a line chart",
	"Give me an invoice revenue summary",
}

// Tokens that read like a metric even when no entity was recognized.
var metricLikeTokens = []string{
	"revenue", "sales", "tickets", "commission", "signups",
	"conversions", "volume", "count", "growth",
}

type keywordHint struct {
	keywords []string
	hint     string
}

var keywordHints = []keywordHint{
	{
		keywords: []string{"revenue", "sales"},
		hint:     "For revenue figures, try \"invoice revenue\" or \"provider revenue\".",
	},
	{
		keywords: []string{"users", "customers"},
		hint:     "For people metrics, try \"new users\" or \"active users\".",
	},
	{
		keywords: []string{"commission", "tickets"},
		hint:     "For commissions, try \"commission tickets\" or \"commission tickets by provider\".",
	},
}

// Suggest builds guidance for a query that resolved only partially (entity or
// metric missing) or not at all. Category selection order matches the
// resolution pipeline: partial entity, partial metric, low confidence,
// then a generic clarification.
func Suggest(query string, entity models.Entity, metric models.Metric, confidence float64) Guidance {
	lowered := strings.ToLower(query)

	if entity != "" && metric == "" {
		return partialEntityGuidance(entity)
	}

	if entity == "" && hasMetricLikeToken(lowered) {
		return Guidance{
			Category: CategoryPartialMetricMatch,
			Suggestions: []string{
				"I recognized a measurement but not what it belongs to. Name the business object too.",
			},
			Examples: []string{"Show me invoice revenue for the last 6 months"},
		}
	}

	if confidence < models.ConfidenceNeedContext {
		return generalGuidance(lowered)
	}

	return Guidance{
		Category: CategoryClarificationNeeded,
		Suggestions: []string{
			"I'm not sure which chart you mean. Could you be more specific?",
		},
		Examples: []string{
			"Show me new companies as a bar chart",
			"Commission tickets by provider over time",
		},
	}
}

func partialEntityGuidance(entity models.Entity) Guidance {
	metrics := catalog.MetricsFor(entity)
	if len(metrics) > 4 {
		metrics = metrics[:4]
	}
	examples := make([]string, 0, len(metrics))
	for _, m := range metrics {
		examples = append(examples, fmt.Sprintf("Show me %s", strings.ToLower(catalog.TitleFor(m))))
	}
	return Guidance{
		Category: CategoryPartialEntityMatch,
		Suggestions: []string{
			fmt.Sprintf("I can chart %s, but I need to know which measurement you want.", entity),
		},
		Examples: examples,
	}
}

func generalGuidance(lowered string) Guidance {
	var hints []string
	for _, kh := range keywordHints {
		for _, kw := range kh.keywords {
			if strings.Contains(lowered, kw) {
				hints = append(hints, kh.hint)
				break
			}
		}
	}
	if len(hints) == 0 {
		hints = []string{"I didn't recognize that request. Ask about companies, users, invoices, orders, payments, leads, opportunities or provider sales."}
	}
	examples := make([]string, len(cannedExamples))
	copy(examples, cannedExamples)
	return Guidance{
		Category:    CategoryGeneralGuidance,
		Suggestions: hints,
		Examples:    examples,
	}
}

func hasMetricLikeToken(lowered string) bool {
	for _, token := range metricLikeTokens {
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}

// ConfidenceDisclaimer maps a confidence score onto the phrase appended to a
// composed answer. The response composer only shows it when the score is
// below 0.7 and above zero.
func ConfidenceDisclaimer(confidence float64) string {
	switch {
	case confidence >= 0.9:
		return "highly confident"
	case confidence >= 0.75:
		return "moderately confident"
	case confidence >= 0.6:
		return "somewhat confident"
	default:
		return "less confident"
	}
}
