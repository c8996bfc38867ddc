// internal/analytics/resolver/parser.go
package resolver

import (
	"strings"

	"analytics-dashboard/internal/analytics/catalog"
	"analytics-dashboard/internal/analytics/vischart"
	"analytics-dashboard/internal/models"
)

// parsedReply is the structured shape recovered from a free-text model reply.
type parsedReply struct {
	entity        models.Entity
	metric        models.Metric
	visualization models.Visualization
	contextual    bool
}

// Entity keywords are checked in this fixed priority order and the first
// match wins: companies before users, users before provider/commission, and
// so on. A reply mentioning several entities resolves to the earliest listed.
// The order is contractual; do not reorder for specificity.
var entityKeywords = []struct {
	keywords []string
	entity   models.Entity
}{
	{[]string{"companies", "company"}, models.EntityCompanies},
	{[]string{"users", "user"}, models.EntityUsers},
	{[]string{"provider", "commission"}, models.EntityProviderSales},
	{[]string{"opportunities", "opportunity"}, models.EntityOpportunities},
	{[]string{"orders", "subscription"}, models.EntityOrders},
	{[]string{"invoice"}, models.EntityInvoices},
}

var contextualPhrases = []string{"make it", "change to", "show as"}

// parseReply recovers an entity, metric and visualization from a model reply
// using a lighter version of the classifier's detection. Either field may
// come back empty, in which case the caller falls back to the classifier.
func parseReply(reply string, convCtx *models.Context) parsedReply {
	lowered := strings.ToLower(reply)
	parsed := parsedReply{visualization: models.VisualizationBar}

	for _, ek := range entityKeywords {
		for _, kw := range ek.keywords {
			if strings.Contains(lowered, kw) {
				parsed.entity = ek.entity
				break
			}
		}
		if parsed.entity != "" {
			break
		}
	}

	if parsed.entity != "" {
		parsed.metric, _ = catalog.DefaultMetricFor(parsed.entity)
	}

	// Secondary phrase refinement for the two grouped metrics.
	switch parsed.entity {
	case models.EntityProviderSales:
		if strings.Contains(lowered, "by provider") {
			parsed.metric = models.MetricCommissionTicketsByProvider
		}
	case models.EntityOpportunities:
		if strings.Contains(lowered, "by status") {
			parsed.metric = models.MetricOpportunitiesByStatus
		}
	}

	parsed.visualization = vischart.Normalize(lowered).Visualization

	if convCtx != nil && convCtx.Entity != "" {
		for _, phrase := range contextualPhrases {
			if strings.Contains(lowered, phrase) {
				parsed.entity = convCtx.Entity
				parsed.metric = convCtx.Metric
				parsed.contextual = true
				break
			}
		}
	}

	return parsed
}
