// internal/analytics/catalog/catalog.go

// Package catalog holds the closed set of valid (entity, metric) pairs, the
// per-metric display titles and the mock data generators backing chart
// previews. Pure lookup tables; a real metrics store would sit behind the
// same surface.
package catalog

import "analytics-dashboard/internal/models"

var metricsByEntity = map[models.Entity][]models.Metric{
	models.EntityCompanies: {
		models.MetricNewCompanies,
		models.MetricTotalCompanies,
		models.MetricCompaniesByIndustry,
	},
	models.EntityInvoices: {
		models.MetricNewInvoices,
		models.MetricInvoicesByStatus,
		models.MetricInvoiceRevenue,
	},
	models.EntityLeads: {
		models.MetricNewLeads,
		models.MetricLeadsBySource,
		models.MetricConvertedLeads,
	},
	models.EntityOpportunities: {
		models.MetricNewOpportunities,
		models.MetricOpportunitiesByStatus,
		models.MetricWonOpportunities,
	},
	models.EntityOrders: {
		models.MetricNewOrders,
		models.MetricOrdersByStatus,
		models.MetricSubscriptionOrders,
	},
	models.EntityPayments: {
		models.MetricPaymentsReceived,
		models.MetricPaymentVolume,
		models.MetricFailedPayments,
	},
	models.EntityUsers: {
		models.MetricNewUsers,
		models.MetricActiveUsers,
	},
	models.EntityProviderSales: {
		models.MetricCommissionTickets,
		models.MetricCommissionTicketsByProvider,
		models.MetricProviderRevenue,
	},
}

var titles = map[models.Metric]string{
	models.MetricNewCompanies:       "New Companies",
	models.MetricTotalCompanies:     "Total Companies",
	models.MetricCompaniesByIndustry: "Companies by Industry",

	models.MetricNewInvoices:      "New Invoices",
	models.MetricInvoicesByStatus: "Invoices by Status",
	models.MetricInvoiceRevenue:   "Invoice Revenue",

	models.MetricNewLeads:       "New Leads",
	models.MetricLeadsBySource:  "Leads by Source",
	models.MetricConvertedLeads: "Converted Leads",

	models.MetricNewOpportunities:      "New Opportunities",
	models.MetricOpportunitiesByStatus: "Opportunities by Status",
	models.MetricWonOpportunities:      "Won Opportunities",

	models.MetricNewOrders:          "New Orders",
	models.MetricOrdersByStatus:     "Orders by Status",
	models.MetricSubscriptionOrders: "Subscription Orders",

	models.MetricPaymentsReceived: "Payments Received",
	models.MetricPaymentVolume:    "Payment Volume",
	models.MetricFailedPayments:   "Failed Payments",

	models.MetricNewUsers:    "New Users",
	models.MetricActiveUsers: "Active Users",

	models.MetricCommissionTickets:           "Commission Tickets",
	models.MetricCommissionTicketsByProvider: "Commission Tickets by Provider",
	models.MetricProviderRevenue:             "Provider Revenue",
}

// MetricsFor returns the valid metrics for an entity in stable order. Unknown
// entities return nil.
func MetricsFor(entity models.Entity) []models.Metric {
	metrics, ok := metricsByEntity[entity]
	if !ok {
		return nil
	}
	out := make([]models.Metric, len(metrics))
	copy(out, metrics)
	return out
}

// TitleFor returns the human-readable title for a metric, falling back to the
// raw token for anything outside the catalog.
func TitleFor(metric models.Metric) string {
	if title, ok := titles[metric]; ok {
		return title
	}
	return string(metric)
}

// IsValidCombination reports whether metric belongs to entity's catalog list.
func IsValidCombination(entity models.Entity, metric models.Metric) bool {
	for _, m := range metricsByEntity[entity] {
		if m == metric {
			return true
		}
	}
	return false
}

// EntityFor returns the entity owning a metric, or false when the metric is
// not in the catalog.
func EntityFor(metric models.Metric) (models.Entity, bool) {
	for _, entity := range models.AllEntities {
		for _, m := range metricsByEntity[entity] {
			if m == metric {
				return entity, true
			}
		}
	}
	return "", false
}

// DefaultMetricFor returns the metric a bare entity mention resolves to.
func DefaultMetricFor(entity models.Entity) (models.Metric, bool) {
	metrics, ok := metricsByEntity[entity]
	if !ok || len(metrics) == 0 {
		return "", false
	}
	return metrics[0], true
}
