// internal/analytics/classifier/rules.go
package classifier

import (
	"regexp"

	"analytics-dashboard/internal/models"
)

// rule is one entry in the ranked entity/metric pattern table.
type rule struct {
	re         *regexp.Regexp
	entity     models.Entity
	metric     models.Metric
	confidence float64
}

// The table is ordered most-specific-first for readability, but every rule is
// evaluated on every query: the highest declared confidence wins and ties
// keep the earlier entry. Confidences are fixed contract values.
var rules = []rule{
	// provider sales
	{re: re(`(commission\s+)?tickets\s+(split\s+|broken\s+down\s+|grouped\s+)?by\s+provider|provider\s+breakdown\s+of\s+(commission\s+)?tickets`),
		entity: models.EntityProviderSales, metric: models.MetricCommissionTicketsByProvider, confidence: 0.95},
	{re: re(`provider\s+(sales|revenue)|sales\s+by\s+provider`),
		entity: models.EntityProviderSales, metric: models.MetricProviderRevenue, confidence: 0.9},
	{re: re(`commission\s+tickets?|\bcommissions?\b`),
		entity: models.EntityProviderSales, metric: models.MetricCommissionTickets, confidence: 0.85},
	{re: re(`\btickets?\b`),
		entity: models.EntityProviderSales, metric: models.MetricCommissionTickets, confidence: 0.7},

	// companies
	{re: re(`new\s+companies|companies\s+(added|created|signed\s+up)`),
		entity: models.EntityCompanies, metric: models.MetricNewCompanies, confidence: 0.9},
	{re: re(`companies\s+by\s+industry|industry\s+breakdown`),
		entity: models.EntityCompanies, metric: models.MetricCompaniesByIndustry, confidence: 0.9},
	{re: re(`total\s+companies|company\s+count|how\s+many\s+companies`),
		entity: models.EntityCompanies, metric: models.MetricTotalCompanies, confidence: 0.85},
	{re: re(`\bcompan(y|ies)\b`),
		entity: models.EntityCompanies, metric: models.MetricNewCompanies, confidence: 0.7},

	// users
	{re: re(`new\s+users|user\s+signups?|\bsignups?\b`),
		entity: models.EntityUsers, metric: models.MetricNewUsers, confidence: 0.9},
	{re: re(`active\s+users`),
		entity: models.EntityUsers, metric: models.MetricActiveUsers, confidence: 0.9},
	{re: re(`\busers?\b|\bcustomers?\b`),
		entity: models.EntityUsers, metric: models.MetricNewUsers, confidence: 0.7},

	// leads
	{re: re(`new\s+leads`),
		entity: models.EntityLeads, metric: models.MetricNewLeads, confidence: 0.9},
	{re: re(`leads\s+by\s+source|lead\s+sources?`),
		entity: models.EntityLeads, metric: models.MetricLeadsBySource, confidence: 0.9},
	{re: re(`converted\s+leads|lead\s+conversions?`),
		entity: models.EntityLeads, metric: models.MetricConvertedLeads, confidence: 0.9},
	{re: re(`\bleads?\b`),
		entity: models.EntityLeads, metric: models.MetricNewLeads, confidence: 0.7},

	// opportunities
	{re: re(`opportunit(y|ies)\s+by\s+(status|stage)`),
		entity: models.EntityOpportunities, metric: models.MetricOpportunitiesByStatus, confidence: 0.9},
	{re: re(`won\s+opportunit(y|ies)|closed\s+won`),
		entity: models.EntityOpportunities, metric: models.MetricWonOpportunities, confidence: 0.9},
	{re: re(`\bopportunit(y|ies)\b|\bpipeline\b`),
		entity: models.EntityOpportunities, metric: models.MetricNewOpportunities, confidence: 0.7},

	// orders
	{re: re(`orders\s+by\s+status`),
		entity: models.EntityOrders, metric: models.MetricOrdersByStatus, confidence: 0.9},
	{re: re(`new\s+orders`),
		entity: models.EntityOrders, metric: models.MetricNewOrders, confidence: 0.9},
	{re: re(`subscription\s+orders|\bsubscriptions?\b`),
		entity: models.EntityOrders, metric: models.MetricSubscriptionOrders, confidence: 0.85},
	{re: re(`\borders?\b`),
		entity: models.EntityOrders, metric: models.MetricNewOrders, confidence: 0.7},

	// invoices
	{re: re(`invoices\s+by\s+status`),
		entity: models.EntityInvoices, metric: models.MetricInvoicesByStatus, confidence: 0.9},
	{re: re(`new\s+invoices`),
		entity: models.EntityInvoices, metric: models.MetricNewInvoices, confidence: 0.9},
	{re: re(`invoice\s+revenue|\brevenue\b`),
		entity: models.EntityInvoices, metric: models.MetricInvoiceRevenue, confidence: 0.85},
	{re: re(`\binvoices?\b|\bbilling\b`),
		entity: models.EntityInvoices, metric: models.MetricNewInvoices, confidence: 0.7},

	// payments
	{re: re(`payments\s+received`),
		entity: models.EntityPayments, metric: models.MetricPaymentsReceived, confidence: 0.9},
	{re: re(`failed\s+payments`),
		entity: models.EntityPayments, metric: models.MetricFailedPayments, confidence: 0.9},
	{re: re(`payment\s+volume`),
		entity: models.EntityPayments, metric: models.MetricPaymentVolume, confidence: 0.85},
	{re: re(`\bpayments?\b`),
		entity: models.EntityPayments, metric: models.MetricPaymentsReceived, confidence: 0.7},
}

func re(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}

// bestMatch evaluates the full rule table against an already-lowercased
// query and returns the rule with the highest declared confidence, or nil if
// nothing matched. Strictly-greater comparison keeps the first rule on ties.
func bestMatch(lowered string) *rule {
	var best *rule
	for i := range rules {
		r := &rules[i]
		if !r.re.MatchString(lowered) {
			continue
		}
		if best == nil || r.confidence > best.confidence {
			best = r
		}
	}
	return best
}
