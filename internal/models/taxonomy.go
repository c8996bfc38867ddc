// internal/models/taxonomy.go
package models

// Intent classifies what the user wants done with a query.
type Intent string

const (
	IntentShowChart           Intent = "show_chart"
	IntentShowTrend           Intent = "show_trend"
	IntentShowInsight         Intent = "show_insight"
	IntentCompare             Intent = "compare"
	IntentChangeVisualization Intent = "change_visualization"
	IntentNeedContext         Intent = "need_context"
	IntentUnknown             Intent = "unknown"
)

// Entity is a top-level business object category the user can ask about.
type Entity string

const (
	EntityCompanies     Entity = "companies"
	EntityInvoices      Entity = "invoices"
	EntityLeads         Entity = "leads"
	EntityOpportunities Entity = "opportunities"
	EntityOrders        Entity = "orders"
	EntityPayments      Entity = "payments"
	EntityUsers         Entity = "users"
	EntityProviderSales Entity = "provider_sales"
)

// AllEntities lists every entity in stable display order.
var AllEntities = []Entity{
	EntityCompanies,
	EntityInvoices,
	EntityLeads,
	EntityOpportunities,
	EntityOrders,
	EntityPayments,
	EntityUsers,
	EntityProviderSales,
}

// Valid reports whether e is a member of the closed entity set.
func (e Entity) Valid() bool {
	for _, known := range AllEntities {
		if e == known {
			return true
		}
	}
	return false
}

// Metric is a named measurement scoped to a single entity.
type Metric string

const (
	MetricNewCompanies       Metric = "new_companies"
	MetricTotalCompanies     Metric = "total_companies"
	MetricCompaniesByIndustry Metric = "companies_by_industry"

	MetricNewInvoices      Metric = "new_invoices"
	MetricInvoicesByStatus Metric = "invoices_by_status"
	MetricInvoiceRevenue   Metric = "invoice_revenue"

	MetricNewLeads       Metric = "new_leads"
	MetricLeadsBySource  Metric = "leads_by_source"
	MetricConvertedLeads Metric = "converted_leads"

	MetricNewOpportunities      Metric = "new_opportunities"
	MetricOpportunitiesByStatus Metric = "opportunities_by_status"
	MetricWonOpportunities      Metric = "won_opportunities"

	MetricNewOrders          Metric = "new_orders"
	MetricOrdersByStatus     Metric = "orders_by_status"
	MetricSubscriptionOrders Metric = "subscription_orders"

	MetricPaymentsReceived Metric = "payments_received"
	MetricPaymentVolume    Metric = "payment_volume"
	MetricFailedPayments   Metric = "failed_payments"

	MetricNewUsers    Metric = "new_users"
	MetricActiveUsers Metric = "active_users"

	MetricCommissionTickets           Metric = "commission_tickets"
	MetricCommissionTicketsByProvider Metric = "commission_tickets_by_provider"
	MetricProviderRevenue             Metric = "provider_revenue"
)

// Visualization is one of the three renderable chart forms.
type Visualization string

const (
	VisualizationBar     Visualization = "bar"
	VisualizationLine    Visualization = "line"
	VisualizationInsight Visualization = "insight"
)

// Valid reports whether v is one of the three supported kinds.
func (v Visualization) Valid() bool {
	switch v {
	case VisualizationBar, VisualizationLine, VisualizationInsight:
		return true
	}
	return false
}

// Timeframe is a fixed range token applied to a resolved chart.
type Timeframe string

const (
	TimeframeLast30Days   Timeframe = "last_30_days"
	TimeframeLast3Months  Timeframe = "last_3_months"
	TimeframeLast6Months  Timeframe = "last_6_months"
	TimeframeLast12Months Timeframe = "last_12_months"
	TimeframeThisYear     Timeframe = "this_year"
)

// DefaultTimeframe is applied when a query carries no range wording.
const DefaultTimeframe = TimeframeLast12Months

// Source tags which layer produced a resolution, for transparency display.
type Source string

const (
	SourceLLM     Source = "llm"
	SourcePattern Source = "pattern"
	SourceCache   Source = "cache"
)
