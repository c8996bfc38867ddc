// internal/analytics/catalog/sampledata.go
package catalog

import (
	"math"

	"analytics-dashboard/internal/models"
)

// Per-metric generator parameters. The data is illustrative, not real: a
// deterministic pseudo-seasonal curve so previews look plausible and tests
// stay stable.
type seriesProfile struct {
	base      float64
	amplitude float64
	growth    float64
}

var profiles = map[models.Metric]seriesProfile{
	models.MetricNewCompanies:       {base: 42, amplitude: 9, growth: 1.8},
	models.MetricTotalCompanies:     {base: 830, amplitude: 12, growth: 26},
	models.MetricCompaniesByIndustry: {base: 120, amplitude: 30, growth: 0},

	models.MetricNewInvoices:      {base: 310, amplitude: 45, growth: 6},
	models.MetricInvoicesByStatus: {base: 95, amplitude: 40, growth: 0},
	models.MetricInvoiceRevenue:   {base: 48200, amplitude: 5100, growth: 950},

	models.MetricNewLeads:       {base: 188, amplitude: 34, growth: 4},
	models.MetricLeadsBySource:  {base: 60, amplitude: 28, growth: 0},
	models.MetricConvertedLeads: {base: 47, amplitude: 11, growth: 1.2},

	models.MetricNewOpportunities:      {base: 73, amplitude: 16, growth: 2},
	models.MetricOpportunitiesByStatus: {base: 55, amplitude: 22, growth: 0},
	models.MetricWonOpportunities:      {base: 28, amplitude: 7, growth: 0.9},

	models.MetricNewOrders:          {base: 540, amplitude: 70, growth: 11},
	models.MetricOrdersByStatus:     {base: 180, amplitude: 65, growth: 0},
	models.MetricSubscriptionOrders: {base: 260, amplitude: 24, growth: 8},

	models.MetricPaymentsReceived: {base: 495, amplitude: 58, growth: 9},
	models.MetricPaymentVolume:    {base: 61300, amplitude: 7400, growth: 1200},
	models.MetricFailedPayments:   {base: 14, amplitude: 6, growth: -0.2},

	models.MetricNewUsers:    {base: 220, amplitude: 38, growth: 7},
	models.MetricActiveUsers: {base: 1480, amplitude: 95, growth: 31},

	models.MetricCommissionTickets:           {base: 130, amplitude: 25, growth: 3},
	models.MetricCommissionTicketsByProvider: {base: 44, amplitude: 18, growth: 0},
	models.MetricProviderRevenue:             {base: 27600, amplitude: 3300, growth: 620},
}

// Applied when a metric is outside the catalog. Deliberate leniency: mock
// previews should render rather than error.
var genericProfile = seriesProfile{base: 100, amplitude: 20, growth: 2}

var monthLabels = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

func pointCount(timeframe models.Timeframe) int {
	switch timeframe {
	case models.TimeframeLast30Days:
		return 30
	case models.TimeframeLast3Months:
		return 3
	case models.TimeframeLast6Months:
		return 6
	case models.TimeframeThisYear:
		return 12
	default:
		return 12
	}
}

// SampleDataFor produces mock chart data for a metric. Insight visualizations
// get a scalar callout; everything else gets an ordered time series.
func SampleDataFor(metric models.Metric, visualization models.Visualization, timeframe models.Timeframe) *models.ChartData {
	profile, ok := profiles[metric]
	if !ok {
		profile = genericProfile
	}

	if visualization == models.VisualizationInsight {
		return &models.ChartData{Insight: insightFor(metric, profile)}
	}

	n := pointCount(timeframe)
	series := make([]models.SeriesPoint, 0, n)
	for i := 0; i < n; i++ {
		value := profile.base + profile.growth*float64(i) +
			profile.amplitude*math.Sin(float64(i)*math.Pi/6)
		if value < 0 {
			value = 0
		}
		series = append(series, models.SeriesPoint{
			Period: monthLabels[i%len(monthLabels)],
			Value:  math.Round(value),
		})
	}
	return &models.ChartData{Series: series}
}

func insightFor(metric models.Metric, profile seriesProfile) *models.Insight {
	current := profile.base + profile.growth*11
	previous := profile.base + profile.growth*10
	change := 0.0
	if previous != 0 {
		change = math.Round((current-previous)/previous*1000) / 10
	}
	changeType := "increase"
	if change < 0 {
		changeType = "decrease"
		change = -change
	}
	return &models.Insight{
		Value:      math.Round(current),
		Label:      TitleFor(metric),
		Subtitle:   "vs previous period",
		Change:     change,
		ChangeType: changeType,
	}
}
