// internal/analytics/catalog/sampledata_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"analytics-dashboard/internal/models"
)

func TestSampleDataFor_SeriesLengthByTimeframe(t *testing.T) {
	tests := []struct {
		timeframe models.Timeframe
		points    int
	}{
		{models.TimeframeLast30Days, 30},
		{models.TimeframeLast3Months, 3},
		{models.TimeframeLast6Months, 6},
		{models.TimeframeThisYear, 12},
		{models.TimeframeLast12Months, 12},
	}

	for _, tt := range tests {
		t.Run(string(tt.timeframe), func(t *testing.T) {
			data := SampleDataFor(models.MetricNewUsers, models.VisualizationBar, tt.timeframe)

			assert.Nil(t, data.Insight)
			assert.Len(t, data.Series, tt.points)
			for _, p := range data.Series {
				assert.NotEmpty(t, p.Period)
				assert.GreaterOrEqual(t, p.Value, 0.0)
			}
		})
	}
}

func TestSampleDataFor_SeriesStartsAtBase(t *testing.T) {
	// sin(0) is zero, so the first point is exactly the profile base.
	data := SampleDataFor(models.MetricNewUsers, models.VisualizationLine, models.TimeframeLast12Months)

	assert.Equal(t, "Jan", data.Series[0].Period)
	assert.Equal(t, 220.0, data.Series[0].Value)
}

func TestSampleDataFor_Insight(t *testing.T) {
	data := SampleDataFor(models.MetricActiveUsers, models.VisualizationInsight, models.TimeframeLast12Months)

	assert.Nil(t, data.Series)
	if assert.NotNil(t, data.Insight) {
		// base 1480 + growth 31 * 11
		assert.Equal(t, 1821.0, data.Insight.Value)
		assert.Equal(t, "Active Users", data.Insight.Label)
		assert.Equal(t, "vs previous period", data.Insight.Subtitle)
		assert.Equal(t, "increase", data.Insight.ChangeType)
		assert.Greater(t, data.Insight.Change, 0.0)
	}
}

func TestSampleDataFor_InsightNegativeGrowth(t *testing.T) {
	data := SampleDataFor(models.MetricFailedPayments, models.VisualizationInsight, models.TimeframeLast12Months)

	if assert.NotNil(t, data.Insight) {
		assert.Equal(t, "decrease", data.Insight.ChangeType)
		assert.Greater(t, data.Insight.Change, 0.0)
	}
}

func TestSampleDataFor_UnknownMetricUsesGenericProfile(t *testing.T) {
	data := SampleDataFor(models.Metric("mystery_metric"), models.VisualizationBar, models.TimeframeLast3Months)

	assert.Len(t, data.Series, 3)
	// generic base 100, sin(0) = 0
	assert.Equal(t, 100.0, data.Series[0].Value)
}

func TestSampleDataFor_Deterministic(t *testing.T) {
	first := SampleDataFor(models.MetricInvoiceRevenue, models.VisualizationBar, models.TimeframeLast6Months)
	second := SampleDataFor(models.MetricInvoiceRevenue, models.VisualizationBar, models.TimeframeLast6Months)
	assert.Equal(t, first, second)
}
