package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseChartPeriod(t *testing.T) {
	assert.Equal(t, ChartPeriod7d, ParseChartPeriod("7d"))
	assert.Equal(t, ChartPeriod90d, ParseChartPeriod("90d"))
	assert.Equal(t, ChartPeriod30d, ParseChartPeriod("30d"))
	assert.Equal(t, ChartPeriod30d, ParseChartPeriod(""))
	assert.Equal(t, ChartPeriod30d, ParseChartPeriod("1y"))
}

func TestChartPeriod_ParamsFor(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		period  ChartPeriod
		start   time.Time
		groupBy string
	}{
		{ChartPeriod7d, time.Date(2024, 3, 24, 12, 0, 0, 0, time.UTC), "day"},
		{ChartPeriod30d, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), "day"},
		{ChartPeriod90d, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "week"},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			p := tt.period.ParamsFor(now)
			assert.Equal(t, tt.start, p.StartDate)
			assert.Equal(t, now, p.EndDate)
			assert.Equal(t, tt.groupBy, p.GroupBy)
		})
	}
}

func TestOrdersByDate_Totals(t *testing.T) {
	series := OrdersByDate{Data: []ChartPoint{
		{Date: "2024-03-01", Orders: 2, Revenue: 40.5},
		{Date: "2024-03-02", Orders: 3, Revenue: 59.5},
	}}
	revenue, orders := series.Totals()
	assert.InDelta(t, 100.0, revenue, 0.0001)
	assert.Equal(t, 5, orders)
}

func TestDashboardOverview_Derived(t *testing.T) {
	o := DashboardOverview{TotalCustomers: 25, TotalOrders: 100, AverageOrderValue: 62}
	assert.InDelta(t, 25.0, o.ConversionRate(), 0.0001)
	assert.True(t, o.AboveAverageOrderValue())

	empty := DashboardOverview{TotalCustomers: 3}
	assert.InDelta(t, 300.0, empty.ConversionRate(), 0.0001)
	assert.False(t, empty.AboveAverageOrderValue())
}
