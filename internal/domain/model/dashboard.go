//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// DashboardOverview is the headline aggregate returned by GET /dashboard/overview.
type DashboardOverview struct {
	TotalCustomers    int     `json:"totalCustomers"`
	TotalProducts     int     `json:"totalProducts"`
	TotalOrders       int     `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	RecentOrdersCount int     `json:"recentOrdersCount"`
	RecentRevenue     float64 `json:"recentRevenue"`
}

// averageOrderValueBenchmark separates "Above avg" from "Below avg" on the overview cards.
const averageOrderValueBenchmark = 50

// ConversionRate returns customers per order as a percentage, guarding against zero orders.
func (o DashboardOverview) ConversionRate() float64 {
	orders := o.TotalOrders
	if orders < 1 {
		orders = 1
	}
	return float64(o.TotalCustomers) / float64(orders) * 100
}

// AboveAverageOrderValue reports whether the average order value beats the benchmark.
func (o DashboardOverview) AboveAverageOrderValue() bool {
	return o.AverageOrderValue > averageOrderValueBenchmark
}

// ChartPoint is a single bucket of the orders/revenue time series.
type ChartPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// OrdersByDate wraps the series returned by GET /dashboard/orders-by-date.
type OrdersByDate struct {
	Data []ChartPoint `json:"data"`
}

// Totals sums revenue and orders across the series.
func (o OrdersByDate) Totals() (revenue float64, orders int) {
	for _, p := range o.Data {
		revenue += p.Revenue
		orders += p.Orders
	}
	return revenue, orders
}

// ChartPeriod is a selectable window for the revenue chart.
type ChartPeriod string

const (
	ChartPeriod7d  ChartPeriod = "7d"
	ChartPeriod30d ChartPeriod = "30d"
	ChartPeriod90d ChartPeriod = "90d"
)

// ParseChartPeriod normalizes a period string, defaulting to 30d.
func ParseChartPeriod(v string) ChartPeriod {
	switch ChartPeriod(v) {
	case ChartPeriod7d, ChartPeriod90d:
		return ChartPeriod(v)
	default:
		return ChartPeriod30d
	}
}

// OrdersByDateParams are the query parameters for GET /dashboard/orders-by-date.
type OrdersByDateParams struct {
	StartDate time.Time
	EndDate   time.Time
	GroupBy   string
}

// ParamsFor returns the query window for the period ending at now.
// 90-day windows group by week; shorter windows group by day.
func (p ChartPeriod) ParamsFor(now time.Time) OrdersByDateParams {
	days := 30
	groupBy := "day"
	switch p {
	case ChartPeriod7d:
		days = 7
	case ChartPeriod90d:
		days = 90
		groupBy = "week"
	}
	return OrdersByDateParams{
		StartDate: now.AddDate(0, 0, -days),
		EndDate:   now,
		GroupBy:   groupBy,
	}
}

// TopCustomer is a row of GET /dashboard/top-customers.
type TopCustomer struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Email             string  `json:"email,omitempty"`
	TotalSpent        float64 `json:"totalSpent"`
	OrdersCount       int     `json:"ordersCount"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	AcceptsMarketing  bool    `json:"acceptsMarketing"`
}

// TopCustomers wraps the list returned by GET /dashboard/top-customers.
type TopCustomers struct {
	Customers []TopCustomer `json:"customers"`
}

// ProductPerformance is a row of GET /dashboard/product-performance.
type ProductPerformance struct {
	ProductID            string  `json:"productId"`
	Title                string  `json:"title"`
	Vendor               string  `json:"vendor,omitempty"`
	TotalRevenue         float64 `json:"totalRevenue"`
	TotalQuantity        int     `json:"totalQuantity"`
	TotalOrders          int     `json:"totalOrders"`
	AverageOrderQuantity float64 `json:"averageOrderQuantity"`
}

// ProductPerformanceList wraps the list returned by GET /dashboard/product-performance.
type ProductPerformanceList struct {
	Products []ProductPerformance `json:"products"`
}

// RevenueTrends wraps the series returned by GET /dashboard/revenue-trends.
type RevenueTrends struct {
	Data []ChartPoint `json:"data"`
}

// CustomerSegments buckets customers by order frequency.
type CustomerSegments struct {
	New     int `json:"new"`
	OneTime int `json:"oneTime"`
	Repeat  int `json:"repeat"`
	Loyal   int `json:"loyal"`
}

// CustomerAnalytics is returned by GET /dashboard/customer-analytics.
type CustomerAnalytics struct {
	TotalCustomers         int               `json:"totalCustomers"`
	NewCustomersThisMonth  int               `json:"newCustomersThisMonth"`
	CustomersWithOrders    int               `json:"customersWithOrders"`
	CustomerConversionRate float64           `json:"customerConversionRate"`
	AvgOrdersPerCustomer   float64           `json:"avgOrdersPerCustomer"`
	Segments               *CustomerSegments `json:"segments,omitempty"`
}

// ListParams carries optional paging for dashboard list endpoints.
type ListParams struct {
	Limit int
	Page  int
}
