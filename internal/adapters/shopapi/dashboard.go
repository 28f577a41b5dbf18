package shopapi

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopdash/shopdash-ui/internal/domain/model"
)

// isoMillis matches the timestamp format browsers send for date filters.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Overview loads the headline aggregates.
func (c *Client) Overview(ctx context.Context) (model.DashboardOverview, error) {
	var out model.DashboardOverview
	if err := c.Get(ctx, "/dashboard/overview", nil, &out); err != nil {
		return model.DashboardOverview{}, err
	}
	return out, nil
}

// OrdersByDate loads the orders/revenue series for a window.
func (c *Client) OrdersByDate(ctx context.Context, p model.OrdersByDateParams) (model.OrdersByDate, error) {
	q := url.Values{}
	if !p.StartDate.IsZero() {
		q.Set("startDate", p.StartDate.UTC().Format(isoMillis))
	}
	if !p.EndDate.IsZero() {
		q.Set("endDate", p.EndDate.UTC().Format(isoMillis))
	}
	if p.GroupBy != "" {
		q.Set("groupBy", p.GroupBy)
	}

	var out model.OrdersByDate
	if err := c.Get(ctx, "/dashboard/orders-by-date", q, &out); err != nil {
		return model.OrdersByDate{}, err
	}
	return out, nil
}

// TopCustomers loads the highest-spending customers.
func (c *Client) TopCustomers(ctx context.Context, p model.ListParams) (model.TopCustomers, error) {
	var out model.TopCustomers
	if err := c.Get(ctx, "/dashboard/top-customers", listQuery(p), &out); err != nil {
		return model.TopCustomers{}, err
	}
	return out, nil
}

// ProductPerformance loads revenue and quantity per product.
func (c *Client) ProductPerformance(ctx context.Context, p model.ListParams) (model.ProductPerformanceList, error) {
	var out model.ProductPerformanceList
	if err := c.Get(ctx, "/dashboard/product-performance", listQuery(p), &out); err != nil {
		return model.ProductPerformanceList{}, err
	}
	return out, nil
}

// RevenueTrends loads the revenue series for the last months.
func (c *Client) RevenueTrends(ctx context.Context, months int) (model.RevenueTrends, error) {
	var q url.Values
	if months > 0 {
		q = url.Values{"months": {strconv.Itoa(months)}}
	}
	var out model.RevenueTrends
	if err := c.Get(ctx, "/dashboard/revenue-trends", q, &out); err != nil {
		return model.RevenueTrends{}, err
	}
	return out, nil
}

// CustomerAnalytics loads customer conversion and segment counts.
func (c *Client) CustomerAnalytics(ctx context.Context) (model.CustomerAnalytics, error) {
	var out model.CustomerAnalytics
	if err := c.Get(ctx, "/dashboard/customer-analytics", nil, &out); err != nil {
		return model.CustomerAnalytics{}, err
	}
	return out, nil
}

func listQuery(p model.ListParams) url.Values {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	return q
}
