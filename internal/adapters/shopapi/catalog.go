package shopapi

import (
	"context"

	"github.com/shopdash/shopdash-ui/internal/domain/model"
)

// Customers lists the tenant's ingested customers.
func (c *Client) Customers(ctx context.Context) ([]model.Customer, error) {
	var out []model.Customer
	if err := c.Get(ctx, "/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Products lists the tenant's ingested products.
func (c *Client) Products(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.Get(ctx, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Orders lists the tenant's ingested orders.
func (c *Client) Orders(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	if err := c.Get(ctx, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
