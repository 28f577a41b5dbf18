//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
)

// Customer is an ingested Shopify customer.
type Customer struct {
	ID               string    `json:"id"`
	ShopifyID        string    `json:"shopifyId"`
	Email            string    `json:"email,omitempty"`
	FirstName        string    `json:"firstName,omitempty"`
	LastName         string    `json:"lastName,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	TotalSpent       float64   `json:"totalSpent"`
	OrdersCount      int       `json:"ordersCount"`
	AcceptsMarketing bool      `json:"acceptsMarketing"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// DisplayName joins first and last name, falling back to the email.
func (c Customer) DisplayName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return c.Email
	}
	return name
}

// Product is an ingested Shopify product.
type Product struct {
	ID             string    `json:"id"`
	ShopifyID      string    `json:"shopifyId"`
	Title          string    `json:"title"`
	Handle         string    `json:"handle,omitempty"`
	Vendor         string    `json:"vendor,omitempty"`
	ProductType    string    `json:"productType,omitempty"`
	Price          *float64  `json:"price,omitempty"`
	CompareAtPrice *float64  `json:"compareAtPrice,omitempty"`
	Status         string    `json:"status,omitempty"`
	Inventory      int       `json:"inventory"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// OrderItem is a line of an order.
type OrderItem struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	ProductID string    `json:"productId,omitempty"`
	Title     string    `json:"title"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
	Product   *Product  `json:"product,omitempty"`
}

// Order is an ingested Shopify order.
type Order struct {
	ID                string      `json:"id"`
	ShopifyID         string      `json:"shopifyId"`
	CustomerID        string      `json:"customerId,omitempty"`
	OrderNumber       string      `json:"orderNumber,omitempty"`
	TotalPrice        float64     `json:"totalPrice"`
	SubtotalPrice     *float64    `json:"subtotalPrice,omitempty"`
	TotalTax          *float64    `json:"totalTax,omitempty"`
	TotalDiscounts    *float64    `json:"totalDiscounts,omitempty"`
	Currency          string      `json:"currency"`
	FinancialStatus   string      `json:"financialStatus,omitempty"`
	FulfillmentStatus string      `json:"fulfillmentStatus,omitempty"`
	OrderDate         time.Time   `json:"orderDate"`
	CreatedAt         time.Time   `json:"createdAt"`
	UpdatedAt         time.Time   `json:"updatedAt"`
	Customer          *Customer   `json:"customer,omitempty"`
	OrderItems        []OrderItem `json:"orderItems,omitempty"`
}
