package httpx

import (
	"context"
	"net/http"

	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	"github.com/shopdash/shopdash-ui/internal/domain/model"
	"github.com/shopdash/shopdash-ui/internal/service"
)

// catalogPage describes one of the synced-catalog list pages.
type catalogPage[T any] struct {
	meta  PageMeta
	label string
	fetch func(*shopapi.Client) func(context.Context) ([]T, error)
}

func renderCatalog[T any](h *UIHandlers, w http.ResponseWriter, r *http.Request, p catalogPage[T]) {
	h.Page(w, r, PageSpec{
		Meta: p.meta,
		Fetch: func(ctx context.Context, api *shopapi.Client, data map[string]any) error {
			res := service.NewResource[[]T](p.label).Load(ctx, p.fetch(api))
			data["Items"] = res.Data
			data["Count"] = len(res.Data)
			if msg := res.ErrorMessage(); msg != "" {
				data["Error"] = true
				data["ErrorMessage"] = msg
			}
			return nil
		},
	})
}

// Customers lists the tenant's synced customers.
// GET /dashboard/customers.
func (h *UIHandlers) Customers(w http.ResponseWriter, r *http.Request) {
	renderCatalog(h, w, r, catalogPage[model.Customer]{
		meta:  PageMeta{Title: "Customers – " + appTitle, PageTitle: "Customers", CurrentPage: PageCustomers},
		label: "customers",
		fetch: func(api *shopapi.Client) func(context.Context) ([]model.Customer, error) { return api.Customers },
	})
}

// Products lists the tenant's synced products.
// GET /dashboard/products.
func (h *UIHandlers) Products(w http.ResponseWriter, r *http.Request) {
	renderCatalog(h, w, r, catalogPage[model.Product]{
		meta:  PageMeta{Title: "Products – " + appTitle, PageTitle: "Products", CurrentPage: PageProducts},
		label: "products",
		fetch: func(api *shopapi.Client) func(context.Context) ([]model.Product, error) { return api.Products },
	})
}

// Orders lists the tenant's synced orders.
// GET /dashboard/orders.
func (h *UIHandlers) Orders(w http.ResponseWriter, r *http.Request) {
	renderCatalog(h, w, r, catalogPage[model.Order]{
		meta:  PageMeta{Title: "Orders – " + appTitle, PageTitle: "Orders", CurrentPage: PageOrders},
		label: "orders",
		fetch: func(api *shopapi.Client) func(context.Context) ([]model.Order, error) { return api.Orders },
	})
}
