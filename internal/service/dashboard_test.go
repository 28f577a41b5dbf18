package service

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	"github.com/shopdash/shopdash-ui/internal/domain/model"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	mockauth "github.com/shopdash/shopdash-ui/internal/mocks/auth"
	"github.com/shopdash/shopdash-ui/internal/testutil"
)

// fakeDashboardAPI answers each widget with a scripted error or a fixed value.
type fakeDashboardAPI struct {
	mu       sync.Mutex
	errs     map[string]error
	params   model.OrdersByDateParams
	topLimit int
}

func (f *fakeDashboardAPI) errFor(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[name]
}

func (f *fakeDashboardAPI) Overview(context.Context) (model.DashboardOverview, error) {
	if err := f.errFor("overview"); err != nil {
		return model.DashboardOverview{}, err
	}
	return model.DashboardOverview{TotalCustomers: 10, TotalOrders: 20}, nil
}

func (f *fakeDashboardAPI) OrdersByDate(_ context.Context, p model.OrdersByDateParams) (model.OrdersByDate, error) {
	f.mu.Lock()
	f.params = p
	f.mu.Unlock()
	if err := f.errFor("chart"); err != nil {
		return model.OrdersByDate{}, err
	}
	return model.OrdersByDate{Data: []model.ChartPoint{{Date: "2024-01-01", Orders: 2, Revenue: 40}}}, nil
}

func (f *fakeDashboardAPI) TopCustomers(_ context.Context, p model.ListParams) (model.TopCustomers, error) {
	f.mu.Lock()
	f.topLimit = p.Limit
	f.mu.Unlock()
	if err := f.errFor("customers"); err != nil {
		return model.TopCustomers{}, err
	}
	return model.TopCustomers{Customers: []model.TopCustomer{{ID: "c1", Name: "Ada"}}}, nil
}

func (f *fakeDashboardAPI) ProductPerformance(context.Context, model.ListParams) (model.ProductPerformanceList, error) {
	if err := f.errFor("products"); err != nil {
		return model.ProductPerformanceList{}, err
	}
	return model.ProductPerformanceList{Products: []model.ProductPerformance{{ProductID: "p1"}}}, nil
}

func (f *fakeDashboardAPI) SyncStatus(context.Context) (model.SyncStatus, error) {
	if err := f.errFor("sync"); err != nil {
		return model.SyncStatus{}, err
	}
	return model.SyncStatus{}, nil
}

func TestDashboardService_LoadOverview(t *testing.T) {
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	svc := NewDashboardService(DashboardServiceOptions{Now: func() time.Time { return now }})
	api := &fakeDashboardAPI{}

	page := svc.LoadOverview(context.Background(), api, model.ChartPeriod90d)

	assert.False(t, page.Unauthenticated())
	assert.True(t, page.Overview.Loaded())
	assert.True(t, page.Chart.Loaded())
	assert.True(t, page.Customers.Loaded())
	assert.True(t, page.Products.Loaded())
	assert.True(t, page.SyncStatus.Loaded())
	assert.Equal(t, 10, page.Overview.Data.TotalCustomers)
	assert.Equal(t, topCustomersLimit, api.topLimit)
	assert.Equal(t, "week", api.params.GroupBy)
	assert.Equal(t, now, api.params.EndDate)
	assert.Equal(t, now.AddDate(0, 0, -90), api.params.StartDate)
}

func TestDashboardService_WidgetErrorsStayLocal(t *testing.T) {
	svc := NewDashboardService(DashboardServiceOptions{})
	api := &fakeDashboardAPI{errs: map[string]error{
		"products": apperrors.FromStatus(http.StatusInternalServerError, ""),
		"chart":    apperrors.MapTransportError(context.DeadlineExceeded),
	}}

	page := svc.LoadOverview(context.Background(), api, model.ChartPeriod30d)

	assert.False(t, page.Unauthenticated())
	assert.Equal(t, "Failed to fetch product performance", page.Products.ErrorMessage())
	assert.Equal(t, "Error loading chart data", page.Chart.ErrorMessage())
	assert.True(t, page.Overview.Loaded())
	assert.True(t, page.Customers.Loaded())
	assert.True(t, page.SyncStatus.Loaded())
}

func TestDashboardService_UnauthorizedWidgetMarksPage(t *testing.T) {
	svc := NewDashboardService(DashboardServiceOptions{})
	api := &fakeDashboardAPI{errs: map[string]error{
		"sync": apperrors.FromStatus(http.StatusUnauthorized, "Invalid token"),
	}}

	page := svc.LoadOverview(context.Background(), api, model.ChartPeriod7d)

	assert.True(t, page.Unauthenticated())
	assert.True(t, page.SyncStatus.Unauthenticated())
}

// A 401 on one widget through the real client tears the session down.
func TestDashboardService_UnauthorizedTearsDownSession(t *testing.T) {
	stub := testutil.NewAPIStub(t)
	stub.JSON(http.MethodGet, "/auth/profile", http.StatusOK, map[string]any{"user": map[string]any{"id": "u1"}})
	stub.JSON(http.MethodGet, "/dashboard/overview", http.StatusOK, map[string]any{"totalCustomers": 1})
	stub.JSON(http.MethodGet, "/dashboard/orders-by-date", http.StatusOK, map[string]any{"data": []any{}})
	stub.JSON(http.MethodGet, "/dashboard/top-customers", http.StatusUnauthorized, map[string]string{"error": "Token expired"})
	stub.JSON(http.MethodGet, "/dashboard/product-performance", http.StatusOK, map[string]any{"products": []any{}})
	stub.JSON(http.MethodGet, "/sync/status", http.StatusOK, map[string]any{})

	client, err := shopapi.NewClient(shopapi.Config{BaseURL: stub.URL()})
	require.NoError(t, err)
	store := mockauth.NewMemoryCredentialStore("t1")
	session := NewSession(SessionOptions{API: client, Store: store})
	session.Initialize(context.Background())
	require.True(t, session.IsAuthenticated())

	page := NewDashboardService(DashboardServiceOptions{}).LoadOverview(context.Background(), client, model.ChartPeriod30d)

	assert.True(t, page.Unauthenticated())
	assert.False(t, session.IsAuthenticated())
	assert.Empty(t, store.Token())
	assert.Empty(t, client.Token())
}
