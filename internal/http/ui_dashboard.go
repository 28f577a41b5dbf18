package httpx

import (
	"context"
	"net/http"

	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	"github.com/shopdash/shopdash-ui/internal/domain/model"
	"github.com/shopdash/shopdash-ui/internal/service"
)

// Dashboard renders the overview page: stat cards, the revenue chart, top
// customers, product performance and sync status. Widgets load concurrently
// and fail independently.
// GET /dashboard?period=7d|30d|90d.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	period := model.ParseChartPeriod(r.URL.Query().Get("period"))
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Dashboard – " + appTitle, PageTitle: "Dashboard", CurrentPage: PageDashboard},
		Fetch: func(ctx context.Context, api *shopapi.Client, data map[string]any) error {
			page := h.dashboard().LoadOverview(ctx, api, period)
			data["Overview"] = page
			data["Periods"] = []model.ChartPeriod{model.ChartPeriod7d, model.ChartPeriod30d, model.ChartPeriod90d}
			return nil
		},
	})
}

func (h *UIHandlers) dashboard() *service.DashboardService {
	if h.DashboardSvc != nil {
		return h.DashboardSvc
	}
	return service.NewDashboardService(service.DashboardServiceOptions{Logger: h.Logger})
}
