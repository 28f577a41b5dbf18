package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shopdash/shopdash-ui/internal/domain/model"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/ports"
)

// topCustomersLimit is how many customers the overview widget shows.
const topCustomersLimit = 5

// OverviewPage holds the independently loaded widgets of the dashboard home.
type OverviewPage struct {
	Period     model.ChartPeriod
	Overview   *Resource[model.DashboardOverview]
	Chart      *Resource[model.OrdersByDate]
	Customers  *Resource[model.TopCustomers]
	Products   *Resource[model.ProductPerformanceList]
	SyncStatus *Resource[model.SyncStatus]
}

// Unauthenticated reports whether any widget hit a 401.
func (p *OverviewPage) Unauthenticated() bool {
	return p.Overview.Unauthenticated() || p.Chart.Unauthenticated() ||
		p.Customers.Unauthenticated() || p.Products.Unauthenticated() ||
		p.SyncStatus.Unauthenticated()
}

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Logger *slog.Logger
	Now    func() time.Time
}

// DashboardService loads composite dashboard pages.
type DashboardService struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &DashboardService{logger: opts.Logger, now: now}
}

func (s *DashboardService) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// LoadOverview fetches every overview widget concurrently. A widget error
// stays local to that widget; only a 401 cancels the remaining fetches,
// since the session is gone at that point.
func (s *DashboardService) LoadOverview(ctx context.Context, api ports.DashboardAPI, period model.ChartPeriod) *OverviewPage {
	page := &OverviewPage{
		Period:     period,
		Overview:   NewResource[model.DashboardOverview]("dashboard data"),
		Chart:      NewResource[model.OrdersByDate]("chart data"),
		Customers:  NewResource[model.TopCustomers]("top customers"),
		Products:   NewResource[model.ProductPerformanceList]("product performance"),
		SyncStatus: NewResource[model.SyncStatus]("sync status"),
	}
	params := period.ParamsFor(s.now())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return abortOn401(page.Overview.Load(gctx, api.Overview).Err)
	})
	g.Go(func() error {
		return abortOn401(page.Chart.Load(gctx, func(c context.Context) (model.OrdersByDate, error) {
			return api.OrdersByDate(c, params)
		}).Err)
	})
	g.Go(func() error {
		return abortOn401(page.Customers.Load(gctx, func(c context.Context) (model.TopCustomers, error) {
			return api.TopCustomers(c, model.ListParams{Limit: topCustomersLimit})
		}).Err)
	})
	g.Go(func() error {
		return abortOn401(page.Products.Load(gctx, func(c context.Context) (model.ProductPerformanceList, error) {
			return api.ProductPerformance(c, model.ListParams{})
		}).Err)
	})
	g.Go(func() error {
		return abortOn401(page.SyncStatus.Load(gctx, api.SyncStatus).Err)
	})

	if err := g.Wait(); err != nil {
		s.log().InfoContext(ctx, "overview load aborted", "error", err)
	}
	return page
}

func abortOn401(err error) error {
	if apperrors.IsUnauthenticated(err) {
		return err
	}
	return nil
}
