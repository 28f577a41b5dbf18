package httpx

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/shopdash/shopdash-ui/internal/adapters/shopapi"
	"github.com/shopdash/shopdash-ui/internal/domain/model"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/service"
)

const (
	syncActionStart  = "start"
	syncActionCancel = "cancel"
)

func syncMeta() PageMeta {
	return PageMeta{Title: "Data Sync – " + appTitle, PageTitle: "Data Synchronization", CurrentPage: PageSync}
}

// Sync renders sync status, statistics and recent runs.
// GET /dashboard/sync.
func (h *UIHandlers) Sync(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{Meta: syncMeta(), Fetch: h.loadSyncPage})
}

// SyncAction starts or cancels a sync and re-renders the page with the outcome.
// POST /dashboard/sync (action=start&type=FULL_SYNC | action=cancel).
func (h *UIHandlers) SyncAction(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: syncMeta(),
		Fetch: func(ctx context.Context, api *shopapi.Client, data map[string]any) error {
			msg, ok := h.runSyncAction(ctx, api, r)
			templateDataFrom(data).WithFlash(msg, ok)
			return h.loadSyncPage(ctx, api, data)
		},
	})
}

func (h *UIHandlers) runSyncAction(ctx context.Context, api *shopapi.Client, r *http.Request) (string, bool) {
	switch r.PostFormValue("action") {
	case syncActionCancel:
		if err := api.CancelSync(ctx); err != nil {
			h.logger().WarnContext(ctx, "cancel sync failed", "error", err)
			return syncFailureMessage("Failed to cancel sync", "Error cancelling sync. Please try again.", err), false
		}
		return "Sync cancelled.", true
	case syncActionStart, "":
		syncType, ok := model.ParseSyncType(r.PostFormValue("type"))
		if !ok {
			return "Sync failed: unknown sync type.", false
		}
		res, err := api.StartSync(ctx, syncType)
		if err != nil {
			h.logger().WarnContext(ctx, "start sync failed", "type", syncType, "error", err)
			return syncFailureMessage("Sync failed", "Error starting sync. Please try again.", err), false
		}
		return fmt.Sprintf("Sync completed successfully! Processed %d records.", res.RecordsProcessed), true
	default:
		return "Unknown sync action.", false
	}
}

// syncFailureMessage distinguishes an API that answered with an error from
// one that could not be reached.
func syncFailureMessage(prefix, unreachable string, err error) string {
	if apperrors.IsTransport(err) {
		return unreachable
	}
	return prefix + ": " + apperrors.UserMessage(err, "unexpected error")
}

func (h *UIHandlers) loadSyncPage(ctx context.Context, api *shopapi.Client, data map[string]any) error {
	status := service.NewResource[model.SyncStatus]("sync status")
	history := service.NewResource[model.SyncHistory]("sync history")
	stats := service.NewResource[model.SyncStatistics]("sync statistics")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return unauthenticatedOnly(status.Load(gctx, api.SyncStatus).Err)
	})
	g.Go(func() error {
		return unauthenticatedOnly(history.Load(gctx, func(c context.Context) (model.SyncHistory, error) {
			return api.SyncHistory(c, model.ListParams{Limit: syncHistoryLimit})
		}).Err)
	})
	g.Go(func() error {
		return unauthenticatedOnly(stats.Load(gctx, api.SyncStatistics).Err)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	data["Status"] = status
	data["History"] = history
	data["Stats"] = stats
	data["SyncTypes"] = []model.SyncType{
		model.SyncTypeFull, model.SyncTypeIncremental,
		model.SyncTypeCustomers, model.SyncTypeProducts, model.SyncTypeOrders,
	}
	return nil
}

// SyncLog renders a single sync run.
// GET /dashboard/sync/logs/{id}.
func (h *UIHandlers) SyncLog(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.NotFound(w, r)
		return
	}
	h.Page(w, r, PageSpec{
		Meta: PageMeta{Title: "Sync Run – " + appTitle, PageTitle: "Sync Run", CurrentPage: PageSyncLog},
		Fetch: func(ctx context.Context, api *shopapi.Client, data map[string]any) error {
			res := service.NewResource[model.SyncLog]("sync log").Load(ctx, func(c context.Context) (model.SyncLog, error) {
				return api.SyncLog(c, id)
			})
			data["Log"] = res
			if apperrors.IsNotFound(res.Err) {
				data["Error"] = true
				data["ErrorMessage"] = "Sync run not found."
			} else if msg := res.ErrorMessage(); msg != "" {
				data["Error"] = true
				data["ErrorMessage"] = msg
			}
			return nil
		},
	})
}

// unauthenticatedOnly lets widget errors stay local while a 401 stops the
// remaining fetches.
func unauthenticatedOnly(err error) error {
	if apperrors.IsUnauthenticated(err) {
		return err
	}
	return nil
}
