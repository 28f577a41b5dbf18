package shopapi

import (
	"context"
	"net/url"

	"github.com/shopdash/shopdash-ui/internal/domain/model"
)

// StartSync triggers an ingestion run. An empty type lets the API pick its default.
func (c *Client) StartSync(ctx context.Context, syncType model.SyncType) (model.StartSyncResult, error) {
	var out model.StartSyncResult
	if err := c.Post(ctx, "/sync/start", model.StartSyncRequest{Type: syncType}, &out); err != nil {
		return model.StartSyncResult{}, err
	}
	return out, nil
}

// CancelSync cancels the running sync, if any.
func (c *Client) CancelSync(ctx context.Context) error {
	return c.Post(ctx, "/sync/cancel", nil, nil)
}

// SyncStatus loads the running count and recent runs.
func (c *Client) SyncStatus(ctx context.Context) (model.SyncStatus, error) {
	var out model.SyncStatus
	if err := c.Get(ctx, "/sync/status", nil, &out); err != nil {
		return model.SyncStatus{}, err
	}
	return out, nil
}

// SyncHistory loads a page of past runs.
func (c *Client) SyncHistory(ctx context.Context, p model.ListParams) (model.SyncHistory, error) {
	var out model.SyncHistory
	if err := c.Get(ctx, "/sync/history", listQuery(p), &out); err != nil {
		return model.SyncHistory{}, err
	}
	return out, nil
}

// SyncStatistics loads aggregate success/failure counts.
func (c *Client) SyncStatistics(ctx context.Context) (model.SyncStatistics, error) {
	var out model.SyncStatistics
	if err := c.Get(ctx, "/sync/statistics", nil, &out); err != nil {
		return model.SyncStatistics{}, err
	}
	return out, nil
}

// SyncLog loads one run by id.
func (c *Client) SyncLog(ctx context.Context, id string) (model.SyncLog, error) {
	var out model.SyncLog
	if err := c.Get(ctx, "/sync/logs/"+url.PathEscape(id), nil, &out); err != nil {
		return model.SyncLog{}, err
	}
	return out, nil
}

// ControlScheduler sends a start/stop/status verb to the sync scheduler.
// The response is returned undecoded; it carries no client-side behavior.
func (c *Client) ControlScheduler(ctx context.Context, action model.SchedulerAction) (map[string]any, error) {
	out := map[string]any{}
	if err := c.Post(ctx, "/sync/scheduler/"+url.PathEscape(string(action)), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
