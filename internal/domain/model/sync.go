//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
)

// SyncType selects which Shopify resources an ingestion run covers.
type SyncType string

const (
	SyncTypeCustomers   SyncType = "CUSTOMERS"
	SyncTypeProducts    SyncType = "PRODUCTS"
	SyncTypeOrders      SyncType = "ORDERS"
	SyncTypeFull        SyncType = "FULL_SYNC"
	SyncTypeIncremental SyncType = "INCREMENTAL_SYNC"
)

// ParseSyncType normalizes a sync type string and reports whether it is supported.
func ParseSyncType(value string) (SyncType, bool) {
	t := SyncType(strings.ToUpper(strings.TrimSpace(value)))
	switch t {
	case SyncTypeCustomers, SyncTypeProducts, SyncTypeOrders, SyncTypeFull, SyncTypeIncremental:
		return t, true
	case "FULL", "ALL":
		return SyncTypeFull, true
	case "INCREMENTAL":
		return SyncTypeIncremental, true
	default:
		return "", false
	}
}

// SyncStatusValue is the lifecycle state of a sync run.
type SyncStatusValue string

const (
	SyncPending   SyncStatusValue = "PENDING"
	SyncRunning   SyncStatusValue = "RUNNING"
	SyncCompleted SyncStatusValue = "COMPLETED"
	SyncFailed    SyncStatusValue = "FAILED"
)

// SyncLog records one ingestion run.
type SyncLog struct {
	ID               string          `json:"id"`
	TenantID         string          `json:"tenantId"`
	Type             SyncType        `json:"type"`
	Status           SyncStatusValue `json:"status"`
	Message          string          `json:"message,omitempty"`
	RecordsProcessed int             `json:"recordsProcessed"`
	StartedAt        time.Time       `json:"startedAt"`
	CompletedAt      *time.Time      `json:"completedAt,omitempty"`
}

// Duration returns how long the run took, or zero while it is still running.
func (l SyncLog) Duration() time.Duration {
	if l.CompletedAt == nil {
		return 0
	}
	return l.CompletedAt.Sub(l.StartedAt)
}

// SyncStatus is returned by GET /sync/status.
type SyncStatus struct {
	LastSync     *SyncLog  `json:"lastSync,omitempty"`
	RunningSyncs int       `json:"runningSyncs"`
	RecentSyncs  []SyncLog `json:"recentSyncs"`
}

// IsRunning reports whether any sync is in progress.
func (s SyncStatus) IsRunning() bool { return s.RunningSyncs > 0 }

// SyncHistory is returned by GET /sync/history.
type SyncHistory struct {
	SyncLogs   []SyncLog       `json:"syncLogs"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
}

// SyncStatistics is returned by GET /sync/statistics.
type SyncStatistics struct {
	TotalSyncs          int        `json:"totalSyncs"`
	SuccessfulSyncs     int        `json:"successfulSyncs"`
	FailedSyncs         int        `json:"failedSyncs"`
	SuccessRate         float64    `json:"successRate"`
	AvgRecordsProcessed float64    `json:"avgRecordsProcessed"`
	LastSuccessfulSync  *time.Time `json:"lastSuccessfulSync,omitempty"`
}

// StartSyncRequest is the body for POST /sync/start.
type StartSyncRequest struct {
	Type SyncType `json:"type,omitempty"`
}

// StartSyncResult is the body returned by POST /sync/start.
type StartSyncResult struct {
	Message          string   `json:"message,omitempty"`
	SyncID           string   `json:"syncId,omitempty"`
	RecordsProcessed int      `json:"recordsProcessed"`
	Log              *SyncLog `json:"syncLog,omitempty"`
}

// SchedulerAction is a control verb for POST /sync/scheduler/:action.
type SchedulerAction string

const (
	SchedulerStart  SchedulerAction = "start"
	SchedulerStop   SchedulerAction = "stop"
	SchedulerStatus SchedulerAction = "status"
)

// ParseSchedulerAction normalizes an action string and reports whether it is supported.
func ParseSchedulerAction(value string) (SchedulerAction, bool) {
	a := SchedulerAction(strings.ToLower(strings.TrimSpace(value)))
	switch a {
	case SchedulerStart, SchedulerStop, SchedulerStatus:
		return a, true
	default:
		return "", false
	}
}

// PaginationInfo is the paging envelope shared by list endpoints.
type PaginationInfo struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}
