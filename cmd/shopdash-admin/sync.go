package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopdash/shopdash-ui/internal/domain/model"
	apperrors "github.com/shopdash/shopdash-ui/internal/errors"
	"github.com/shopdash/shopdash-ui/internal/util"
)

var errSyncFailed = errors.New("sync failed")

func printSyncLogs(tw io.Writer, logs []model.SyncLog) error {
	if err := writef(tw, "ID\tTYPE\tSTATUS\tRECORDS\tSTARTED\tDURATION\tMESSAGE\n"); err != nil {
		return err
	}
	for _, l := range logs {
		if err := writef(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			l.ID, l.Type, l.Status, l.RecordsProcessed, timestamp(l.StartedAt), util.FormatDuration(l.Duration()), dash(l.Message)); err != nil {
			return err
		}
	}
	return nil
}

func runSyncStart(cmdCtx *commandContext, args []string) error {
	var rawType string
	out, err := parseOutput(cmdCtx, "sync-start", args, func(fs *flag.FlagSet) {
		fs.StringVar(&rawType, "type", string(model.SyncTypeFull),
			"CUSTOMERS, PRODUCTS, ORDERS, FULL_SYNC or INCREMENTAL_SYNC")
	})
	if err != nil {
		return err
	}
	syncType, ok := model.ParseSyncType(rawType)
	if !ok {
		return usageErrorf("unknown sync type %q", rawType)
	}

	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		res, err := s.api.StartSync(ctx, syncType)
		if err != nil {
			if apperrors.IsUnauthenticated(err) {
				return err
			}
			msg := "Sync failed: " + apperrors.UserMessage(err, "unexpected error")
			if apperrors.IsTransport(err) {
				msg = "Error starting sync. Please try again."
			}
			if werr := writeln(cmdCtx.Err, msg); werr != nil {
				return werr
			}
			return fmt.Errorf("%w: %w", errSyncFailed, err)
		}
		if out.wantsJSON() {
			return printJSON(cmdCtx.Out, res, out.Query)
		}
		return writef(cmdCtx.Out, "Sync completed successfully! Processed %d records.\n", res.RecordsProcessed)
	})
}

func runSyncCancel(cmdCtx *commandContext, args []string) error {
	if err := parseFlags(newFlagSet(cmdCtx, "sync-cancel"), args); err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		if err := s.api.CancelSync(ctx); err != nil {
			return apiFailure(err, "cancel sync")
		}
		return writeln(cmdCtx.Out, "Sync cancellation requested")
	})
}

func runSyncStatus(cmdCtx *commandContext, args []string) error {
	out, err := parseOutput(cmdCtx, "sync-status", args, nil)
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		st, err := s.api.SyncStatus(ctx)
		if err != nil {
			return apiFailure(err, "load sync status")
		}
		return emit(cmdCtx.Out, out, st, func(tw io.Writer) error {
			last := "never"
			if st.LastSync != nil {
				last = string(st.LastSync.Status) + " at " + timestamp(st.LastSync.StartedAt)
			}
			if err := writef(tw, "Running:\t%d\nLast sync:\t%s\n\n", st.RunningSyncs, last); err != nil {
				return err
			}
			return printSyncLogs(tw, st.RecentSyncs)
		})
	})
}

func runSyncHistory(cmdCtx *commandContext, args []string) error {
	var params model.ListParams
	out, err := parseOutput(cmdCtx, "sync-history", args, bindList(&params, 20))
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		h, err := s.api.SyncHistory(ctx, params)
		if err != nil {
			return apiFailure(err, "load sync history")
		}
		return emit(cmdCtx.Out, out, h, func(tw io.Writer) error {
			if err := printSyncLogs(tw, h.SyncLogs); err != nil {
				return err
			}
			if p := h.Pagination; p != nil {
				return writef(tw, "\nPage %d of %d (%d runs)\n", p.CurrentPage, p.TotalPages, p.TotalCount)
			}
			return nil
		})
	})
}

func runSyncStats(cmdCtx *commandContext, args []string) error {
	out, err := parseOutput(cmdCtx, "sync-stats", args, nil)
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		st, err := s.api.SyncStatistics(ctx)
		if err != nil {
			return apiFailure(err, "load sync statistics")
		}
		return emit(cmdCtx.Out, out, st, func(tw io.Writer) error {
			return writef(tw,
				"Total syncs:\t%d\nSuccessful:\t%d\nFailed:\t%d\nSuccess rate:\t%s\nAvg records:\t%.1f\nLast success:\t%s\n",
				st.TotalSyncs, st.SuccessfulSyncs, st.FailedSyncs, util.FormatPercent(st.SuccessRate),
				st.AvgRecordsProcessed, timestampPtr(st.LastSuccessfulSync))
		})
	})
}

func runSyncLog(cmdCtx *commandContext, args []string) error {
	var id string
	out, err := parseOutput(cmdCtx, "sync-log", args, func(fs *flag.FlagSet) {
		fs.StringVar(&id, "id", "", "sync run id (required)")
	})
	if err != nil {
		return err
	}
	if id = strings.TrimSpace(id); id == "" {
		return usageErrorf("--id is required")
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		l, err := s.api.SyncLog(ctx, id)
		if err != nil {
			return apiFailure(err, "load sync log")
		}
		return emit(cmdCtx.Out, out, l, func(tw io.Writer) error {
			return printSyncLogs(tw, []model.SyncLog{l})
		})
	})
}

// runScheduler takes the action as its only positional argument.
func runScheduler(cmdCtx *commandContext, args []string) error {
	var out outputOptions
	fs := newFlagSet(cmdCtx, "scheduler")
	out.register(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageErrorf("%v", err)
	}
	if err := out.validate(); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErrorf("usage: shopdash-admin scheduler [--json] <start|stop|status>")
	}
	action, ok := model.ParseSchedulerAction(fs.Arg(0))
	if !ok {
		return usageErrorf("unknown scheduler action %q", fs.Arg(0))
	}

	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		res, err := s.api.ControlScheduler(ctx, action)
		if err != nil {
			return apiFailure(err, "scheduler "+string(action))
		}
		return emit(cmdCtx.Out, out, res, func(tw io.Writer) error {
			keys := make([]string, 0, len(res))
			for k := range res {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if err := writef(tw, "%s:\t%v\n", k, res[k]); err != nil {
					return err
				}
			}
			return nil
		})
	})
}
