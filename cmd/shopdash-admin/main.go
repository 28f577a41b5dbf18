package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/shopdash/shopdash-ui/config"
	"github.com/shopdash/shopdash-ui/internal/bootstrap"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx    context.Context
	Logger *slog.Logger
	Config config.AppConfig
	In     io.Reader
	Out    io.Writer
	Err    io.Writer
}

func main() {
	logger := bootstrap.InitLogger()

	if len(os.Args) < 2 {
		if err := printUsage(os.Stdout); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when no command is provided
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(os.Stderr); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2) //nolint:forbidigo // CLI must exit with failure status when command is unknown
	}

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		logger.ErrorContext(context.Background(), "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // CLI must signal configuration load failure to shell scripts
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	cmdCtx := &commandContext{
		Ctx:    ctx,
		Logger: logger,
		Config: cfg,
		In:     os.Stdin,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
	runErr := cmd.run(cmdCtx, os.Args[2:])
	stop()
	os.Exit(exitCode(cmdCtx, cmdName, runErr)) //nolint:forbidigo // CLI must propagate command execution result to callers
}

// exitCode reports runErr to the operator and maps it to a process status.
func exitCode(cmdCtx *commandContext, cmdName string, runErr error) int {
	switch {
	case runErr == nil:
		return 0
	case errors.Is(runErr, flag.ErrHelp):
		return 0
	case errors.Is(runErr, errUsage):
		if err := writeln(cmdCtx.Err, runErr.Error()); err != nil {
			cmdCtx.Logger.Error("print usage error failed", "error", err)
		}
		return 2
	case errors.Is(runErr, errSyncFailed), errors.Is(runErr, errShopifyUnreachable):
		// The command already printed the outcome.
		cmdCtx.Logger.DebugContext(cmdCtx.Ctx, "command reported failure", "command", cmdName, "error", runErr)
		return 1
	case errors.Is(runErr, errSessionExpired), errors.Is(runErr, errNotLoggedIn):
		if err := writeln(cmdCtx.Err, runErr.Error()); err != nil {
			cmdCtx.Logger.Error("print session error failed", "error", err)
		}
		return 1
	default:
		cmdCtx.Logger.ErrorContext(cmdCtx.Ctx, "command failed", "command", cmdName, "error", runErr)
		return 1
	}
}

func commands() map[string]command {
	list := []command{
		{"login", "Sign in and store the credential for the active profile", runLogin},
		{"register", "Create a user and tenant, then sign in", runRegister},
		{"logout", "Forget the credential of the active profile", runLogout},
		{"whoami", "Show the signed-in user, tenant and credential expiry", runWhoami},
		{"overview", "Show the dashboard headline figures", runOverview},
		{"orders-by-date", "Show orders and revenue per day or week", runOrdersByDate},
		{"top-customers", "List the highest-spending customers", runTopCustomers},
		{"product-performance", "List revenue and quantity per product", runProductPerformance},
		{"revenue-trends", "Show monthly revenue", runRevenueTrends},
		{"customer-analytics", "Show customer conversion and segments", runCustomerAnalytics},
		{"customers", "List synced customers", runCustomers},
		{"products", "List synced products", runProducts},
		{"orders", "List synced orders", runOrders},
		{"tenant", "Show the current tenant", runTenant},
		{"tenant-settings", "Update the tenant name, Shopify domain and status", runTenantSettings},
		{"shopify-config", "Store the Shopify access token for the tenant", runShopifyConfig},
		{"test-shopify", "Check the tenant's Shopify connection", runTestShopify},
		{"users", "List users of the tenant", runUsers},
		{"user-create", "Add a user to the tenant", runUserCreate},
		{"user-update", "Update a user of the tenant", runUserUpdate},
		{"sync-start", "Start a Shopify sync", runSyncStart},
		{"sync-cancel", "Cancel the running sync", runSyncCancel},
		{"sync-status", "Show running and recent syncs", runSyncStatus},
		{"sync-history", "List past sync runs", runSyncHistory},
		{"sync-stats", "Show sync success statistics", runSyncStats},
		{"sync-log", "Show one sync run", runSyncLog},
		{"scheduler", "Start, stop or inspect the sync scheduler", runScheduler},
	}
	out := make(map[string]command, len(list))
	for _, c := range list {
		out[c.name] = c
	}
	return out
}

func printUsage(w io.Writer) error {
	if err := writef(w, "Usage: shopdash-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(w, "Available commands:\n"); err != nil {
		return err
	}
	cmds := commands()
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := writef(w, "  %-22s %s\n", name, cmds[name].description); err != nil {
			return err
		}
	}
	return writef(w, "\nTable commands accept --json and --query <jmespath>.\n")
}
