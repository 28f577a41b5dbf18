package main

import (
	"context"
	"flag"
	"io"
	"time"

	"github.com/shopdash/shopdash-ui/internal/domain/model"
	"github.com/shopdash/shopdash-ui/internal/util"
)

const dateLayout = "2006-01-02"

func runOverview(cmdCtx *commandContext, args []string) error {
	out, err := parseOutput(cmdCtx, "overview", args, nil)
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		o, err := s.api.Overview(ctx)
		if err != nil {
			return apiFailure(err, "load overview")
		}
		return emit(cmdCtx.Out, out, o, func(tw io.Writer) error {
			badge := "Below avg"
			if o.AboveAverageOrderValue() {
				badge = "Above avg"
			}
			return writef(tw,
				"Total revenue:\t%s\nTotal orders:\t%d\nTotal customers:\t%d\nTotal products:\t%d\n"+
					"Average order value:\t%s (%s)\nConversion:\t%s\nRecent orders:\t%d\nRecent revenue:\t%s\n",
				util.FormatMoney(o.TotalRevenue), o.TotalOrders, o.TotalCustomers, o.TotalProducts,
				util.FormatMoney(o.AverageOrderValue), badge, util.FormatPercent(o.ConversionRate()),
				o.RecentOrdersCount, util.FormatMoney(o.RecentRevenue))
		})
	})
}

type ordersByDateOptions struct {
	Period  string
	Start   string
	End     string
	GroupBy string
}

// params resolves explicit dates over the period preset.
func (o ordersByDateOptions) params(now time.Time) (model.OrdersByDateParams, error) {
	p := model.ParseChartPeriod(o.Period).ParamsFor(now)
	if o.Start != "" {
		start, err := time.ParseInLocation(dateLayout, o.Start, time.UTC)
		if err != nil {
			return p, usageErrorf("--start must be YYYY-MM-DD")
		}
		p.StartDate = start
	}
	if o.End != "" {
		end, err := time.ParseInLocation(dateLayout, o.End, time.UTC)
		if err != nil {
			return p, usageErrorf("--end must be YYYY-MM-DD")
		}
		p.EndDate = end.Add(24*time.Hour - time.Millisecond)
	}
	if p.EndDate.Before(p.StartDate) {
		return p, usageErrorf("--end is before --start")
	}
	if o.GroupBy != "" {
		p.GroupBy = o.GroupBy
	}
	return p, nil
}

func runOrdersByDate(cmdCtx *commandContext, args []string) error {
	var opts ordersByDateOptions
	out, err := parseOutput(cmdCtx, "orders-by-date", args, func(fs *flag.FlagSet) {
		fs.StringVar(&opts.Period, "period", "30d", "window preset: 7d, 30d or 90d")
		fs.StringVar(&opts.Start, "start", "", "first day (YYYY-MM-DD), overrides --period")
		fs.StringVar(&opts.End, "end", "", "last day (YYYY-MM-DD), overrides --period")
		fs.StringVar(&opts.GroupBy, "group-by", "", "bucket size: day or week")
	})
	if err != nil {
		return err
	}
	params, err := opts.params(time.Now())
	if err != nil {
		return err
	}

	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		series, err := s.api.OrdersByDate(ctx, params)
		if err != nil {
			return apiFailure(err, "load orders by date")
		}
		return emit(cmdCtx.Out, out, series, func(tw io.Writer) error {
			if err := printSeries(tw, series.Data); err != nil {
				return err
			}
			revenue, orders := series.Totals()
			return writef(tw, "TOTAL\t%d\t%s\n", orders, util.FormatMoney(revenue))
		})
	})
}

func printSeries(tw io.Writer, points []model.ChartPoint) error {
	if err := writef(tw, "DATE\tORDERS\tREVENUE\n"); err != nil {
		return err
	}
	for _, p := range points {
		if err := writef(tw, "%s\t%d\t%s\n", p.Date, p.Orders, util.FormatMoney(p.Revenue)); err != nil {
			return err
		}
	}
	return nil
}

func bindList(p *model.ListParams, defaultLimit int) func(fs *flag.FlagSet) {
	return func(fs *flag.FlagSet) {
		fs.IntVar(&p.Limit, "limit", defaultLimit, "rows per page")
		fs.IntVar(&p.Page, "page", 0, "page number, starting at 1")
	}
}

func runTopCustomers(cmdCtx *commandContext, args []string) error {
	var params model.ListParams
	out, err := parseOutput(cmdCtx, "top-customers", args, bindList(&params, 10))
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		top, err := s.api.TopCustomers(ctx, params)
		if err != nil {
			return apiFailure(err, "load top customers")
		}
		return emit(cmdCtx.Out, out, top, func(tw io.Writer) error {
			if err := writef(tw, "NAME\tEMAIL\tORDERS\tSPENT\tAVG ORDER\n"); err != nil {
				return err
			}
			for _, c := range top.Customers {
				if err := writef(tw, "%s\t%s\t%d\t%s\t%s\n",
					dash(c.Name), dash(c.Email), c.OrdersCount, util.FormatMoney(c.TotalSpent), util.FormatMoney(c.AverageOrderValue)); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func runProductPerformance(cmdCtx *commandContext, args []string) error {
	var params model.ListParams
	out, err := parseOutput(cmdCtx, "product-performance", args, bindList(&params, 10))
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		perf, err := s.api.ProductPerformance(ctx, params)
		if err != nil {
			return apiFailure(err, "load product performance")
		}
		return emit(cmdCtx.Out, out, perf, func(tw io.Writer) error {
			if err := writef(tw, "PRODUCT\tVENDOR\tORDERS\tQUANTITY\tREVENUE\n"); err != nil {
				return err
			}
			for _, p := range perf.Products {
				if err := writef(tw, "%s\t%s\t%d\t%d\t%s\n",
					p.Title, dash(p.Vendor), p.TotalOrders, p.TotalQuantity, util.FormatMoney(p.TotalRevenue)); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func runRevenueTrends(cmdCtx *commandContext, args []string) error {
	var months int
	out, err := parseOutput(cmdCtx, "revenue-trends", args, func(fs *flag.FlagSet) {
		fs.IntVar(&months, "months", 12, "how many months back")
	})
	if err != nil {
		return err
	}
	if months < 1 {
		return usageErrorf("--months must be positive")
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		trends, err := s.api.RevenueTrends(ctx, months)
		if err != nil {
			return apiFailure(err, "load revenue trends")
		}
		return emit(cmdCtx.Out, out, trends, func(tw io.Writer) error {
			return printSeries(tw, trends.Data)
		})
	})
}

func runCustomerAnalytics(cmdCtx *commandContext, args []string) error {
	out, err := parseOutput(cmdCtx, "customer-analytics", args, nil)
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		a, err := s.api.CustomerAnalytics(ctx)
		if err != nil {
			return apiFailure(err, "load customer analytics")
		}
		return emit(cmdCtx.Out, out, a, func(tw io.Writer) error {
			if err := writef(tw,
				"Total customers:\t%d\nNew this month:\t%d\nWith orders:\t%d\nConversion:\t%s\nOrders per customer:\t%.2f\n",
				a.TotalCustomers, a.NewCustomersThisMonth, a.CustomersWithOrders,
				util.FormatPercent(a.CustomerConversionRate), a.AvgOrdersPerCustomer); err != nil {
				return err
			}
			if seg := a.Segments; seg != nil {
				return writef(tw, "Segments:\tnew %d, one-time %d, repeat %d, loyal %d\n",
					seg.New, seg.OneTime, seg.Repeat, seg.Loyal)
			}
			return nil
		})
	})
}
