package main

import (
	"context"
	"io"

	"github.com/shopdash/shopdash-ui/internal/util"
)

func runCustomers(cmdCtx *commandContext, args []string) error {
	out, err := parseOutput(cmdCtx, "customers", args, nil)
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		customers, err := s.api.Customers(ctx)
		if err != nil {
			return apiFailure(err, "load customers")
		}
		return emit(cmdCtx.Out, out, customers, func(tw io.Writer) error {
			if err := writef(tw, "NAME\tEMAIL\tORDERS\tSPENT\tMARKETING\tCREATED\n"); err != nil {
				return err
			}
			for _, c := range customers {
				marketing := "no"
				if c.AcceptsMarketing {
					marketing = "yes"
				}
				if err := writef(tw, "%s\t%s\t%d\t%s\t%s\t%s\n",
					dash(c.DisplayName()), dash(c.Email), c.OrdersCount, util.FormatMoney(c.TotalSpent),
					marketing, timestamp(c.CreatedAt)); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func runProducts(cmdCtx *commandContext, args []string) error {
	out, err := parseOutput(cmdCtx, "products", args, nil)
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		products, err := s.api.Products(ctx)
		if err != nil {
			return apiFailure(err, "load products")
		}
		return emit(cmdCtx.Out, out, products, func(tw io.Writer) error {
			if err := writef(tw, "TITLE\tVENDOR\tTYPE\tPRICE\tINVENTORY\tSTATUS\n"); err != nil {
				return err
			}
			for _, p := range products {
				if err := writef(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
					p.Title, dash(p.Vendor), dash(p.ProductType), moneyPtr(p.Price),
					p.Inventory, dash(p.Status)); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func runOrders(cmdCtx *commandContext, args []string) error {
	out, err := parseOutput(cmdCtx, "orders", args, nil)
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		orders, err := s.api.Orders(ctx)
		if err != nil {
			return apiFailure(err, "load orders")
		}
		return emit(cmdCtx.Out, out, orders, func(tw io.Writer) error {
			if err := writef(tw, "ORDER\tCUSTOMER\tTOTAL\tCURRENCY\tFINANCIAL\tFULFILLMENT\tDATE\n"); err != nil {
				return err
			}
			for _, o := range orders {
				customer := "-"
				if o.Customer != nil {
					customer = dash(o.Customer.DisplayName())
				}
				if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					dash(o.OrderNumber), customer, util.FormatMoney(o.TotalPrice), dash(o.Currency),
					dash(o.FinancialStatus), dash(o.FulfillmentStatus), timestamp(o.OrderDate)); err != nil {
					return err
				}
			}
			return nil
		})
	})
}
