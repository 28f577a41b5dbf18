package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	"github.com/shopdash/shopdash-ui/internal/domain/model"
	"github.com/shopdash/shopdash-ui/internal/http/validation"
)

var errShopifyUnreachable = errors.New("shopify connection test failed")

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	seen := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { seen[f.Name] = true })
	return seen
}

func printTenant(cmdCtx *commandContext, out outputOptions, t domainauth.Tenant) error {
	return emit(cmdCtx.Out, out, t, func(tw io.Writer) error {
		token := "missing"
		if t.HasShopifyToken {
			token = "configured"
		}
		if err := writef(tw, "ID:\t%s\nName:\t%s\nShopify domain:\t%s\nShopify token:\t%s\nActive:\t%t\n",
			t.ID, t.Name, dash(t.ShopifyDomain), token, t.IsActive); err != nil {
			return err
		}
		if st := t.Stats; st != nil {
			return writef(tw, "Records:\t%d customers, %d products, %d orders, %d users\n",
				st.Customers, st.Products, st.Orders, st.Users)
		}
		return nil
	})
}

func runTenant(cmdCtx *commandContext, args []string) error {
	out, err := parseOutput(cmdCtx, "tenant", args, nil)
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		t, err := s.api.CurrentTenant(ctx)
		if err != nil {
			return apiFailure(err, "load tenant")
		}
		return printTenant(cmdCtx, out, t)
	})
}

func runTenantSettings(cmdCtx *commandContext, args []string) error {
	var (
		req  model.TenantSettingsRequest
		fset *flag.FlagSet
	)
	out, err := parseOutput(cmdCtx, "tenant-settings", args, func(fs *flag.FlagSet) {
		fset = fs
		fs.StringVar(&req.Name, "name", "", "store name")
		fs.StringVar(&req.ShopifyDomain, "shopify-domain", "", "shop domain, e.g. my-store.myshopify.com")
		fs.BoolVar(&req.IsActive, "active", true, "whether the tenant is active")
	})
	if err != nil {
		return err
	}
	seen := setFlags(fset)
	if !seen["name"] && !seen["shopify-domain"] && !seen["active"] {
		return usageErrorf("nothing to update; pass --name, --shopify-domain or --active")
	}

	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		current, err := s.api.CurrentTenant(ctx)
		if err != nil {
			return apiFailure(err, "load tenant")
		}
		merged := model.TenantSettingsRequest{
			Name:          current.Name,
			ShopifyDomain: current.ShopifyDomain,
			IsActive:      current.IsActive,
		}
		if seen["name"] {
			merged.Name = req.Name
		}
		if seen["shopify-domain"] {
			merged.ShopifyDomain = req.ShopifyDomain
		}
		if seen["active"] {
			merged.IsActive = req.IsActive
		}
		merged.Normalize()

		fv := validation.New().
			Validate("name", merged.Name, validation.Required("Store name", 100)).
			Validate("shopify-domain", merged.ShopifyDomain, validation.ShopifyDomain("Shopify domain"))
		if err = fieldErrors(fv); err != nil {
			return err
		}

		updated, err := s.api.UpdateTenantSettings(ctx, merged)
		if err != nil {
			return apiFailure(err, "update tenant settings")
		}
		if err = writeln(cmdCtx.Err, "Settings updated successfully!"); err != nil {
			return err
		}
		return printTenant(cmdCtx, out, updated)
	})
}

func runShopifyConfig(cmdCtx *commandContext, args []string) error {
	var (
		req        model.ShopifyConfigRequest
		tokenStdin bool
	)
	fs := newFlagSet(cmdCtx, "shopify-config")
	fs.StringVar(&req.ShopifyAccessToken, "token", "", "Shopify Admin API access token")
	fs.BoolVar(&tokenStdin, "token-stdin", false, "read the access token from stdin")
	fs.StringVar(&req.APIKey, "api-key", "", "Shopify API key (optional)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if tokenStdin {
		token, err := newPrompter(cmdCtx).ask("")
		if err != nil {
			return err
		}
		req.ShopifyAccessToken = token
	}
	req.ShopifyAccessToken = strings.TrimSpace(req.ShopifyAccessToken)
	req.APIKey = strings.TrimSpace(req.APIKey)
	if req.ShopifyAccessToken == "" {
		return usageErrorf("--token or --token-stdin is required")
	}

	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		t, err := s.api.UpdateShopifyConfig(ctx, req)
		if err != nil {
			return apiFailure(err, "update Shopify configuration")
		}
		return writef(cmdCtx.Out, "Shopify token stored for %s\n", tenantLabel(&t))
	})
}

func runTestShopify(cmdCtx *commandContext, args []string) error {
	out, err := parseOutput(cmdCtx, "test-shopify", args, nil)
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		res, err := s.api.TestShopifyConnection(ctx)
		if err != nil {
			return apiFailure(err, "test Shopify connection")
		}
		if err = emit(cmdCtx.Out, out, res, func(tw io.Writer) error {
			status := "failed"
			if res.Success {
				status = "ok"
			}
			return writef(tw, "Connection:\t%s\nShop:\t%s\nMessage:\t%s\n", status, dash(res.ShopName), dash(res.Message))
		}); err != nil {
			return err
		}
		if !res.Success {
			return errShopifyUnreachable
		}
		return nil
	})
}

func printUsers(cmdCtx *commandContext, out outputOptions, users []domainauth.User) error {
	return emit(cmdCtx.Out, out, users, func(tw io.Writer) error {
		if err := writef(tw, "ID\tNAME\tEMAIL\tROLE\tACTIVE\tCREATED\n"); err != nil {
			return err
		}
		for _, u := range users {
			if err := writef(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
				u.ID, dash(u.Name), u.Email, dash(string(u.Role)), u.IsActive, timestampPtr(u.CreatedAt)); err != nil {
				return err
			}
		}
		return nil
	})
}

func runUsers(cmdCtx *commandContext, args []string) error {
	out, err := parseOutput(cmdCtx, "users", args, nil)
	if err != nil {
		return err
	}
	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		users, err := s.api.ListTenantUsers(ctx)
		if err != nil {
			return apiFailure(err, "load users")
		}
		return printUsers(cmdCtx, out, users)
	})
}

type userFlags struct {
	ID   string
	Req  model.TenantUserRequest
	Role string
}

func (u *userFlags) bind(withID bool) func(fs *flag.FlagSet) {
	return func(fs *flag.FlagSet) {
		if withID {
			fs.StringVar(&u.ID, "id", "", "user id (required)")
		}
		fs.StringVar(&u.Req.Name, "name", "", "display name")
		fs.StringVar(&u.Req.Email, "email", "", "login email")
		fs.StringVar(&u.Req.Password, "password", "", "password")
		fs.StringVar(&u.Role, "role", string(domainauth.RoleUser), "ADMIN or USER")
		fs.BoolVar(&u.Req.IsActive, "active", true, "whether the user may sign in")
	}
}

func roleValidator() validation.Validator {
	return validation.OneOf("Role", []string{string(domainauth.RoleAdmin), string(domainauth.RoleUser)})
}

func runUserCreate(cmdCtx *commandContext, args []string) error {
	var uf userFlags
	out, err := parseOutput(cmdCtx, "user-create", args, uf.bind(false))
	if err != nil {
		return err
	}
	req := uf.Req
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Role = domainauth.Role(strings.ToUpper(strings.TrimSpace(uf.Role)))

	fv := validation.New().
		Validate("name", req.Name, validation.Required("Name", 100)).
		Validate("email", req.Email, validation.Email("Email")).
		Validate("password", req.Password, validation.MinLength("Password", minPasswordLength)).
		Validate("role", string(req.Role), roleValidator())
	if err = fieldErrors(fv); err != nil {
		return err
	}

	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		u, err := s.api.CreateTenantUser(ctx, req)
		if err != nil {
			return apiFailure(err, "create user")
		}
		return printUsers(cmdCtx, out, []domainauth.User{u})
	})
}

func runUserUpdate(cmdCtx *commandContext, args []string) error {
	var (
		uf   userFlags
		fset *flag.FlagSet
	)
	bind := uf.bind(true)
	out, err := parseOutput(cmdCtx, "user-update", args, func(fs *flag.FlagSet) {
		fset = fs
		bind(fs)
	})
	if err != nil {
		return err
	}
	if uf.ID = strings.TrimSpace(uf.ID); uf.ID == "" {
		return usageErrorf("--id is required")
	}
	seen := setFlags(fset)

	return withSession(cmdCtx, func(ctx context.Context, s *cliSession) error {
		users, err := s.api.ListTenantUsers(ctx)
		if err != nil {
			return apiFailure(err, "load users")
		}
		var current *domainauth.User
		for i := range users {
			if users[i].ID == uf.ID {
				current = &users[i]
				break
			}
		}
		if current == nil {
			return fmt.Errorf("user %q not found in this tenant", uf.ID)
		}

		req := model.TenantUserRequest{
			Name:     current.Name,
			Email:    current.Email,
			Role:     current.Role,
			IsActive: current.IsActive,
		}
		if seen["name"] {
			req.Name = strings.TrimSpace(uf.Req.Name)
		}
		if seen["email"] {
			req.Email = strings.TrimSpace(uf.Req.Email)
		}
		if seen["password"] {
			req.Password = uf.Req.Password
		}
		if seen["role"] {
			req.Role = domainauth.Role(strings.ToUpper(strings.TrimSpace(uf.Role)))
		}
		if seen["active"] {
			req.IsActive = uf.Req.IsActive
		}

		fv := validation.New().
			Validate("name", req.Name, validation.Required("Name", 100)).
			Validate("email", req.Email, validation.Email("Email")).
			Validate("role", string(req.Role), roleValidator())
		if req.Password != "" {
			fv.Validate("password", req.Password, validation.MinLength("Password", minPasswordLength))
		}
		if err = fieldErrors(fv); err != nil {
			return err
		}

		u, err := s.api.UpdateTenantUser(ctx, uf.ID, req)
		if err != nil {
			return apiFailure(err, "update user")
		}
		return printUsers(cmdCtx, out, []domainauth.User{u})
	})
}
