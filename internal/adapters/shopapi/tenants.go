package shopapi

import (
	"context"
	"net/url"

	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
	"github.com/shopdash/shopdash-ui/internal/domain/model"
)

// CurrentTenant loads the tenant of the authenticated user.
func (c *Client) CurrentTenant(ctx context.Context) (domainauth.Tenant, error) {
	var out domainauth.Tenant
	if err := c.Get(ctx, "/tenants/current", nil, &out); err != nil {
		return domainauth.Tenant{}, err
	}
	return out, nil
}

// UpdateShopifyConfig stores the Shopify access token for the tenant.
func (c *Client) UpdateShopifyConfig(ctx context.Context, req model.ShopifyConfigRequest) (domainauth.Tenant, error) {
	var out domainauth.Tenant
	if err := c.Put(ctx, "/tenants/shopify-config", req, &out); err != nil {
		return domainauth.Tenant{}, err
	}
	return out, nil
}

// TestShopifyConnection asks the API to probe the configured shop.
func (c *Client) TestShopifyConnection(ctx context.Context) (model.ShopifyTestResult, error) {
	var out model.ShopifyTestResult
	if err := c.Post(ctx, "/tenants/test-shopify", nil, &out); err != nil {
		return model.ShopifyTestResult{}, err
	}
	return out, nil
}

// UpdateTenantSettings updates the tenant name, domain and active flag.
func (c *Client) UpdateTenantSettings(ctx context.Context, req model.TenantSettingsRequest) (domainauth.Tenant, error) {
	req.Normalize()
	var out domainauth.Tenant
	if err := c.Put(ctx, "/tenants/settings", req, &out); err != nil {
		return domainauth.Tenant{}, err
	}
	return out, nil
}

// ListTenantUsers lists users of the current tenant.
func (c *Client) ListTenantUsers(ctx context.Context) ([]domainauth.User, error) {
	var out model.TenantUsers
	if err := c.Get(ctx, "/tenants/users", nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

// CreateTenantUser adds a user to the current tenant.
func (c *Client) CreateTenantUser(ctx context.Context, req model.TenantUserRequest) (domainauth.User, error) {
	var out domainauth.User
	if err := c.Post(ctx, "/tenants/users", req, &out); err != nil {
		return domainauth.User{}, err
	}
	return out, nil
}

// UpdateTenantUser updates a user of the current tenant.
func (c *Client) UpdateTenantUser(ctx context.Context, userID string, req model.TenantUserRequest) (domainauth.User, error) {
	var out domainauth.User
	if err := c.Put(ctx, "/tenants/users/"+url.PathEscape(userID), req, &out); err != nil {
		return domainauth.User{}, err
	}
	return out, nil
}
