//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"

	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
)

// ShopifyConfigRequest is the body for PUT /tenants/shopify-config.
type ShopifyConfigRequest struct {
	ShopifyAccessToken string `json:"shopifyAccessToken"`
	APIKey             string `json:"apiKey,omitempty"`
}

// TenantSettingsRequest is the body for PUT /tenants/settings.
type TenantSettingsRequest struct {
	Name          string `json:"name"`
	ShopifyDomain string `json:"shopifyDomain"`
	IsActive      bool   `json:"isActive"`
}

// Normalize trims whitespace and lower-cases the shop domain.
func (r *TenantSettingsRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ShopifyDomain = strings.ToLower(strings.TrimSpace(r.ShopifyDomain))
}

// ShopifyTestResult is the body returned by POST /tenants/test-shopify.
type ShopifyTestResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	ShopName string `json:"shopName,omitempty"`
}

// TenantUserRequest is the body for creating or updating a tenant user.
type TenantUserRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password,omitempty"`
	Role     domainauth.Role `json:"role"`
	IsActive bool            `json:"isActive"`
}

// TenantUsers wraps GET /tenants/users.
type TenantUsers struct {
	Users []domainauth.User `json:"users"`
}
