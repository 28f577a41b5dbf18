package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents a dashboard user's role within a tenant.
// The API sends the upper-case form.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// IsAdmin reports whether the role grants tenant administration.
func (r Role) IsAdmin() bool { return strings.EqualFold(string(r), string(RoleAdmin)) }

// User is the read-only snapshot of the authenticated principal.
// The authoritative copy lives server-side.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      Role       `json:"role"`
	IsActive  bool       `json:"isActive,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// TenantStats carries record counts the API attaches to the current tenant.
type TenantStats struct {
	Customers int `json:"customers"`
	Products  int `json:"products"`
	Orders    int `json:"orders"`
	Users     int `json:"users"`
}

// Tenant is the store context a session operates in.
// Refreshed on login, register and profile load only.
type Tenant struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	ShopifyDomain   string       `json:"shopifyDomain"`
	HasShopifyToken bool         `json:"hasShopifyToken"`
	IsActive        bool         `json:"isActive,omitempty"`
	Stats           *TenantStats `json:"stats,omitempty"`
	CreatedAt       *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time   `json:"updatedAt,omitempty"`
}

// Credential is a persisted bearer token with its intended expiry.
type Credential struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the credential is past its expiry at now.
// A zero ExpiresAt never expires.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// LoginInput carries the credentials for POST /auth/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput carries the payload for POST /auth/register.
type RegisterInput struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	Name          string `json:"name"`
	TenantName    string `json:"tenantName"`
	ShopifyDomain string `json:"shopifyDomain"`
}

// AuthResult is the body returned by login and register.
type AuthResult struct {
	Token  string  `json:"token"`
	User   *User   `json:"user"`
	Tenant *Tenant `json:"tenant"`
}

// Profile is the body returned by GET /auth/profile.
type Profile struct {
	User   *User   `json:"user"`
	Tenant *Tenant `json:"tenant"`
}
