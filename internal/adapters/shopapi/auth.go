package shopapi

import (
	"context"

	domainauth "github.com/shopdash/shopdash-ui/internal/domain/auth"
)

// Login exchanges credentials for a token. It does not change the client token.
func (c *Client) Login(ctx context.Context, in domainauth.LoginInput) (domainauth.AuthResult, error) {
	var out domainauth.AuthResult
	if err := c.Post(ctx, "/auth/login", in, &out); err != nil {
		return domainauth.AuthResult{}, err
	}
	return out, nil
}

// Register creates a user and tenant and returns a token for them.
func (c *Client) Register(ctx context.Context, in domainauth.RegisterInput) (domainauth.AuthResult, error) {
	var out domainauth.AuthResult
	if err := c.Post(ctx, "/auth/register", in, &out); err != nil {
		return domainauth.AuthResult{}, err
	}
	return out, nil
}

// Profile loads the user and tenant behind the current token.
func (c *Client) Profile(ctx context.Context) (domainauth.Profile, error) {
	var out domainauth.Profile
	if err := c.Get(ctx, "/auth/profile", nil, &out); err != nil {
		return domainauth.Profile{}, err
	}
	return out, nil
}

// RefreshToken asks the API for a fresh token. The session flow never calls it.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.Post(ctx, "/auth/refresh", nil, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}
