package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	defaultAPIURL     = "http://localhost:3001"
	defaultAPITimeout = 30 * time.Second
)

// APIConfig points the session layer at the remote dashboard API.
type APIConfig struct {
	// URL is the API origin; requests go to URL + "/api".
	URL string `env:"API_URL" envDefault:"http://localhost:3001"`

	// Timeout bounds every outbound call.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`

	// UserAgent is sent on outbound requests when set.
	UserAgent string `env:"API_USER_AGENT" envDefault:"shopdash-ui"`
}

// Sanitize trims the URL and restores defaults for empty or invalid values.
func (a *APIConfig) Sanitize() {
	a.URL = strings.TrimRight(strings.TrimSpace(a.URL), "/")
	if a.URL == "" {
		a.URL = defaultAPIURL
	}
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
	a.UserAgent = strings.TrimSpace(a.UserAgent)
}

// Validate checks that URL is an absolute http(s) URL.
func (a *APIConfig) Validate() error {
	u, err := url.Parse(a.URL)
	if err != nil {
		return fmt.Errorf("invalid API_URL %q: %w", a.URL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API_URL %q: expected http(s)://host", a.URL)
	}
	return nil
}
