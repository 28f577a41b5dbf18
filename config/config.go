package config

import (
	"fmt"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Remote dashboard API configuration
//   - session.go: Session cookie and credential store configuration
//   - redis.go: Redis configuration
//   - http.go: HTTP server configuration
//   - cli.go: Operator CLI configuration
type AppConfig struct {
	// IsDev controls development mode behavior (insecure cookies, template reloading).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Remote API configuration
	API APIConfig

	// Session configuration
	Session SessionConfig

	// Redis configuration
	Redis RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig

	// CLI configuration
	CLI CLIConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Session.Sanitize()
	c.HTTP.Sanitize()
	c.CLI.Sanitize()
	c.Observability.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// Validate reports configuration that Sanitize cannot repair.
func (c *AppConfig) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.HTTP.Validate(); err != nil {
		return err
	}
	if c.Session.Store == CredentialStoreFile {
		return fmt.Errorf("invalid SESSION_STORE %q: the web server supports cookie or redis", c.Session.Store)
	}
	return nil
}

// IsProduction reports whether production-only behavior (Secure cookies) applies.
func (c *AppConfig) IsProduction() bool { return !c.IsDev }

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
