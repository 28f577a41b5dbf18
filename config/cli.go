package config

import (
	"os"
	"path/filepath"
	"strings"
)

// CLIConfig controls where shopdash-admin keeps its credentials.
type CLIConfig struct {
	// Profile names the credential scope; one token per profile.
	Profile string `env:"SHOPDASH_PROFILE" envDefault:"default"`

	// ConfigDir holds credentials.json. Defaults to the user config dir.
	ConfigDir string `env:"SHOPDASH_CONFIG_DIR"`

	// CredentialStore selects file (default) or redis.
	CredentialStore CredentialStoreKind `env:"SHOPDASH_CREDENTIAL_STORE" envDefault:"file"`
}

// Sanitize fills the profile and config dir defaults.
func (c *CLIConfig) Sanitize() {
	if c.Profile = strings.TrimSpace(c.Profile); c.Profile == "" {
		c.Profile = "default"
	}
	if c.CredentialStore == "" || c.CredentialStore == CredentialStoreCookie {
		c.CredentialStore = CredentialStoreFile
	}
	c.ConfigDir = strings.TrimSpace(c.ConfigDir)
	if c.ConfigDir == "" {
		c.ConfigDir = defaultConfigDir()
	}
}

func defaultConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "shopdash")
	}
	return ".shopdash"
}
