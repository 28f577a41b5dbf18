package config

import (
	"reflect"
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.URL != "http://localhost:3001" {
		t.Errorf("API.URL = %q, want default", cfg.API.URL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("API.Timeout = %v, want 30s", cfg.API.Timeout)
	}
	if cfg.Session.CookieName != "authToken" {
		t.Errorf("Session.CookieName = %q, want authToken", cfg.Session.CookieName)
	}
	if cfg.Session.TTL() != 7*24*time.Hour {
		t.Errorf("Session.TTL() = %v, want 7 days", cfg.Session.TTL())
	}
	if cfg.Session.Store != CredentialStoreCookie {
		t.Errorf("Session.Store = %q, want cookie", cfg.Session.Store)
	}
	if cfg.CLI.CredentialStore != CredentialStoreFile {
		t.Errorf("CLI.CredentialStore = %q, want file", cfg.CLI.CredentialStore)
	}
	if cfg.CLI.Profile != "default" || cfg.CLI.ConfigDir == "" {
		t.Errorf("unexpected CLI defaults: %+v", cfg.CLI)
	}
	if !cfg.IsProduction() {
		t.Errorf("expected production by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("API_URL", " https://api.example.com/ ")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("SESSION_COOKIE_NAME", "sd")
	t.Setenv("SESSION_TTL_DAYS", "2")
	t.Setenv("SESSION_STORE", "REDIS")
	t.Setenv("REDIS_URI", "redis://cache:6379/0")
	t.Setenv("SHOPDASH_PROFILE", "staging")
	t.Setenv("SHOPDASH_CONFIG_DIR", "/tmp/sd")
	t.Setenv("SHOPDASH_CREDENTIAL_STORE", "redis")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.API.URL != "https://api.example.com" {
		t.Errorf("API.URL = %q", cfg.API.URL)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Errorf("API.Timeout = %v", cfg.API.Timeout)
	}
	expectedSession := SessionConfig{
		CookieName:  "sd",
		TTLDays:     2,
		Store:       CredentialStoreRedis,
		RedisPrefix: "shopdash:credential:",
	}
	if !reflect.DeepEqual(cfg.Session, expectedSession) {
		t.Fatalf("unexpected session configuration:\nexpected: %#v\ngot:      %#v", expectedSession, cfg.Session)
	}
	if cfg.Redis.URI != "redis://cache:6379/0" {
		t.Errorf("Redis.URI = %q", cfg.Redis.URI)
	}
	expectedCLI := CLIConfig{Profile: "staging", ConfigDir: "/tmp/sd", CredentialStore: CredentialStoreRedis}
	if !reflect.DeepEqual(cfg.CLI, expectedCLI) {
		t.Fatalf("unexpected cli configuration:\nexpected: %#v\ngot:      %#v", expectedCLI, cfg.CLI)
	}
}

func TestAppConfig_InvalidStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "memcached")

	var cfg AppConfig
	err := env.Parse(&cfg)
	if err == nil {
		t.Fatal("expected parse error for unknown store")
	}
	if !strings.Contains(err.Error(), "invalid credential store") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAppConfig_ValidateRejectsFileStoreForServer(t *testing.T) {
	cfg := AppConfig{Session: SessionConfig{Store: CredentialStoreFile}}
	cfg.Sanitize()
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected file store to be rejected for the web server")
	}
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	tests := []struct {
		nodeEnv string
		want    bool
	}{
		{"development", true},
		{"DEV", true},
		{"production", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.nodeEnv, func(t *testing.T) {
			t.Setenv("NODE_ENV", tt.nodeEnv)
			cfg := AppConfig{}
			cfg.Sanitize()
			if cfg.IsDev != tt.want {
				t.Errorf("IsDev = %v, want %v", cfg.IsDev, tt.want)
			}
		})
	}
}

func TestAPIConfig_Validate(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:3001", false},
		{"https://api.example.com", false},
		{"localhost:3001", true},
		{"ftp://api.example.com", true},
		{"https://", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			cfg := APIConfig{URL: tt.url}
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCookieDomain(t *testing.T) {
	tests := []struct {
		domain  string
		wantErr bool
	}{
		{"", false},
		{"localhost", false},
		{"app.example.com", false},
		{"example.co.uk", false},
		{"com", true},
		{"co.uk", true},
		{"myshopify.com", true},
		{"example.com:8080", true},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			if err := ValidateCookieDomain(tt.domain); (err != nil) != tt.wantErr {
				t.Errorf("ValidateCookieDomain(%q) error = %v, wantErr %v", tt.domain, err, tt.wantErr)
			}
		})
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{CompressionLevel: 42, CookieDomain: " .App.Example.com ", BaseURL: "https://app.example.com/"}
	cfg.Sanitize()
	if cfg.CompressionLevel != 9 {
		t.Errorf("CompressionLevel = %d, want 9", cfg.CompressionLevel)
	}
	if cfg.CookieDomain != "app.example.com" {
		t.Errorf("CookieDomain = %q", cfg.CookieDomain)
	}
	if cfg.BaseURL != "https://app.example.com" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
}

func TestSessionConfig_Sanitize(t *testing.T) {
	cfg := SessionConfig{TTLDays: -1}
	cfg.Sanitize()
	if cfg.TTL() != 7*24*time.Hour || cfg.CookieName != "authToken" || cfg.Store != CredentialStoreCookie {
		t.Errorf("unexpected sanitized session config: %+v", cfg)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
		Prefix:        ".shopdash.",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
	if cfg.Prefix != "shopdash" {
		t.Fatalf("expected prefix dots trimmed, got %q", cfg.Prefix)
	}
}
