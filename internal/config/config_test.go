package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
		Catalog:  CatalogConfig{Backend: BackendRedis},
		Analyzer: AnalyzerConfig{Provider: ProviderMLService, BaseURL: "http://ml:5000"},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing addrs")
	}
}

func TestValidate_CatalogBackend(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		dsn     string
		wantErr bool
	}{
		{"redis", BackendRedis, "", false},
		{"postgres with dsn", BackendPostgres, "postgres://localhost/jobs", false},
		{"postgres without dsn", BackendPostgres, "", true},
		{"unknown", "mongo", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Catalog.Backend = tt.backend
			cfg.Catalog.PostgresDSN = tt.dsn

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_AnalyzerProvider(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ml_service without url", func(c *Config) { c.Analyzer.BaseURL = "" }, true},
		{"openai with key", func(c *Config) {
			c.Analyzer.Provider = ProviderOpenAI
			c.OpenAI.APIKey = "sk-test"
		}, false},
		{"openai without key", func(c *Config) { c.Analyzer.Provider = ProviderOpenAI }, true},
		{"none", func(c *Config) { c.Analyzer.Provider = ProviderNone }, false},
		{"unknown", func(c *Config) { c.Analyzer.Provider = "magic" }, true},
		{"negative rate", func(c *Config) { c.Analyzer.RateLimit = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ThresholdRange(t *testing.T) {
	cfg := validConfig()
	cfg.Matching.Threshold = 101

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for threshold above 100")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Analyzer.TimeoutSec != 180 {
		t.Errorf("expected analyzer TimeoutSec=180, got %d", cfg.Analyzer.TimeoutSec)
	}
	if cfg.Analyzer.CacheTTLSec != 604800 || !cfg.Analyzer.CacheEnabled() {
		t.Errorf("expected a week of analysis cache, got %d", cfg.Analyzer.CacheTTLSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 200 {
		t.Errorf("expected WriteTimeoutSec=200, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("expected driver valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Catalog.Backend != BackendRedis {
		t.Errorf("expected catalog backend redis, got %q", cfg.Catalog.Backend)
	}
	if cfg.Catalog.PageSize != 100 {
		t.Errorf("expected PageSize=100, got %d", cfg.Catalog.PageSize)
	}
	if !cfg.Catalog.ActiveOnly() {
		t.Error("expected catalog to default to active only")
	}
	if cfg.Matching.Threshold != 30 {
		t.Errorf("expected Threshold=30, got %d", cfg.Matching.Threshold)
	}
	if cfg.Alerts.Threshold != 30 {
		t.Errorf("expected alert Threshold=30, got %d", cfg.Alerts.Threshold)
	}
	if cfg.Alerts.LookbackSec != 86400 {
		t.Errorf("expected LookbackSec=86400, got %d", cfg.Alerts.LookbackSec)
	}
	if cfg.Analyzer.Provider != ProviderMLService {
		t.Errorf("expected provider ml_service, got %q", cfg.Analyzer.Provider)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	inactive := false
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Catalog:  CatalogConfig{Backend: BackendPostgres, PageSize: 25, OnlyActive: &inactive},
		Matching: MatchingConfig{Threshold: 50},
		Alerts:   AlertsConfig{Threshold: 70, Schedule: "0 * * * *"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Catalog.PageSize != 25 {
		t.Errorf("expected PageSize=25, got %d", cfg.Catalog.PageSize)
	}
	if cfg.Catalog.ActiveOnly() {
		t.Error("expected only_active=false to be kept")
	}
	if cfg.Alerts.Threshold != 70 {
		t.Errorf("expected alert Threshold=70, got %d", cfg.Alerts.Threshold)
	}
	if cfg.Alerts.Schedule != "0 * * * *" {
		t.Errorf("expected schedule kept, got %q", cfg.Alerts.Schedule)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o750); err != nil {
		t.Fatal(err)
	}
	yaml := `
http:
  port: 8080
database:
  addrs: ["${JOBMATCH_TEST_ADDR:-localhost:6379}"]
analyzer:
  provider: none
auth:
  api_keys: ["${JOBMATCH_TEST_KEY}"]
`
	if err := os.WriteFile(filepath.Join(dir, "config", "unit.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("JOBMATCH_TEST_KEY", "secret")

	cfg, err := Load("unit")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Addrs[0] != "localhost:6379" {
		t.Errorf("expected default addr, got %q", cfg.Database.Addrs[0])
	}
	if len(cfg.Auth.APIKeys) != 1 || cfg.Auth.APIKeys[0] != "secret" {
		t.Errorf("expected expanded api key, got %v", cfg.Auth.APIKeys)
	}
}

func TestGetEnv_Default(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("expected local, got %q", got)
	}
}

func TestAnalyzerCacheDisabled(t *testing.T) {
	cfg := Config{Analyzer: AnalyzerConfig{CacheTTLSec: -1}}
	cfg.ApplyDefaults()

	if cfg.Analyzer.CacheEnabled() {
		t.Error("negative ttl must disable the cache")
	}
}
