package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the jobmatch API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Matching MatchingConfig `yaml:"matching"`
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds key-value store connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CatalogConfig selects where job postings live.
type CatalogConfig struct {
	Backend     string `yaml:"backend"` // redis, postgres (default: redis)
	PostgresDSN string `yaml:"postgres_dsn"`
	PageSize    int    `yaml:"page_size"`
	OnlyActive  *bool  `yaml:"only_active"`
}

// MatchingConfig holds ranking and state machine settings.
type MatchingConfig struct {
	Threshold         int  `yaml:"threshold"`
	StrictTransitions bool `yaml:"strict_transitions"`
}

// AnalyzerConfig holds CV-analysis provider settings.
type AnalyzerConfig struct {
	Provider   string  `yaml:"provider"` // ml_service, openai, none (default: ml_service)
	BaseURL    string  `yaml:"base_url"`
	TimeoutSec int     `yaml:"timeout_sec"`
	RateLimit  float64 `yaml:"rate_limit_rps"` // 0 = unlimited
	RateBurst  int     `yaml:"rate_burst"`
	// CacheTTLSec keeps analyses of identical CV files. 0 = 7 days, negative disables.
	CacheTTLSec int `yaml:"cache_ttl_sec"`
}

// CacheEnabled reports whether analyses are cached.
func (a AnalyzerConfig) CacheEnabled() bool { return a.CacheTTLSec >= 0 }

// OpenAIConfig holds settings for the LLM keyword provider.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// AlertsConfig holds job alert scheduler settings.
type AlertsConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Schedule    string `yaml:"schedule"`
	LookbackSec int    `yaml:"lookback_sec"`
	Threshold   int    `yaml:"threshold"`
	FeedLength  int    `yaml:"feed_length"`
}

// Analyzer providers.
const (
	ProviderMLService = "ml_service"
	ProviderOpenAI    = "openai"
	ProviderNone      = "none"
)

// Catalog backends.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// ActiveOnly reports whether catalog listings are restricted to active jobs.
func (c CatalogConfig) ActiveOnly() bool {
	return c.OnlyActive == nil || *c.OnlyActive
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "valkey"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Catalog.Backend == "" {
		c.Catalog.Backend = BackendRedis
	}
	if c.Catalog.PageSize <= 0 {
		c.Catalog.PageSize = 100
	}
	if c.Matching.Threshold <= 0 {
		c.Matching.Threshold = 30
	}
	if c.Analyzer.Provider == "" {
		c.Analyzer.Provider = ProviderMLService
	}
	if c.Analyzer.TimeoutSec <= 0 {
		c.Analyzer.TimeoutSec = 180
	}
	if c.Analyzer.RateBurst <= 0 {
		c.Analyzer.RateBurst = 1
	}
	if c.Analyzer.CacheTTLSec == 0 {
		c.Analyzer.CacheTTLSec = 7 * 24 * 3600
	}
	// CV uploads wait for the analyzer inside the request.
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = c.Analyzer.TimeoutSec + 20
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Alerts.Schedule == "" {
		c.Alerts.Schedule = "@every 1h"
	}
	if c.Alerts.LookbackSec <= 0 {
		c.Alerts.LookbackSec = 86400
	}
	if c.Alerts.Threshold <= 0 {
		c.Alerts.Threshold = c.Matching.Threshold
	}
	if c.Alerts.FeedLength <= 0 {
		c.Alerts.FeedLength = 200
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	switch c.Catalog.Backend {
	case BackendRedis:
	case BackendPostgres:
		if c.Catalog.PostgresDSN == "" {
			return fmt.Errorf("catalog.postgres_dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("catalog.backend must be \"redis\" or \"postgres\", got %q", c.Catalog.Backend)
	}
	if c.Matching.Threshold > 100 {
		return fmt.Errorf("matching.threshold must be at most 100, got %d", c.Matching.Threshold)
	}
	if c.Alerts.Threshold > 100 {
		return fmt.Errorf("alerts.threshold must be at most 100, got %d", c.Alerts.Threshold)
	}
	switch c.Analyzer.Provider {
	case ProviderMLService:
		if c.Analyzer.BaseURL == "" {
			return fmt.Errorf("analyzer.base_url is required for the ml_service provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key is required for the openai provider")
		}
	case ProviderNone:
	default:
		return fmt.Errorf(
			"analyzer.provider must be \"ml_service\", \"openai\" or \"none\", got %q",
			c.Analyzer.Provider,
		)
	}
	if c.Analyzer.RateLimit < 0 {
		return fmt.Errorf("analyzer.rate_limit_rps must not be negative")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
