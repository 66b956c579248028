package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for consumables-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"0.0.0.0"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// BaseURL is the public base URL advertised to the frontend via /config.js.
	// If empty, it is derived per request from Host and X-Forwarded-Proto.
	BaseURL string `yaml:"base_url" env:"BASE_URL" env-default:""`

	// ShutdownTimeoutSeconds bounds graceful shutdown on SIGINT/SIGTERM.
	ShutdownTimeoutSeconds int `yaml:"shutdown_timeout_seconds" env:"SHUTDOWN_TIMEOUT_SECONDS" env-default:"10"`

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Redis configuration (optional suggestion cache)
	Redis RedisConfig `yaml:"redis"`

	// Search and suggestion tuning
	Search SearchConfig `yaml:"search"`

	// HTTP surface configuration (CORS, static directories)
	HTTP HTTPConfig `yaml:"http"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"postgres"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"consumables_engine"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MigrationsPath string `yaml:"migrations_path" env:"PGMIGRATIONS_PATH" env-default:"migrations"`
}

// RedisConfig holds Redis configuration for the optional suggestion cache.
// An empty host disables caching entirely.
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`

	// SuggestionTTLSeconds is how long cached suggestion responses live.
	SuggestionTTLSeconds int `yaml:"suggestion_ttl_seconds" env:"REDIS_SUGGESTION_TTL_SECONDS" env-default:"60"`
}

// SearchConfig holds tuning knobs for the search and suggestion endpoints.
type SearchConfig struct {
	// MinQueryLength is the minimum trimmed query length for suggestions.
	// Shorter queries return an empty list rather than an error.
	MinQueryLength int `yaml:"min_query_length" env:"SEARCH_MIN_QUERY_LENGTH" env-default:"2"`

	// DefaultLimit is used when the limit parameter is absent.
	DefaultLimit int `yaml:"default_limit" env:"SEARCH_DEFAULT_LIMIT" env-default:"10"`

	// MaxLimit caps the limit parameter to bound response size.
	MaxLimit int `yaml:"max_limit" env:"SEARCH_MAX_LIMIT" env-default:"50"`

	// SimilarityCutoff is the minimum pg_trgm similarity score for the
	// fuzzy suggestion tier. Candidates scoring below it are omitted.
	SimilarityCutoff float64 `yaml:"similarity_cutoff" env:"SEARCH_SIMILARITY_CUTOFF" env-default:"0.3"`
}

// HTTPConfig holds CORS and static-serving configuration.
type HTTPConfig struct {
	// CORSAllowedOriginsStr is a comma-separated origin list. "*" allows all.
	CORSAllowedOriginsStr string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`

	// CORSAllowedOrigins is the parsed list from CORSAllowedOriginsStr (not from config file).
	CORSAllowedOrigins []string `yaml:"-"`

	// AssetsDir is an optional directory served at /assets/ (contractor photos).
	AssetsDir string `yaml:"assets_dir" env:"ASSETS_DIR" env-default:""`

	// FrontendDir is an optional prebuilt frontend directory served at /.
	FrontendDir string `yaml:"frontend_dir" env:"FRONTEND_DIR" env-default:""`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level    string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
// Environment variables override YAML values. Secrets (PGPASSWORD,
// REDIS_PASSWORD) must come from environment variables (yaml:"-" fields).
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	// Load config from YAML file with environment variable overrides
	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.parseComplexFields(); err != nil {
		return nil, fmt.Errorf("failed to parse config fields: %w", err)
	}

	if err := cfg.Search.validate(); err != nil {
		return nil, fmt.Errorf("invalid search configuration: %w", err)
	}

	return cfg, nil
}

// parseComplexFields handles fields that need post-processing after loading.
func (c *Config) parseComplexFields() error {
	c.HTTP.CORSAllowedOrigins = splitAndTrim(c.HTTP.CORSAllowedOriginsStr)
	return nil
}

// validate rejects search tunings that would break the endpoint contracts.
func (c *SearchConfig) validate() error {
	if c.MinQueryLength < 1 {
		return fmt.Errorf("min_query_length must be at least 1, got %d", c.MinQueryLength)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	if c.SimilarityCutoff <= 0 || c.SimilarityCutoff > 1 {
		return fmt.Errorf("similarity_cutoff must be in (0,1], got %g", c.SimilarityCutoff)
	}
	return nil
}

// splitAndTrim parses a comma-separated list into trimmed non-empty entries.
func splitAndTrim(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ShutdownTimeout returns the graceful shutdown bound as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// SuggestionTTL returns the cache TTL as a duration.
func (c *RedisConfig) SuggestionTTL() time.Duration {
	return time.Duration(c.SuggestionTTLSeconds) * time.Second
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		ResolveHostForDocker(c.Host), c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
