package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Logging     LoggingConfig  `toml:"logging"`
	Provider    ProviderConfig `toml:"provider"`
	Cache       CacheConfig    `toml:"cache"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=1,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type LoggingConfig struct {
	Level      string   `toml:"level" validate:"oneof=debug info warn error"` // "debug", "info", "warn", "error"
	Format     string   `toml:"format" validate:"oneof=text json"`           // "json" or "text"
	Output     []string `toml:"output"`                                      // "stdout", "file"
	TimeFormat string   `toml:"time_format"`                                 // Time format for logs
}

// ProviderConfig contains market data provider settings
type ProviderConfig struct {
	BaseURL            string        `toml:"base_url" validate:"required,url"`
	UserAgent          string        `toml:"user_agent"`           // User-Agent header sent on every provider request
	RequestTimeout     time.Duration `toml:"request_timeout"`      // HTTP request timeout
	RateLimit          int           `toml:"rate_limit"`           // Max provider requests per second (client-level limiter)
	MinRequestInterval time.Duration `toml:"min_request_interval"` // Shared gate: minimum time between provider fetches
	MaxRetries         int           `toml:"max_retries" validate:"gte=0,lte=10"`
	HistoryRange       string        `toml:"history_range" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"` // Price history range
}

// CacheConfig contains response cache settings
type CacheConfig struct {
	TTL           time.Duration `toml:"ttl"`            // How long a fetched snapshot stays fresh
	SweepSchedule string        `toml:"sweep_schedule"` // Cron schedule for evicting expired entries
}

// NewDefaultConfig returns the default configuration
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout", "file"},
			TimeFormat: "15:04:05.000",
		},
		Provider: ProviderConfig{
			BaseURL:            "https://query1.finance.yahoo.com",
			UserAgent:          "Mizan/1.0 (+https://github.com/ternarybob/mizan)",
			RequestTimeout:     30 * time.Second,
			RateLimit:          5,
			MinRequestInterval: 2 * time.Second,
			MaxRetries:         3,
			HistoryRange:       "1y",
		},
		Cache: CacheConfig{
			TTL:           15 * time.Minute,
			SweepSchedule: "*/5 * * * *", // Every 5 minutes
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env -> CLI.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against struct-level constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("MIZAN_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("MIZAN_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("MIZAN_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Logging configuration
	if level := os.Getenv("MIZAN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("MIZAN_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}

	// Provider configuration
	if baseURL := os.Getenv("MIZAN_PROVIDER_BASE_URL"); baseURL != "" {
		config.Provider.BaseURL = baseURL
	}
	if userAgent := os.Getenv("MIZAN_PROVIDER_USER_AGENT"); userAgent != "" {
		config.Provider.UserAgent = userAgent
	}
	if interval := os.Getenv("MIZAN_PROVIDER_MIN_REQUEST_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			config.Provider.MinRequestInterval = d
		}
	}
	if retries := os.Getenv("MIZAN_PROVIDER_MAX_RETRIES"); retries != "" {
		if r, err := strconv.Atoi(retries); err == nil {
			config.Provider.MaxRetries = r
		}
	}

	// Cache configuration
	if ttl := os.Getenv("MIZAN_CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			config.Cache.TTL = d
		}
	}
	if schedule := os.Getenv("MIZAN_CACHE_SWEEP_SCHEDULE"); schedule != "" {
		config.Cache.SweepSchedule = schedule
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config
func ApplyFlagOverrides(config *Config, port int, host string) {
	// Command-line flags have highest priority
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
