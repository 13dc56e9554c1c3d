package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load
const EnvPrefix = "PANTRYPAL"

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Matching  MatchingConfig  `mapstructure:"matching"`
	Steps     StepsConfig     `mapstructure:"steps"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig locates the icon catalog. A URL takes precedence over the
// bundled file.
type CatalogConfig struct {
	Path          string `mapstructure:"path"`
	URL           string `mapstructure:"url"`
	AssetBasePath string `mapstructure:"asset_base_path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration, in requests per minute
type RateLimitConfig struct {
	PerIP   int `mapstructure:"per_ip"`
	Catalog int `mapstructure:"catalog"`
}

// MatchingConfig tunes icon matching
type MatchingConfig struct {
	MinScore           int  `mapstructure:"min_score"`
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// StepsConfig is the display length band for recipe steps
type StepsConfig struct {
	MinLength int `mapstructure:"min_length"`
	MaxLength int `mapstructure:"max_length"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from an optional .env file, environment
// variables and an optional config.yaml
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pantrypal/")

	// Environment variable settings: PANTRYPAL_CACHE_REDIS_URL -> cache.redis_url
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default for AutomaticEnv to reach it during Unmarshal
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads .env from the working directory without overriding
// variables already set. A missing file is not an error.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading .env file: %w", err)
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.path", "data/catalog.json")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.asset_base_path", "/icons")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.catalog", 60)

	// Matching defaults
	v.SetDefault("matching.min_score", 200)
	v.SetDefault("matching.enable_debug_logging", false)

	// Step defaults
	v.SetDefault("steps.min_length", 140)
	v.SetDefault("steps.max_length", 180)

	// Log defaults
	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Path == "" && config.Catalog.URL == "" {
		return fmt.Errorf("a catalog source is required (set PANTRYPAL_CATALOG_PATH or PANTRYPAL_CATALOG_URL)")
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP <= 0 || config.RateLimit.Catalog <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}

	if config.Matching.MinScore <= 0 {
		return fmt.Errorf("matching min score must be positive, got: %d", config.Matching.MinScore)
	}

	if config.Steps.MinLength <= 0 || config.Steps.MinLength >= config.Steps.MaxLength {
		return fmt.Errorf("steps min_length (%d) must be positive and below max_length (%d)",
			config.Steps.MinLength, config.Steps.MaxLength)
	}

	return nil
}
