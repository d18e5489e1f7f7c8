package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Verify    VerifyConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds vision provider configuration
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// VerifyConfig holds the tuning knobs for label verification
type VerifyConfig struct {
	FuzzyThreshold     int     `mapstructure:"fuzzy_threshold"`
	CategoryFloor      float64 `mapstructure:"category_floor"`
	ABVTolerance       float64 `mapstructure:"abv_tolerance"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// CacheConfig holds extraction cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/labelcheck/")

	v.SetEnvPrefix("LABELCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file into the process environment if one
// exists in the working directory. A missing file is not an error.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Registering the key (even empty) lets AutomaticEnv surface it
	// through Unmarshal.
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")

	v.SetDefault("verify.fuzzy_threshold", 80)
	v.SetDefault("verify.category_floor", 65.0)
	v.SetDefault("verify.abv_tolerance", 0.5)
	v.SetDefault("verify.enable_debug_logging", false)

	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("ratelimit.per_ip", 30)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Gemini.APIKey == "" {
		return fmt.Errorf("gemini API key is required (set LABELCHECK_GEMINI_API_KEY)")
	}

	if config.Verify.FuzzyThreshold < 1 || config.Verify.FuzzyThreshold > 100 {
		return fmt.Errorf("fuzzy threshold must be in 1..100, got: %d", config.Verify.FuzzyThreshold)
	}

	if config.Verify.CategoryFloor < 0 || config.Verify.CategoryFloor > 100 {
		return fmt.Errorf("category floor must be in 0..100, got: %.1f", config.Verify.CategoryFloor)
	}

	if config.Verify.ABVTolerance < 0 {
		return fmt.Errorf("ABV tolerance must be non-negative, got: %.2f", config.Verify.ABVTolerance)
	}

	return nil
}
