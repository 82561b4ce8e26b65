package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config Application Configuration
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	API    APIConfig    `mapstructure:"api"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Store  StoreConfig  `mapstructure:"store"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
}

// AppConfig Application Configuration
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"` // development, staging, production
}

// APIConfig Backend API client configuration
type APIConfig struct {
	BaseURL   string          `mapstructure:"base_url"`
	Timeout   time.Duration   `mapstructure:"timeout"`
	UserAgent string          `mapstructure:"user_agent"`
	Retry     RetryConfig     `mapstructure:"retry"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RetryConfig Retry configuration for outgoing requests
type RetryConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	MaxRetries         int           `mapstructure:"max_retries"`
	BaseDelay          time.Duration `mapstructure:"base_delay"` // delay = 2^attempt * base_delay
	MaxDelay           time.Duration `mapstructure:"max_delay"`
	RetryNonIdempotent bool          `mapstructure:"retry_non_idempotent"`
}

// RateLimitConfig Rate Limiting Configuration
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Rate    float64 `mapstructure:"rate"`  // Requests per second
	Burst   int     `mapstructure:"burst"` // Burst capacity
}

// AuthConfig Credential persistence
type AuthConfig struct {
	TokenStore string `mapstructure:"token_store"` // memory, file
	TokenFile  string `mapstructure:"token_file"`
}

// StoreConfig State container tuning
type StoreConfig struct {
	PageSize          int           `mapstructure:"page_size"`
	SearchDebounce    time.Duration `mapstructure:"search_debounce"`
	UploadConcurrency int           `mapstructure:"upload_concurrency"`
}

// LogConfig Log Configuration
type LogConfig struct {
	Level    string `mapstructure:"level"`  // debug, info, warn, error
	Format   string `mapstructure:"format"` // json, console
	Output   string `mapstructure:"output"` // stdout, file
	FilePath string `mapstructure:"file_path"`
}

// ServerConfig Mock backend server configuration
type ServerConfig struct {
	Port            string          `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
	CORS            CORSConfig      `mapstructure:"cors"`
	DevOTP          string          `mapstructure:"dev_otp"`
}

// CORSConfig CORS Configuration
type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// IsDevelopment Whether it's development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction Whether it's production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Validate rejects settings the client cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, errors.New("api.base_url is required"))
	}
	if c.API.Retry.MaxRetries < 0 {
		errs = append(errs, errors.New("api.retry.max_retries must not be negative"))
	}
	if c.Store.PageSize <= 0 {
		errs = append(errs, errors.New("store.page_size must be positive"))
	}
	if c.Store.UploadConcurrency <= 0 {
		errs = append(errs, errors.New("store.upload_concurrency must be positive"))
	}
	switch c.Auth.TokenStore {
	case "memory":
	case "file":
		if c.Auth.TokenFile == "" {
			errs = append(errs, errors.New("auth.token_file is required for the file token store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown auth.token_store %q", c.Auth.TokenStore))
	}
	return errors.Join(errs...)
}

// Load Load Configuration
func Load(configPath string) (*Config, error) {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Configuration file settings
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Read environment variables
	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read configuration file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Use default values when config file doesn't exist
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	// Defaults are literals of the right types, decoding cannot fail.
	_ = v.Unmarshal(&config)
	return &config
}

// setDefaults Set default configuration
func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "backoffice")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.env", "development")

	// API client
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.timeout", "30s") // per attempt; 0 disables it
	v.SetDefault("api.user_agent", "backoffice/1.0")
	v.SetDefault("api.retry.enabled", true)
	v.SetDefault("api.retry.max_retries", 3)
	v.SetDefault("api.retry.base_delay", "1s")
	v.SetDefault("api.retry.max_delay", "30s")
	v.SetDefault("api.retry.retry_non_idempotent", false)
	v.SetDefault("api.rate_limit.enabled", false)
	v.SetDefault("api.rate_limit.rate", 20)
	v.SetDefault("api.rate_limit.burst", 40)

	// Auth
	v.SetDefault("auth.token_store", "file")
	v.SetDefault("auth.token_file", ".backoffice/tokens.yaml")

	// Store
	v.SetDefault("store.page_size", 30)
	v.SetDefault("store.search_debounce", "200ms")
	v.SetDefault("store.upload_concurrency", 4)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/backoffice.log")

	// Mock server
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.rate", 100)
	v.SetDefault("server.rate_limit.burst", 200)
	v.SetDefault("server.dev_otp", "1234")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.cors.allow_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors.allow_headers", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "Idempotency-Key"})
	v.SetDefault("server.cors.allow_credentials", true)
	v.SetDefault("server.cors.max_age", 86400)
}
