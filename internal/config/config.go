package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// MaxRetryDelay caps the backoff before a failed lead delivery is attempted again
	MaxRetryDelay = time.Minute
	// IntakeRetryMaxWait caps the pause between HTTP retries of one intake request
	IntakeRetryMaxWait = 5 * time.Second
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Session  SessionConfig  `mapstructure:"session"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Intake   IntakeConfig   `mapstructure:"intake"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int    `mapstructure:"port"`
	Host            string `mapstructure:"host"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // seconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// CatalogConfig points at an optional directory overriding the built-in content feed
type CatalogConfig struct {
	FeedDir string `mapstructure:"feed_dir"`
}

// SessionConfig controls where RFQ carts live and how long they survive
type SessionConfig struct {
	Driver       string `mapstructure:"driver"` // memory or redis
	TTL          int    `mapstructure:"ttl"`    // minutes of inactivity
	CookieName   string `mapstructure:"cookie_name"`
	SecureCookie bool   `mapstructure:"secure_cookie"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// RedisConfig holds Redis connection details
type RedisConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Password      string `mapstructure:"password"`
	Database      int    `mapstructure:"database"`
	ConsumerGroup string `mapstructure:"consumer_group"`
	MinIdleTime   int    `mapstructure:"min_idle_time"` // seconds
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// IntakeConfig holds the lead intake endpoint configuration
type IntakeConfig struct {
	Endpoints            []string `mapstructure:"endpoints"`
	APIKey               string   `mapstructure:"api_key"`
	Timeout              int      `mapstructure:"timeout"` // seconds
	MaxRetries           int      `mapstructure:"max_retries"`
	MaxAttempts          int      `mapstructure:"max_attempts"`
	RetryDelay           int      `mapstructure:"retry_delay"` // seconds, multiplied by the attempt number
	MaxWorkers           int      `mapstructure:"max_workers"`
	MaxRequestsPerSecond int      `mapstructure:"max_requests_per_second"`
	ProbeOnStart         bool     `mapstructure:"probe_on_start"`
}

// DeliveryBudget is the longest one delivery attempt can run: the primary endpoint and one
// fallback, each with its HTTP retries.
func (i IntakeConfig) DeliveryBudget() time.Duration {
	retries := time.Duration(max(i.MaxRetries, 0))
	perEndpoint := (retries+1)*time.Duration(i.Timeout)*time.Second + retries*IntakeRetryMaxWait
	return 2 * perEndpoint
}

// Load loads configuration from a YAML file with environment variable overrides.
// An empty path searches for config.yaml in the working directory; a missing file there is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	switch c.Session.Driver {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown session driver %q", c.Session.Driver)
	}

	if c.Intake.MaxAttempts < 1 {
		return fmt.Errorf("intake.max_attempts must be at least 1")
	}
	if c.Intake.MaxRequestsPerSecond < 1 {
		return fmt.Errorf("intake.max_requests_per_second must be at least 1")
	}

	// A worker holds a retry message for the backoff plus the delivery; the auto-claimer must not steal it
	held := MaxRetryDelay + c.Intake.DeliveryBudget()
	if time.Duration(c.Redis.MinIdleTime)*time.Second <= held {
		return fmt.Errorf("redis.min_idle_time must be greater than %d seconds for the configured intake timeout and retries",
			int(held/time.Second))
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.shutdown_timeout", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("catalog.feed_dir", "")

	v.SetDefault("session.driver", "memory")
	v.SetDefault("session.ttl", 120)
	v.SetDefault("session.cookie_name", "rfq_session")
	v.SetDefault("session.secure_cookie", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "storefront")
	v.SetDefault("database.user", "storefront_user")
	v.SetDefault("database.password", "storefront_pass")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.database", 0)
	v.SetDefault("redis.consumer_group", "storefront_leads")
	v.SetDefault("redis.min_idle_time", 300)

	v.SetDefault("intake.endpoints", []string{})
	v.SetDefault("intake.api_key", "")
	v.SetDefault("intake.timeout", 30)
	v.SetDefault("intake.max_retries", 2)
	v.SetDefault("intake.max_attempts", 5)
	v.SetDefault("intake.retry_delay", 10)
	v.SetDefault("intake.max_workers", 2)
	v.SetDefault("intake.max_requests_per_second", 5)
	v.SetDefault("intake.probe_on_start", false)
}
