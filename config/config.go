package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Log       LogConfig       `mapstructure:"log"`
	Escrow    EscrowConfig    `mapstructure:"escrow"`
	Custodian CustodianConfig `mapstructure:"custodian"`
	Webhook   WebhookConfig   `mapstructure:"webhook"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// StorageConfig selects the escrow record backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // postgres, memory
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// PoolSize and Timeout bound the instruction cache and rate limiter
	// calls so a slow Redis degrades to the fallthrough paths quickly.
	PoolSize int           `mapstructure:"pool_size"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// EscrowConfig holds the ledger's fee and authorization policy.
type EscrowConfig struct {
	PlatformFeeBPS  int64    `mapstructure:"platform_fee_bps"`
	PlatformAccount string   `mapstructure:"platform_account"`
	Currency        string   `mapstructure:"currency"`
	DisputePolicy   string   `mapstructure:"dispute_policy"` // client, valuator, either
	Arbiters        []string `mapstructure:"arbiters"`
}

// CustodianConfig configures where payment instructions are sent.
type CustodianConfig struct {
	Driver         string        `mapstructure:"driver"` // http, memory
	URL            string        `mapstructure:"url"`
	Secret         string        `mapstructure:"secret"`
	Timeout        time.Duration `mapstructure:"timeout"`
	IdempotencyTTL time.Duration `mapstructure:"idempotency_ttl"`
}

// WebhookConfig configures escrow event delivery. Empty URL disables it.
type WebhookConfig struct {
	URL    string `mapstructure:"url"`
	Secret string `mapstructure:"secret"`
}

// SchedulerConfig configures the deadline job that cancels unaccepted escrows.
type SchedulerConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	ExpireSpec    string        `mapstructure:"expire_spec"`
	AcceptTimeout time.Duration `mapstructure:"accept_timeout"`
	BatchSize     int           `mapstructure:"batch_size"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Validate checks cross-field constraints that defaults cannot express.
func (c *Config) Validate() error {
	if c.Escrow.PlatformFeeBPS < 0 || c.Escrow.PlatformFeeBPS > 10000 {
		return fmt.Errorf("escrow.platform_fee_bps must be within [0, 10000], got %d", c.Escrow.PlatformFeeBPS)
	}
	switch c.Escrow.DisputePolicy {
	case "client", "valuator", "either":
	default:
		return fmt.Errorf("escrow.dispute_policy must be client, valuator or either, got %q", c.Escrow.DisputePolicy)
	}
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("storage.driver must be postgres or memory, got %q", c.Storage.Driver)
	}
	switch c.Custodian.Driver {
	case "memory":
	case "http":
		if c.Custodian.URL == "" {
			return fmt.Errorf("custodian.url is required for the http driver")
		}
	default:
		return fmt.Errorf("custodian.driver must be http or memory, got %q", c.Custodian.Driver)
	}
	if c.Escrow.PlatformAccount == "" {
		return fmt.Errorf("escrow.platform_account is required")
	}
	return nil
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: ESC_.
// Nested keys use underscore: ESC_DATABASE_HOST, ESC_JWT_SECRET, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "mapchain_escrow")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.timeout", "500ms")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "mapchain-escrow")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("escrow.platform_fee_bps", 1000)
	v.SetDefault("escrow.platform_account", "platform")
	v.SetDefault("escrow.currency", "USD")
	v.SetDefault("escrow.dispute_policy", "either")
	v.SetDefault("escrow.arbiters", []string{})
	v.SetDefault("custodian.driver", "memory")
	v.SetDefault("custodian.url", "")
	v.SetDefault("custodian.secret", "")
	v.SetDefault("custodian.timeout", "10s")
	v.SetDefault("custodian.idempotency_ttl", "72h")
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.secret", "")
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.expire_spec", "@every 1m")
	v.SetDefault("scheduler.accept_timeout", "72h")
	v.SetDefault("scheduler.batch_size", 100)
	v.SetDefault("metrics.enabled", true)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: ESC_DATABASE_HOST -> database.host
	v.SetEnvPrefix("ESC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
