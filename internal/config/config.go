package config

import (
	"errors"
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// Snapshot and catalog backends.
const (
	BackendRedis    = "redis"
	BackendMemory   = "memory"
	BackendStatic   = "static"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort          int      `env:"STOREFRONT_HTTP_PORT" envDefault:"8080"`
	CORSOrigins       []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envSeparator:","`
	ProductCacheAge   int      `env:"PRODUCT_CACHE_MAX_AGE_SECONDS" envDefault:"60"`

	// Session snapshots
	SnapshotBackend  string `env:"SNAPSHOT_BACKEND" envDefault:"redis"`
	RedisAddr        string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass        string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB          int    `env:"REDIS_DB" envDefault:"0"`
	SnapshotTTLHours int    `env:"SNAPSHOT_TTL_HOURS" envDefault:"720"`

	// In-memory session stores
	StoreIdleTTLMinutes   int `env:"STORE_IDLE_TTL_MINUTES" envDefault:"30"`
	StoreSweepIntervalSec int `env:"STORE_SWEEP_INTERVAL_SECONDS" envDefault:"60"`

	// Catalog
	CatalogBackend string `env:"CATALOG_BACKEND" envDefault:"static"`
	Currency       string `env:"CURRENCY" envDefault:"USD"`

	// PostgreSQL
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"storefront"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	DBMaxConns       int32  `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns       int32  `env:"DB_MIN_CONNS" envDefault:"2"`
	SlowQueryMS      int    `env:"LOG_SLOW_QUERY_MS" envDefault:"200"`

	// Kafka
	KafkaEnabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	KafkaAsync   bool     `env:"KAFKA_ASYNC" envDefault:"false"`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SnapshotTTL is how long an untouched snapshot survives in Redis.
func (c *Config) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLHours) * time.Hour
}

func (c *Config) StoreIdleTTL() time.Duration {
	return time.Duration(c.StoreIdleTTLMinutes) * time.Minute
}

func (c *Config) StoreSweepInterval() time.Duration {
	return time.Duration(c.StoreSweepIntervalSec) * time.Second
}

func (c *Config) SlowQueryThreshold() time.Duration {
	return time.Duration(c.SlowQueryMS) * time.Millisecond
}

func (c *Config) validate() error {
	var errs []error
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP port: %d", c.HTTPPort))
	}
	if c.SnapshotBackend != BackendRedis && c.SnapshotBackend != BackendMemory {
		errs = append(errs, fmt.Errorf("SNAPSHOT_BACKEND must be %q or %q, got %q", BackendRedis, BackendMemory, c.SnapshotBackend))
	}
	if c.CatalogBackend != BackendStatic && c.CatalogBackend != BackendPostgres {
		errs = append(errs, fmt.Errorf("CATALOG_BACKEND must be %q or %q, got %q", BackendStatic, BackendPostgres, c.CatalogBackend))
	}
	if c.SnapshotTTLHours < 0 {
		errs = append(errs, errors.New("SNAPSHOT_TTL_HOURS must not be negative"))
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is set"))
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		errs = append(errs, errors.New("OTEL_SAMPLE_RATE must be between 0.0 and 1.0"))
	}
	if c.DBMinConns > c.DBMaxConns {
		errs = append(errs, fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns))
	}
	if c.Currency == "" {
		errs = append(errs, errors.New("CURRENCY must not be empty"))
	}
	return errors.Join(errs...)
}
