package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Pricing      PricingConfig
	Admin        AdminConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BRANDIAGA_APP_ENV" required:"true"`
	Port         string `envconfig:"BRANDIAGA_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BRANDIAGA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BRANDIAGA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BRANDIAGA_DB_DSN"`
	Driver string `envconfig:"BRANDIAGA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"BRANDIAGA_DB_HOST"`
	LegacyPort     int    `envconfig:"BRANDIAGA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BRANDIAGA_DB_USER"`
	LegacyPassword string `envconfig:"BRANDIAGA_DB_PASSWORD"`
	LegacyName     string `envconfig:"BRANDIAGA_DB_NAME"`
	LegacySSLMode  string `envconfig:"BRANDIAGA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BRANDIAGA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BRANDIAGA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BRANDIAGA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BRANDIAGA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a postgres DSN from the legacy host/user fields when a
// full DSN is not provided. SQLite configurations must set the DSN directly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if !strings.EqualFold(d.Driver, "postgres") {
		return fmt.Errorf("database DSN is required for driver %q", d.Driver)
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("database DSN or host/user/name settings are required")
	}
	userInfo := url.UserPassword(d.LegacyUser, d.LegacyPassword)
	if d.LegacyPassword == "" {
		userInfo = url.User(d.LegacyUser)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:     "/" + d.LegacyName,
		RawQuery: "sslmode=" + d.LegacySSLMode,
	}
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"BRANDIAGA_REDIS_URL"`
	Address      string        `envconfig:"BRANDIAGA_REDIS_ADDR"`
	Password     string        `envconfig:"BRANDIAGA_REDIS_PASSWORD"`
	DB           int           `envconfig:"BRANDIAGA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BRANDIAGA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BRANDIAGA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BRANDIAGA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BRANDIAGA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BRANDIAGA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig controls the durable cart snapshot storage. A zero TTL keeps
// carts indefinitely, matching the browser-local storage this replaces.
type CartConfig struct {
	TTL time.Duration `envconfig:"BRANDIAGA_CART_TTL" default:"0"`
}

// PricingConfig carries the enumerated shipping tiers and flat tax rate as
// decimal strings. The amounts are parsed once by the pricing calculator.
type PricingConfig struct {
	TaxRate          string `envconfig:"BRANDIAGA_PRICING_TAX_RATE" default:"0.10"`
	StandardShipping string `envconfig:"BRANDIAGA_PRICING_SHIPPING_STANDARD" default:"15.00"`
	ExpressShipping  string `envconfig:"BRANDIAGA_PRICING_SHIPPING_EXPRESS" default:"25.00"`
}

// AdminConfig gates the admin console routes. Real authentication lives in an
// upstream gateway; this is a shared-secret check only.
type AdminConfig struct {
	Token string `envconfig:"BRANDIAGA_ADMIN_TOKEN"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BRANDIAGA_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"BRANDIAGA_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrderEventsTopic string `envconfig:"BRANDIAGA_PUBSUB_ORDER_EVENTS_TOPIC" default:"order-events"`
}

type OutboxConfig struct {
	BatchSize      int           `envconfig:"BRANDIAGA_OUTBOX_BATCH_SIZE" default:"50"`
	PollInterval   time.Duration `envconfig:"BRANDIAGA_OUTBOX_POLL_INTERVAL" default:"500ms"`
	PublishTimeout time.Duration `envconfig:"BRANDIAGA_OUTBOX_PUBLISH_TIMEOUT" default:"15s"`
	MaxAttempts    int           `envconfig:"BRANDIAGA_OUTBOX_MAX_ATTEMPTS" default:"10"`
}
