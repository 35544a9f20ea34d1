package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable the service reads.
	EnvPrefix = "FOODISH"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Stripe       StripeConfig
	Wages        WagesConfig
	Sweep        SweepConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects blank values envconfig lets through when a variable is
// set to the empty string.
func (c *Config) validate() error {
	if strings.TrimSpace(c.DB.DSN) == "" {
		return fmt.Errorf("FOODISH_DB_DSN must not be empty")
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return fmt.Errorf("FOODISH_JWT_SECRET must not be empty")
	}
	if strings.TrimSpace(c.JWT.Issuer) == "" {
		return fmt.Errorf("FOODISH_JWT_ISSUER must not be empty")
	}
	return nil
}

type AppConfig struct {
	Env          string `envconfig:"FOODISH_APP_ENV" required:"true"`
	Port         string `envconfig:"FOODISH_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"FOODISH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FOODISH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"FOODISH_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"FOODISH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FOODISH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FOODISH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FOODISH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FOODISH_REDIS_URL"`
	Address      string        `envconfig:"FOODISH_REDIS_ADDR"`
	Password     string        `envconfig:"FOODISH_REDIS_PASSWORD"`
	DB           int           `envconfig:"FOODISH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FOODISH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FOODISH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FOODISH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FOODISH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FOODISH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FOODISH_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FOODISH_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FOODISH_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FOODISH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FOODISH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FOODISH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FOODISH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FOODISH_ARGON_KEY_LEN" default:"32"`
}

type StripeConfig struct {
	APIKey     string `envconfig:"FOODISH_STRIPE_API_KEY"`
	Env        string `envconfig:"FOODISH_STRIPE_ENV" default:"test"`
	SuccessURL string `envconfig:"FOODISH_STRIPE_SUCCESS_URL"`
	CancelURL  string `envconfig:"FOODISH_STRIPE_CANCEL_URL"`
	Currency   string `envconfig:"FOODISH_STRIPE_CURRENCY" default:"inr"`
}

// Environment returns the configured Stripe environment string.
func (s StripeConfig) Environment() string {
	return s.Env
}

type WagesConfig struct {
	// PerDeliveryCents is the fixed wage an agent accrues per delivered order.
	PerDeliveryCents int64 `envconfig:"FOODISH_WAGE_PER_DELIVERY_CENTS" default:"2500"`
}

type SweepConfig struct {
	Interval time.Duration `envconfig:"FOODISH_SWEEP_INTERVAL" default:"1m"`
	LockTTL  time.Duration `envconfig:"FOODISH_SWEEP_LOCK_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FOODISH_AUTO_MIGRATE" default:"false"`
}
