package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Supported credential store drivers.
const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"3000"`

	// Token signing
	JWTSecret    string        `env:"JWT_SECRET"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"1h"`
	BcryptCost   int           `env:"BCRYPT_COST" envDefault:"12"`

	// Credential store
	StoreDriver   string `env:"STORE_DRIVER" envDefault:"mongo"`
	DBUser        string `env:"DB_USER"`
	DBPass        string `env:"DB_PASS"`
	MongoURIRaw   string `env:"MONGO_URI"`
	MongoScheme   string `env:"MONGO_SCHEME" envDefault:"mongodb"`
	MongoHost     string `env:"MONGO_HOST" envDefault:"localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"authapi"`
	MySQLDSN      string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"`

	// Profile cache; empty address disables it
	RedisAddr    string        `env:"REDIS_ADDR"`
	RedisPass    string        `env:"REDIS_PASSWORD"`
	RedisDB      int           `env:"REDIS_DB" envDefault:"0"`
	UserCacheTTL time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	SwaggerHost string `env:"SWAGGER_HOST"`
}

// Load builds Config from environment with sensible defaults.
// A missing signing secret is an error: the process must not start without one.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("SECRET")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that env parsing cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTExpiresIn <= 0 {
		errs = append(errs, fmt.Errorf("JWT_EXPIRES_IN must be positive, got %s", c.JWTExpiresIn))
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.BcryptCost))
	}
	switch c.StoreDriver {
	case DriverMongo, DriverMySQL, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	return errors.Join(errs...)
}

// MongoURI returns MONGO_URI when set, otherwise builds one from the
// scheme, host and DB_USER/DB_PASS credentials.
func (c *Config) MongoURI() string {
	if c.MongoURIRaw != "" {
		return c.MongoURIRaw
	}
	u := url.URL{Scheme: c.MongoScheme, Host: c.MongoHost, Path: "/"}
	if c.DBUser != "" {
		u.User = url.UserPassword(c.DBUser, c.DBPass)
	}
	u.RawQuery = "retryWrites=true&w=majority"
	return u.String()
}

// CacheEnabled reports whether a redis address was configured.
func (c *Config) CacheEnabled() bool {
	return strings.TrimSpace(c.RedisAddr) != ""
}

// LogValue implements slog.LogValuer and leaves secrets out.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("port", c.ServerPort),
		slog.String("store_driver", c.StoreDriver),
		slog.Duration("jwt_expires_in", c.JWTExpiresIn),
		slog.Int("bcrypt_cost", c.BcryptCost),
		slog.Bool("cache_enabled", c.CacheEnabled()),
		slog.String("log_level", c.LogLevel),
	)
}
