// Package config loads the service configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMySQL  = "mysql"
)

// Config holds all runtime configuration values.  Nested structs read their
// variables under a prefix: DB_HOST, REDIS_ADDR, RABBITMQ_URL and so on.
type Config struct {
	Env       string `envconfig:"APP_ENV" default:"dev"`
	Port      string `envconfig:"APP_PORT" default:"8080"`
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
	LogDir    string `envconfig:"LOG_DIR" default:"logs"`

	Store    StoreConfig    `envconfig:"STORE"`
	DB       DBConfig       `envconfig:"DB"`
	Redis    RedisConfig    `envconfig:"REDIS"`
	RabbitMQ RabbitMQConfig `envconfig:"RABBITMQ"`
	Catalog  CatalogConfig  `envconfig:"CATALOG"`
	Ledger   LedgerConfig   `envconfig:"LEDGER"`
}

// StoreConfig selects where passes and booking records are persisted.
type StoreConfig struct {
	Driver string `envconfig:"DRIVER" default:"memory"` // memory, redis or mysql
	Prefix string `envconfig:"PREFIX" default:"ledger"` // redis key namespace
}

type DBConfig struct {
	User string `envconfig:"USER"`
	Pass string `envconfig:"PASS"`
	Host string `envconfig:"HOST" default:"localhost"`
	Port string `envconfig:"PORT" default:"3306"`
	Name string `envconfig:"NAME"`
}

// RabbitMQConfig configures event publishing.  An empty URL disables it.
type RabbitMQConfig struct {
	URL   string `envconfig:"URL"`
	Queue string `envconfig:"QUEUE" default:"booking.events"`
}

// CatalogConfig chooses the seeder: a file when File is set, otherwise the
// random generator.  Seed 0 means seed from the current time.
type CatalogConfig struct {
	File string `envconfig:"FILE"`
	Seed int64  `envconfig:"SEED"`
}

type LedgerConfig struct {
	SkipEmptyWrites bool `envconfig:"SKIP_EMPTY_WRITES"`
	RejectExpired   bool `envconfig:"REJECT_EXPIRED"`
}

// Parse reads the environment into a Config and validates it.
func Parse() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("config: JWT_SECRET is empty")
	}
	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch cfg.Store.Driver {
	case DriverMemory, DriverRedis:
	case DriverMySQL:
		if cfg.DB.User == "" || cfg.DB.Name == "" {
			return Config{}, fmt.Errorf("config: STORE_DRIVER=mysql needs DB_USER and DB_NAME")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	return cfg, nil
}

// Load is Parse for process entry points: configuration errors are fatal.
func Load() Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
