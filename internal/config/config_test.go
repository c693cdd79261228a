package config

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		cfg, err := Parse()
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if cfg.Port != "8080" || cfg.Store.Driver != DriverMemory || cfg.Store.Prefix != "ledger" {
			t.Fatalf("cfg = %+v", cfg)
		}
		if cfg.RabbitMQ.Queue != "booking.events" || cfg.RabbitMQ.URL != "" {
			t.Fatalf("rabbitmq = %+v", cfg.RabbitMQ)
		}
		if cfg.Redis.address() != "localhost:6379" {
			t.Fatalf("redis addr = %s", cfg.Redis.address())
		}
	})

	t.Run("nested prefixes", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("STORE_DRIVER", "MySQL")
		t.Setenv("DB_USER", "app")
		t.Setenv("DB_NAME", "fitness")
		t.Setenv("REDIS_HOST", "cache")
		t.Setenv("REDIS_PORT", "6380")
		t.Setenv("CATALOG_SEED", "7")
		t.Setenv("LEDGER_SKIP_EMPTY_WRITES", "true")
		cfg, err := Parse()
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if cfg.Store.Driver != DriverMySQL || cfg.DB.User != "app" || cfg.DB.Port != "3306" {
			t.Fatalf("cfg = %+v", cfg)
		}
		if cfg.Redis.address() != "cache:6380" || cfg.Catalog.Seed != 7 || !cfg.Ledger.SkipEmptyWrites {
			t.Fatalf("cfg = %+v", cfg)
		}
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		if _, err := Parse(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("mysql without database", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("STORE_DRIVER", "mysql")
		if _, err := Parse(); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("STORE_DRIVER", "etcd")
		if _, err := Parse(); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestLoadRateLimitConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_ENABLED", "off")
	cfg := LoadRateLimitConfig()
	if cfg.Enabled || cfg.Capacity != 1 || cfg.TTL != 5*time.Minute {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadCacheConfig(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "bogus")
	cfg := LoadCacheConfig()
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] || cfg.Methods["POST"] {
		t.Fatalf("methods = %v", cfg.Methods)
	}
	if cfg.TTL != 5*time.Minute {
		t.Fatalf("ttl = %s", cfg.TTL)
	}
}
