package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/2ellamills/fitness-class/internal/catalog"
	"github.com/2ellamills/fitness-class/internal/clock"
	"github.com/2ellamills/fitness-class/internal/config"
)

func TestSeeder(t *testing.T) {
	clk := clock.NewFixed(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))

	if _, ok := seeder(config.Config{Catalog: config.CatalogConfig{File: "classes.yaml"}}, clk).(catalog.File); !ok {
		t.Fatal("file seeder not chosen")
	}

	a, _ := seeder(config.Config{Catalog: config.CatalogConfig{Seed: 3}}, clk).Seed(clk.Now())
	b, _ := seeder(config.Config{Catalog: config.CatalogConfig{Seed: 3}}, clk).Seed(clk.Now())
	if len(a) == 0 || len(a) != len(b) || a[0].Title != b[0].Title {
		t.Fatal("seeded catalog is not reproducible")
	}
}

func TestOpenStore(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		repo, closeFn, err := openStore(config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}}, nil)
		if err != nil || repo == nil {
			t.Fatalf("repo=%v err=%v", repo, err)
		}
		closeFn()
	})

	t.Run("redis unreachable", func(t *testing.T) {
		if _, _, err := openStore(config.Config{Store: config.StoreConfig{Driver: config.DriverRedis}}, nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer rdb.Close()
		repo, _, err := openStore(config.Config{Store: config.StoreConfig{Driver: config.DriverRedis, Prefix: "ledger"}}, rdb)
		if err != nil {
			t.Fatal(err)
		}
		if err := repo.SavePasses(context.Background(), "alice", nil); err != nil {
			t.Fatal(err)
		}
		if got, _ := mr.Get("ledger:passes:alice"); got != "[]" {
			t.Fatalf("stored %q", got)
		}
	})
}
