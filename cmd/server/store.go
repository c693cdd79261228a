package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/2ellamills/fitness-class/internal/catalog"
	"github.com/2ellamills/fitness-class/internal/clock"
	"github.com/2ellamills/fitness-class/internal/config"
	"github.com/2ellamills/fitness-class/internal/database"
	"github.com/2ellamills/fitness-class/internal/repository"
)

// openStore builds the ledger repository for the configured driver.  The
// returned func releases whatever connection the store holds.
func openStore(cfg config.Config, rdb *redis.Client) (*repository.LedgerRepo, func(), error) {
	switch cfg.Store.Driver {
	case config.DriverRedis:
		if rdb == nil {
			return nil, nil, fmt.Errorf("STORE_DRIVER=redis but redis is unreachable")
		}
		return repository.NewLedgerRepo(repository.NewRedisStore(rdb, cfg.Store.Prefix)), func() {}, nil

	case config.DriverMySQL:
		db, err := database.Open(cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("mysql: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repository.NewLedgerRepo(repository.NewMySQLStore(db)), func() { _ = db.Close() }, nil
	}

	log.Printf("store: using in-memory store, passes and bookings are lost on restart")
	return repository.NewLedgerRepo(repository.NewMemoryStore()), func() {}, nil
}

func seeder(cfg config.Config, clk clock.Clock) catalog.Seeder {
	if cfg.Catalog.File != "" {
		return catalog.File{Path: cfg.Catalog.File}
	}
	seed := cfg.Catalog.Seed
	if seed == 0 {
		seed = clk.Now().UnixNano()
	}
	return catalog.NewRandom(seed)
}
