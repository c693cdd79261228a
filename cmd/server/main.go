package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/2ellamills/fitness-class/internal/clock"
	"github.com/2ellamills/fitness-class/internal/config"
	"github.com/2ellamills/fitness-class/internal/handler"
	"github.com/2ellamills/fitness-class/internal/ledger"
	"github.com/2ellamills/fitness-class/internal/middleware"
	"github.com/2ellamills/fitness-class/internal/router"
	qp "github.com/2ellamills/fitness-class/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("env: .env not loaded: %v", err)
	}
	cfg := config.Load()
	clk := clock.NewSystem()

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and caching disabled")
	} else {
		defer rdb.Close()
	}

	kv, closeStore, err := openStore(cfg, rdb)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	classes, err := seeder(cfg, clk).Seed(clk.Now())
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	log.Printf("catalog: %d classes seeded", len(classes))

	opts := []ledger.Option{
		ledger.WithClock(clk),
		ledger.WithSkipEmptyWrites(cfg.Ledger.SkipEmptyWrites),
		ledger.WithRejectExpired(cfg.Ledger.RejectExpired),
	}
	if cfg.RabbitMQ.URL != "" {
		pub := qp.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue)
		defer pub.Close()
		opts = append(opts, ledger.WithObserver(pub))
	} else {
		log.Printf("events: RABBITMQ_URL not set, booking events are not published")
	}
	l := ledger.New(classes, kv, opts...)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	router.Register(e, router.Handlers{
		Classes:   handler.NewClassHandler(l),
		Passes:    handler.NewPassHandler(l),
		Admin:     handler.NewAdminHandler(l),
		JWTSecret: cfg.JWTSecret,
		Limit:     middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
		Cache:     middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
	})

	addr := ":" + cfg.Port
	go func() {
		log.Printf("listening on %s (env=%s store=%s)", addr, cfg.Env, cfg.Store.Driver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
