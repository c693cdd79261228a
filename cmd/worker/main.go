// Command worker consumes booking events from RabbitMQ and appends them to
// the booking log.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/2ellamills/fitness-class/internal/config"
	"github.com/2ellamills/fitness-class/internal/queue"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("env: .env not loaded: %v", err)
	}
	cfg := config.Load()
	if cfg.RabbitMQ.URL == "" {
		log.Fatal("worker: RABBITMQ_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.Consumer{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue, LogDir: cfg.LogDir}
	log.Printf("booking-consumer: consuming %s into %s/booking.log", c.Queue, c.LogDir)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("booking-consumer: %v", err)
	}
}
