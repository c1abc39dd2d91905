package main

import (
	"context"
	"time"

	"kbradar/internal/activities"
	"kbradar/internal/cache"
	"kbradar/internal/config"
	"kbradar/internal/dashboard"
	"kbradar/internal/logger"
	"kbradar/internal/signals"
	"kbradar/internal/storage"
	"kbradar/internal/workflows"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.TemporalAddress == "" {
		log.Fatal("KBRADAR_TEMPORAL_ADDRESS is required for the worker")
	}
	if cfg.RedisURL == "" {
		log.Warn("KBRADAR_REDIS_URL is empty; warmed views will not be stored")
	}

	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Fatal("dial temporal", "error", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL, int32(cfg.PostgresMaxConns))
	if err != nil {
		log.Fatal("connect postgres", "error", err)
	}
	defer db.Close()

	vc, err := cache.New(cfg.RedisURL, cfg.CacheTTL, log)
	if err != nil {
		log.Fatal("connect redis", "error", err)
	}
	defer vc.Close()

	reader := dashboard.NewReader(signals.NewService(signals.StoresFromDB(db), log), vc)

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)
	activities.Register(w, activities.New(reader, log))

	log.Info("kbradar worker listening", "address", cfg.TemporalAddress, "queue", cfg.TemporalTaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal("worker stopped", "error", err)
	}
}
