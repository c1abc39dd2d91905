package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kbradar/internal/api"
	"kbradar/internal/cache"
	"kbradar/internal/config"
	"kbradar/internal/dashboard"
	"kbradar/internal/logger"
	"kbradar/internal/signals"
	"kbradar/internal/storage"

	"github.com/joho/godotenv"
	tclient "go.temporal.io/sdk/client"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	db, err := storage.NewDB(connectCtx, cfg.PostgresURL, int32(cfg.PostgresMaxConns))
	cancel()
	if err != nil {
		log.Fatal("connect postgres", "error", err)
	}
	defer db.Close()

	c, err := cache.New(cfg.RedisURL, cfg.CacheTTL, log)
	if err != nil {
		log.Fatal("connect redis", "error", err)
	}
	defer c.Close()

	var starter api.WorkflowStarter
	if cfg.TemporalAddress != "" {
		tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
		if err != nil {
			log.Warn("temporal unavailable, cache warming disabled", "address", cfg.TemporalAddress, "error", err)
		} else {
			defer tc.Close()
			starter = tc
		}
	}

	svc := signals.NewService(signals.StoresFromDB(db), log)
	reader := dashboard.NewReader(svc, c)
	h := api.NewServer(cfg, reader, starter, log)

	srv := &http.Server{
		Addr:              cfg.APIAddr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("kbradar api listening", "addr", cfg.APIAddr, "cache", reader.CacheStatus(ctx), "temporal", starter != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("http server", "error", err)
	}
}
