// Command release-stale-locks clears edit locks held longer than the
// configured lock TTL. It is intended to be invoked by an external cron job,
// not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/storyline-backend/internal/adapter/postgres"
	"github.com/heartmarshall/storyline-backend/internal/adapter/postgres/story"
	"github.com/heartmarshall/storyline-backend/internal/app"
	"github.com/heartmarshall/storyline-backend/internal/config"
	"github.com/heartmarshall/storyline-backend/internal/service/lock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.Lock.TTL <= 0 {
		logger.Info("lock expiry disabled, nothing to release")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	locks := lock.NewManager(logger, story.New(pool), cfg.Lock)

	released, err := locks.ReleaseStale(ctx)
	if err != nil {
		logger.Error("release stale locks failed",
			slog.String("error", err.Error()),
			slog.Duration("ttl", cfg.Lock.TTL),
		)
		os.Exit(1)
	}

	logger.Info("stale locks released",
		slog.Int64("released", released),
		slog.Duration("ttl", cfg.Lock.TTL),
	)
}
