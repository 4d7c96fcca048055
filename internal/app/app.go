package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/storyline-backend/internal/adapter/blob"
	"github.com/heartmarshall/storyline-backend/internal/adapter/blob/memory"
	blobs3 "github.com/heartmarshall/storyline-backend/internal/adapter/blob/s3"
	"github.com/heartmarshall/storyline-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/storyline-backend/internal/adapter/postgres/audit"
	storyrepo "github.com/heartmarshall/storyline-backend/internal/adapter/postgres/story"
	userrepo "github.com/heartmarshall/storyline-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/storyline-backend/internal/auth"
	"github.com/heartmarshall/storyline-backend/internal/config"
	"github.com/heartmarshall/storyline-backend/internal/service/audit"
	authsvc "github.com/heartmarshall/storyline-backend/internal/service/auth"
	"github.com/heartmarshall/storyline-backend/internal/service/lock"
	"github.com/heartmarshall/storyline-backend/internal/service/story"
	"github.com/heartmarshall/storyline-backend/internal/transport/middleware"
	"github.com/heartmarshall/storyline-backend/internal/transport/rest"
)

// Run loads configuration, connects to PostgreSQL and the blob store, and
// serves HTTP until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.InfoContext(ctx, "starting application",
		slog.String("build", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("blob_driver", cfg.Blob.Driver),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("app: migrate: %w", err)
		}
	}

	blobs, err := newBlobStore(ctx, cfg.Blob)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}

	users := userrepo.New(pool)
	stories := storyrepo.New(pool)
	logs := auditrepo.New(pool)

	authService := authsvc.NewService(logger, users,
		auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		auth.NewBcryptHasher(cfg.Auth.PasswordHashCost),
		cfg.Auth,
	)
	locks := lock.NewManager(logger, stories, cfg.Lock)
	auditService := audit.NewService(logger, logs, cfg.Audit)
	storyService := story.NewService(logger, stories, locks, auditService, blobs, postgres.NewTxManager(pool), cfg.Upload)

	deps := rest.RouterDeps{
		Logger:  logger,
		Auth:    rest.NewAuthHandler(authService, logger),
		Stories: rest.NewStoryHandler(storyService, logger, cfg.Upload.MaxRequestBytes),
		Health:  rest.NewHealthHandler(Version, rest.DatabaseCheck(pool), rest.BlobCheck(blobs)),
		Tokens:  authService,
	}
	if cfg.RateLimit.AuthPerMinute > 0 {
		deps.Limiter = middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer deps.Limiter.Stop()
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = middleware.NewHTTPMetrics(prometheus.DefaultRegisterer)
		deps.MetricsHandler = promhttp.Handler()
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rest.NewRouter(cfg, deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("app: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func newBlobStore(ctx context.Context, cfg config.BlobConfig) (blob.Store, error) {
	switch cfg.Driver {
	case "s3":
		return blobs3.New(ctx, blobs3.Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			Prefix:          cfg.S3.Prefix,
			PathStyle:       cfg.S3.UsePathStyle,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
	case "", "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}
