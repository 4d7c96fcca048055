package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/storyline-backend/internal/config"
	"github.com/heartmarshall/storyline-backend/internal/transport/middleware"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// RouterDeps are the handlers and middleware the router is assembled from.
// Limiter, Metrics and MetricsHandler are optional.
type RouterDeps struct {
	Logger         *slog.Logger
	Auth           *AuthHandler
	Stories        *StoryHandler
	Health         *HealthHandler
	Tokens         tokenValidator
	Limiter        *middleware.RateLimiter
	Metrics        *middleware.HTTPMetrics
	MetricsHandler http.Handler
}

// NewRouter builds the HTTP handler: probes and metrics at the root, the API
// under cfg.Server.APIPrefix.
func NewRouter(cfg *config.Config, deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	var observe middleware.Middleware
	if deps.Metrics != nil {
		observe = deps.Metrics.Middleware()
	}
	r.Use(middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(deps.Logger),
		middleware.Logger(deps.Logger),
		middleware.CORS(cfg.CORS),
		observe,
	))

	r.Get("/live", deps.Health.Live)
	r.Get("/ready", deps.Health.Ready)
	r.Get("/health", deps.Health.Health)
	if cfg.Metrics.Enabled && deps.MetricsHandler != nil {
		r.Method(http.MethodGet, cfg.Metrics.Path, deps.MetricsHandler)
	}

	api := chi.NewRouter()

	// Credential routes stay reachable with a stale token still attached.
	limit := func(next http.Handler) http.Handler { return next }
	if deps.Limiter != nil {
		limit = deps.Limiter.Limit(cfg.RateLimit.AuthPerMinute)
	}
	api.With(limit).Post("/register", deps.Auth.Register)
	api.With(limit).Post("/login", deps.Auth.Login)
	api.With(middleware.OptionalAuth(deps.Tokens)).Post("/logout", deps.Auth.Logout)

	api.Group(func(p chi.Router) {
		p.Use(middleware.Auth(deps.Tokens), middleware.RequireAuth)

		p.Post("/updatepwd", deps.Auth.UpdatePassword)
		p.Get("/getUser", deps.Auth.GetUser)

		p.Get("/stories", deps.Stories.List)
		p.Get("/search/title/{pattern}", deps.Stories.SearchByTitle)
		p.Get("/viewStory/{id}", deps.Stories.View)
		p.Post("/create", deps.Stories.Create)
		p.Put("/edit/{id}", deps.Stories.Edit)
		p.Put("/lockStory/{id}", deps.Stories.Lock)
		p.Get("/lockStory/{id}", deps.Stories.LockState)
		p.Put("/unlockStory/{id}", deps.Stories.Unlock)
		p.Delete("/delete/{id}", deps.Stories.Delete)
		p.Get("/logs/{storyId}", deps.Stories.Logs)
	})

	prefix := cfg.Server.APIPrefix
	if prefix == "" || prefix == "/" {
		r.Mount("/", api)
	} else {
		r.Mount(prefix, api)
	}
	return r
}
