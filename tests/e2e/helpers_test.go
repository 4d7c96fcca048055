//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/storyline-backend/internal/adapter/blob/memory"
	"github.com/heartmarshall/storyline-backend/internal/adapter/postgres"
	auditrepo "github.com/heartmarshall/storyline-backend/internal/adapter/postgres/audit"
	storyrepo "github.com/heartmarshall/storyline-backend/internal/adapter/postgres/story"
	"github.com/heartmarshall/storyline-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/storyline-backend/internal/adapter/postgres/user"
	authpkg "github.com/heartmarshall/storyline-backend/internal/auth"
	"github.com/heartmarshall/storyline-backend/internal/config"
	"github.com/heartmarshall/storyline-backend/internal/service/audit"
	authsvc "github.com/heartmarshall/storyline-backend/internal/service/auth"
	"github.com/heartmarshall/storyline-backend/internal/service/lock"
	"github.com/heartmarshall/storyline-backend/internal/service/story"
	"github.com/heartmarshall/storyline-backend/internal/transport/rest"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application stack backed by a real
// PostgreSQL container (shared via testhelper) and an in-memory blob store.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Server: config.ServerConfig{APIPrefix: "/api"},
		Auth: config.AuthConfig{
			JWTSecret:        "test-secret-at-least-32-chars-long!!",
			JWTIssuer:        "test-issuer",
			AccessTokenTTL:   15 * time.Minute,
			PasswordHashCost: 4,
			MinPasswordLen:   6,
		},
		Lock:   config.LockConfig{TTL: 30 * time.Minute},
		Audit:  config.AuditConfig{DefaultPageSize: 10, MaxPageSize: 100},
		Upload: config.UploadConfig{MaxRequestBytes: 8 << 20, MaxFileBytes: 1 << 20, AllowedMIMERaw: "image/png,image/jpeg", FetchParallel: 4},
	}

	users := userrepo.New(pool)
	stories := storyrepo.New(pool)
	blobs := memory.New()

	authService := authsvc.NewService(logger, users,
		authpkg.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
		authpkg.NewBcryptHasher(cfg.Auth.PasswordHashCost),
		cfg.Auth,
	)
	locks := lock.NewManager(logger, stories, cfg.Lock)
	auditService := audit.NewService(logger, auditrepo.New(pool), cfg.Audit)
	storyService := story.NewService(logger, stories, locks, auditService, blobs, postgres.NewTxManager(pool), cfg.Upload)

	handler := rest.NewRouter(cfg, rest.RouterDeps{
		Logger:  logger,
		Auth:    rest.NewAuthHandler(authService, logger),
		Stories: rest.NewStoryHandler(storyService, logger, cfg.Upload.MaxRequestBytes),
		Health:  rest.NewHealthHandler("e2e", rest.DatabaseCheck(pool), rest.BlobCheck(blobs)),
		Tokens:  authService,
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{URL: srv.URL, Client: srv.Client(), Pool: pool}
}

// call sends a JSON request and decodes the JSON response into a map.
func (ts *testServer) call(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	} else if len(raw) > 0 && raw[0] == '[' {
		var list []any
		require.NoError(t, json.Unmarshal(raw, &list))
		out = map[string]any{"items": list}
	}
	return resp.StatusCode, out
}

// registerUser creates a fresh account and returns its token and email.
func registerUser(t *testing.T, ts *testServer) (string, string) {
	t.Helper()

	suffix := uuid.NewString()[:8]
	email := fmt.Sprintf("e2e-%s@example.com", suffix)
	status, body := ts.call(t, http.MethodPost, "/api/register", "", map[string]string{
		"name":     "e2e-" + suffix,
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, status, "register: %v", body)

	token, ok := body["token"].(string)
	require.True(t, ok, "expected token in register response")
	return token, email
}

// createStory creates a story through the API and returns its id.
func createStory(t *testing.T, ts *testServer, token, title string, tags ...string) string {
	t.Helper()

	status, body := ts.call(t, http.MethodPost, "/api/create", token, map[string]any{
		"title": title,
		"tags":  tags,
		"snapshots": []map[string]any{{
			"heading": "Opening",
			"content": "Once upon a time.",
		}},
	})
	require.Equal(t, http.StatusCreated, status, "create: %v", body)

	st := body["story"].(map[string]any)
	return st["id"].(string)
}
