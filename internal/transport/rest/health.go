package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/heartmarshall/storyline-backend/internal/adapter/blob"
)

const probeTimeout = 3 * time.Second

// Check is one dependency probed by /ready and /health.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

// DatabaseCheck probes the connection pool.
func DatabaseCheck(db pinger) Check {
	return Check{Name: "database", Ping: db.Ping}
}

// BlobCheck probes the image store with a HEAD on a key that never exists.
// A not-found answer means the store is reachable.
func BlobCheck(store blob.Store) Check {
	probe := blob.KeyPrefix + "healthcheck"
	return Check{Name: "blob", Ping: func(ctx context.Context) error {
		_, err := store.Head(ctx, probe)
		if err == nil || errors.Is(err, blob.ErrNotFound) {
			return nil
		}
		return err
	}}
}

// HealthHandler serves the root probe endpoints.
type HealthHandler struct {
	checks  []Check
	version string
	now     func() time.Time
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(version string, checks ...Check) *HealthHandler {
	return &HealthHandler{checks: checks, version: version, now: time.Now}
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.now()})
}

// Ready is the readiness probe: 200 when every check passes, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, ok := h.run(r.Context())
	status, body := http.StatusOK, "ok"
	if !ok {
		status, body = http.StatusServiceUnavailable, "down"
	}
	writeJSON(w, status, HealthResponse{Status: body, Timestamp: h.now()})
}

// Health reports every component with its latency and the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, ok := h.run(r.Context())
	status, body := http.StatusOK, "ok"
	if !ok {
		status, body = http.StatusServiceUnavailable, "down"
	}
	writeJSON(w, status, HealthResponse{
		Status:     body,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	})
}

func (h *HealthHandler) run(ctx context.Context) (map[string]CompStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out := make(map[string]CompStatus, len(h.checks))
	ok := true
	for _, c := range h.checks {
		start := time.Now()
		err := c.Ping(ctx)
		latency := time.Since(start)
		if err != nil {
			ok = false
			out[c.Name] = CompStatus{Status: "down", Error: err.Error()}
			continue
		}
		out[c.Name] = CompStatus{Status: "ok", Latency: latency.String()}
	}
	return out, ok
}
