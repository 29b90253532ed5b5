package handler

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const readinessTimeout = 5 * time.Second

// Readiness check results.
const (
	checkOK            = "ok"
	checkNotConfigured = "not configured"
	checkTokenMissing  = "token missing"
)

// HealthChecker is anything that can answer a ping.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	deps                map[string]HealthChecker
	sentimentConfigured bool
}

// NewHealthHandler creates a HealthHandler. A nil cache means the process runs
// with local locks and Redis is reported as not configured.
func NewHealthHandler(db, cache HealthChecker, sentimentConfigured bool) *HealthHandler {
	return &HealthHandler{
		deps: map[string]HealthChecker{
			"postgres": db,
			"redis":    cache,
		},
		sentimentConfigured: sentimentConfigured,
	}
}

// HealthResponse is the body of both probes.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz reports that the process is up. It checks nothing.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: checkOK})
}

// Readyz pings every configured dependency in parallel and answers 503 if any
// fails. A missing sentiment token is reported but keeps the service ready,
// since reads and deletes still work without it.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		healthy = true
		checks  = make(map[string]string, len(h.deps)+1)
	)

	for name, dep := range h.deps {
		if dep == nil {
			checks[name] = checkNotConfigured
			continue
		}
		wg.Add(1)
		go func(name string, dep HealthChecker) {
			defer wg.Done()
			result := checkOK
			if err := dep.Ping(ctx); err != nil {
				result = "error: " + err.Error()
			}

			mu.Lock()
			defer mu.Unlock()
			checks[name] = result
			if result != checkOK {
				healthy = false
			}
		}(name, dep)
	}
	wg.Wait()

	checks["sentiment"] = checkOK
	if !h.sentimentConfigured {
		checks["sentiment"] = checkTokenMissing
	}

	resp := HealthResponse{Status: checkOK, Checks: checks}
	status := http.StatusOK
	if !healthy {
		resp.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
