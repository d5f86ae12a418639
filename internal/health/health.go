// Package health serves liveness and readiness probes for the API.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Pinger is anything whose connectivity can be checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger
type PingFunc func(ctx context.Context) error

// Ping implements Pinger
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Checker answers the health endpoints. Readiness pings every registered dependency.
type Checker struct {
	serviceName  string
	version      string
	logger       *logrus.Entry
	checkTimeout time.Duration

	mu     sync.RWMutex
	ready  bool
	checks map[string]Pinger
}

// NewChecker creates a checker that starts out not ready
func NewChecker(serviceName, version string, logger *logrus.Logger) *Checker {
	return &Checker{
		serviceName:  serviceName,
		version:      version,
		logger:       logger.WithField("component", "health"),
		checkTimeout: 3 * time.Second,
		checks:       make(map[string]Pinger),
	}
}

// AddCheck registers a dependency probed by the readiness endpoint
func (c *Checker) AddCheck(name string, p Pinger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = p
}

// SetReady marks the service as ready to accept traffic.
func (c *Checker) SetReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// IsReady returns whether the service is ready.
func (c *Checker) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// HandleHealth handles the /health endpoint - basic liveness check with build info.
func (c *Checker) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   c.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   c.version,
	})
}

// HandleLive handles the /live endpoint - kubernetes liveness probe.
func (c *Checker) HandleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: c.serviceName})
}

// HandleReady handles the /ready endpoint - checks cache storage and archive connectivity.
func (c *Checker) HandleReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	checks, healthy := c.Check(r.Context())

	response := ReadyResponse{
		Status:   "ok",
		Service:  c.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}
	status := http.StatusOK
	if !healthy {
		response.Status = "not_ready"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, response)
}

// Check runs every registered probe and reports per-check results
func (c *Checker) Check(ctx context.Context) (map[string]string, bool) {
	c.mu.RLock()
	ready := c.ready
	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	probes := make(map[string]Pinger, len(c.checks))
	for name, p := range c.checks {
		probes[name] = p
	}
	c.mu.RUnlock()
	sort.Strings(names)

	results := make(map[string]string, len(names)+1)
	healthy := ready
	if ready {
		results["service"] = "ok"
	} else {
		results["service"] = "not_ready"
	}

	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(ctx, c.checkTimeout)
		err := probes[name].Ping(pingCtx)
		cancel()
		if err != nil {
			healthy = false
			results[name] = fmt.Sprintf("error: %v", err)
			c.logger.WithFields(logrus.Fields{"check": name, "error": err.Error()}).Warn("Readiness check failed")
			continue
		}
		results[name] = "ok"
	}
	return results, healthy
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
