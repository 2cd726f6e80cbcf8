package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
)

// Pinger is anything the health endpoints can ping.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db        Pinger
	cache     Pinger
	store     Pinger
	version   string
	startedAt time.Time
	timeout   time.Duration
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db, cache, store Pinger, version string) *HealthHandlers {
	return &HealthHandlers{
		db:        db,
		cache:     cache,
		store:     store,
		version:   version,
		startedAt: time.Now(),
		timeout:   2 * time.Second,
	}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
}

type componentCheck struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

func (h *HealthHandlers) components() map[string]Pinger {
	return map[string]Pinger{
		"database": h.db,
		"cache":    h.cache,
		"storage":  h.store,
	}
}

func (h *HealthHandlers) ping(ctx context.Context, p Pinger) componentCheck {
	if p == nil {
		return componentCheck{Status: "disabled"}
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	check := componentCheck{Status: "healthy", LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		check.Status = "unhealthy"
		check.Message = err.Error()
	}
	return check
}

// HealthCheck reports one status per dependency. A failing dependency
// degrades the service but still answers 200 so load balancers keep it.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
		Version:   h.version,
	}

	for name, p := range h.components() {
		check := h.ping(c.Request().Context(), p)
		health.Services[name] = check.Status
		if check.Status == "unhealthy" {
			health.Status = "degraded"
		}
	}

	return c.JSON(http.StatusOK, health)
}

// DetailedHealthCheck adds latency and error text for each dependency.
func (h *HealthHandlers) DetailedHealthCheck(c echo.Context) error {
	checks := make(map[string]componentCheck)
	overall := "healthy"
	for name, p := range h.components() {
		check := h.ping(c.Request().Context(), p)
		checks[name] = check
		if check.Status == "unhealthy" {
			overall = "degraded"
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"overall_status": overall,
		"checks":         checks,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"version":        h.version,
		"goroutines":     runtime.NumGoroutine(),
	})
}

// ReadinessCheck fails when the catalog or the content store is unreachable.
// The cache is optional for serving traffic.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()
	if h.ping(ctx, h.db).Status == "unhealthy" || h.ping(ctx, h.store).Status == "unhealthy" {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Critical services unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck determines if the application is running (basic liveness check)
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
