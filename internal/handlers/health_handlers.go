package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const readinessTimeout = 3 * time.Second

// Pinger is implemented by *pgxpool.Pool and the cache service
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers serves the liveness and readiness endpoints
type HealthHandlers struct {
	db      Pinger
	cache   Pinger
	version string
	log     *zap.Logger
}

func NewHealthHandlers(db, cache Pinger, version string, log *zap.Logger) *HealthHandlers {
	return &HealthHandlers{db: db, cache: cache, version: version, log: log}
}

// HealthStatus is the body of both health endpoints
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services,omitempty"`
}

// LivenessCheck reports that the process is serving
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "alive",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
	})
}

// ReadinessCheck pings PostgreSQL and Redis. Both are required to serve traffic.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Services:  map[string]string{},
	}
	code := http.StatusOK

	for name, dep := range map[string]Pinger{"database": h.db, "redis": h.cache} {
		if err := dep.Ping(ctx); err != nil {
			h.log.Warn("Readiness check failed", zap.String("service", name), zap.Error(err))
			status.Services[name] = "unhealthy"
			status.Status = "not_ready"
			code = http.StatusServiceUnavailable
			continue
		}
		status.Services[name] = "healthy"
	}

	return c.JSON(code, status)
}
