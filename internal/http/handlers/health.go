package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthHandler serves the probe endpoints. Payments depend on Postgres being
// reachable, so the readiness check gates on a database ping.
type HealthHandler struct {
	db        *pgxpool.Pool
	startTime time.Time
	version   string
}

func NewHealthHandler(db *pgxpool.Pool, version string) *HealthHandler {
	return &HealthHandler{db: db, startTime: time.Now(), version: version}
}

type healthReport struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	Uptime    string            `json:"uptime,omitempty"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// Liveness answers as long as the process runs.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness pings the database and reports per-dependency state. A failing
// check flips the response to 503 so the orchestrator stops routing checkouts
// here.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	ready := true

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "unhealthy: " + err.Error()
		ready = false
	} else {
		checks["database"] = "healthy"
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	checks["memory_alloc_mb"] = fmt.Sprintf("%.2f", float64(m.Alloc)/1024/1024)

	status := "healthy"
	code := http.StatusOK
	if !ready {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, healthReport{
		Status:    status,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
	})
}

// Health is the plain check the legacy frontend polls: a quick database ping
// and the running version.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": h.version,
	})
}
