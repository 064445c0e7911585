package handlers

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marialabs/mari-gateway/internal/healthcheck"
)

// HealthResponse is the detailed health payload.
type HealthResponse struct {
	Status        string                             `json:"status"`
	Service       string                             `json:"service"`
	Version       string                             `json:"version"`
	Environment   string                             `json:"environment"`
	Uptime        string                             `json:"uptime"`
	MemoryUsageMB string                             `json:"memory_usage_mb"`
	Integrations  map[string]healthcheck.Integration `json:"integrations"`
}

// HealthHandler serves the detailed health endpoint. Not gated by the
// compliance filter.
type HealthHandler struct {
	checker     *healthcheck.Checker
	serviceName string
	version     string
	environment string
	startedAt   time.Time
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(checker *healthcheck.Checker, serviceName, version, environment string) *HealthHandler {
	return &HealthHandler{
		checker:     checker,
		serviceName: serviceName,
		version:     version,
		environment: environment,
		startedAt:   time.Now(),
	}
}

// Register binds the health route on the root, outside the API group.
func (h *HealthHandler) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
}

// Health reports overall status plus per-integration detail; 503 when any
// integration is unconfigured.
func (h *HealthHandler) Health(c echo.Context) error {
	snap := h.checker.Snapshot()

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	// Heap plus stack in use is the closest runtime proxy for resident
	// memory; the runtime does not expose RSS.
	inUse := mem.HeapInuse + mem.StackInuse

	resp := HealthResponse{
		Status:        snap.Status,
		Service:       h.serviceName,
		Version:       h.version,
		Environment:   h.environment,
		Uptime:        formatUptime(time.Since(h.startedAt)),
		MemoryUsageMB: fmt.Sprintf("%.2f", float64(inUse)/1024/1024),
		Integrations:  snap.Integrations,
	}

	status := http.StatusOK
	if snap.Status != healthcheck.StatusUp {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, resp)
}

func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	remainder := d - time.Duration(days)*24*time.Hour
	hours := int(remainder.Hours())
	minutes := int(remainder.Minutes()) % 60
	seconds := int(remainder.Seconds()) % 60
	return fmt.Sprintf("%d days, %02d:%02d:%02d", days, hours, minutes, seconds)
}
