// Package healthcheck reports the configuration status of the gateway's
// external integrations.
package healthcheck

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Integration statuses as reported to callers.
const (
	StatusUp           = "UP"
	StatusConfigured   = "CONFIGURED"
	StatusUnconfigured = "UNCONFIGURED"
	StatusDegraded     = "DEGRADED"
)

// Integration is one external collaborator's status.
type Integration struct {
	Status string `json:"status"`
}

// Snapshot is a point-in-time view over every integration.
type Snapshot struct {
	Status       string
	Integrations map[string]Integration
	RefreshedAt  time.Time
}

// Probe evaluates a single integration.
type Probe interface {
	Name() string
	Check(ctx context.Context) Integration
}

// Checker caches the latest integration snapshot. Refresh runs at startup
// and then on a timer so the health endpoint never blocks on probes.
type Checker struct {
	probes []Probe
	logger *slog.Logger

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewChecker creates a checker over the given probes and takes an initial
// snapshot.
func NewChecker(log *slog.Logger, probes ...Probe) *Checker {
	if log == nil {
		log = slog.Default()
	}
	c := &Checker{
		probes: probes,
		logger: log.With(slog.String("service", "healthcheck")),
	}
	c.Refresh(context.Background())
	return c
}

// Refresh re-evaluates every probe and stores the new snapshot.
func (c *Checker) Refresh(ctx context.Context) {
	integrations := make(map[string]Integration, len(c.probes))
	overall := StatusUp
	for _, probe := range c.probes {
		result := probe.Check(ctx)
		integrations[probe.Name()] = result
		if result.Status != StatusUp && result.Status != StatusConfigured {
			overall = StatusDegraded
		}
	}

	c.mu.Lock()
	c.snapshot = Snapshot{
		Status:       overall,
		Integrations: integrations,
		RefreshedAt:  time.Now(),
	}
	c.mu.Unlock()

	c.logger.Debug("health snapshot refreshed", slog.String("status", overall))
}

// Snapshot returns the cached snapshot.
func (c *Checker) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}
