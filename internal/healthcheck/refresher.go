package healthcheck

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Refresher re-takes the checker's snapshot on a fixed schedule.
type Refresher struct {
	cron    *cron.Cron
	checker *Checker
	logger  *slog.Logger
}

// NewRefresher schedules a snapshot refresh with the given cron spec
// (e.g. "@every 1m").
func NewRefresher(log *slog.Logger, checker *Checker, spec string) (*Refresher, error) {
	if log == nil {
		log = slog.Default()
	}
	if spec == "" {
		spec = "@every 1m"
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		checker.Refresh(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("schedule health refresh: %w", err)
	}
	return &Refresher{
		cron:    c,
		checker: checker,
		logger:  log.With(slog.String("service", "health_refresher")),
	}, nil
}

// Start begins the refresh schedule.
func (r *Refresher) Start() {
	r.cron.Start()
	r.logger.Debug("health refresher started")
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
