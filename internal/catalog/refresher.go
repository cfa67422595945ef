package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher re-primes the featured selection and the search source on a
// cron schedule, so deployments can opt out of the fetch-once staleness
// without changing request-path behavior.
type Refresher struct {
	service *Service
	sched   cron.Schedule
	logger  *slog.Logger
}

// NewRefresher parses the standard cron expression (descriptors like
// @hourly work too). The expression is validated once here.
func NewRefresher(service *Service, cronExpr string, logger *slog.Logger) (*Refresher, error) {
	sched, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &Refresher{
		service: service,
		sched:   sched,
		logger:  logger.With("component", "refresher"),
	}, nil
}

// Start blocks until ctx is done, refreshing at each scheduled time.
func (r *Refresher) Start(ctx context.Context) {
	next := r.sched.Next(time.Now())
	r.logger.Info("refresher started", "next_run", next)

	for {
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("refresher shut down")
			return
		case <-timer.C:
			r.refresh(ctx)
			next = r.sched.Next(time.Now())
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	snap := r.service.Featured(refreshCtx)
	if snap.Err != "" {
		r.logger.Warn("featured refresh failed", "error", snap.Err)
	}
	r.service.RefreshSearchSource(refreshCtx)
	r.logger.Info("catalog refreshed")
}
