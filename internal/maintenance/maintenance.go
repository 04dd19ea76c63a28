// Package maintenance runs the daily housekeeping loop: publish the
// stats digest and archive postings past the retention window.
package maintenance

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/internal/config"
	"github.com/sanlamamba/redbot/internal/notify"
	"github.com/sanlamamba/redbot/internal/query"
	"github.com/sanlamamba/redbot/internal/store"
)

const runInterval = 24 * time.Hour

type Runner struct {
	logger   *zap.Logger
	queries  *query.Service
	jobs     *store.JobStore
	notifier *notify.Notifier
	config   *config.Config
	cancel   context.CancelFunc
}

func NewRunner(
	logger *zap.Logger,
	queries *query.Service,
	jobs *store.JobStore,
	notifier *notify.Notifier,
	cfg *config.Config,
) *Runner {
	return &Runner{
		logger:   logger,
		queries:  queries,
		jobs:     jobs,
		notifier: notifier,
		config:   cfg,
	}
}

// Register starts the loop on application start and stops it on shutdown.
func (r *Runner) Register(lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			loopCtx, cancel := context.WithCancel(context.Background())
			r.cancel = cancel
			go r.run(loopCtx)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if r.cancel != nil {
				r.cancel()
			}
			return nil
		},
	})
}

func (r *Runner) run(ctx context.Context) {
	ticker := time.NewTicker(runInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.runOnce(ctx)
		}
	}
}

func (r *Runner) runOnce(ctx context.Context) {
	stats, err := r.queries.Stats(ctx)
	if err != nil {
		r.logger.Error("Failed to compute daily stats", zap.Error(err))
	} else if err := r.notifier.NotifyDigest(ctx, notify.RenderStats(stats)); err != nil {
		r.logger.Error("Failed to publish daily digest", zap.Error(err))
	}

	archived, err := r.jobs.ArchiveOld(ctx, r.config.ArchiveAfterDays)
	if err != nil {
		r.logger.Error("Failed to archive old postings", zap.Error(err))
		return
	}

	r.logger.Info("Maintenance run complete",
		zap.Int("archived", archived),
		zap.Int("jobs_last_24h", statsTotal(stats)),
	)
}

func statsTotal(stats *query.Stats) int {
	if stats == nil {
		return 0
	}
	return stats.TotalJobs
}
