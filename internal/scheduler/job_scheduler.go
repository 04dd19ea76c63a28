package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/common/telemetry"
	"github.com/sanlamamba/redbot/internal/config"
	"github.com/sanlamamba/redbot/internal/dedup"
	"github.com/sanlamamba/redbot/internal/enrich"
	"github.com/sanlamamba/redbot/internal/messaging"
	"github.com/sanlamamba/redbot/internal/sources"
)

var tracer = telemetry.GetTracer("redbot/scheduler")

// JobScheduler polls every configured source on a fixed interval, runs the
// enrichment pipeline over discovered postings, and publishes the ones not
// seen before.
type JobScheduler struct {
	sources   []sources.Source
	processor *enrich.Processor
	publisher messaging.Publisher
	tracker   *dedup.Tracker
	logger    *zap.Logger
	config    *config.Config

	mutex    sync.Mutex
	isActive bool
}

func NewJobScheduler(
	srcs []sources.Source,
	processor *enrich.Processor,
	publisher messaging.Publisher,
	tracker *dedup.Tracker,
	logger *zap.Logger,
	cfg *config.Config,
) *JobScheduler {
	return &JobScheduler{
		sources:   srcs,
		processor: processor,
		publisher: publisher,
		tracker:   tracker,
		logger:    logger,
		config:    cfg,
	}
}

// Start runs the polling loop until ctx is cancelled. An immediate first
// poll precedes the ticker.
func (s *JobScheduler) Start(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "JobScheduler.Start")
	defer span.End()

	s.mutex.Lock()
	if s.isActive {
		s.mutex.Unlock()
		return nil
	}
	s.isActive = true
	s.mutex.Unlock()

	ticker := time.NewTicker(s.config.PollingInterval)
	defer ticker.Stop()

	s.pollAllSources(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.pollAllSources(ctx)
		}
	}
}

func (s *JobScheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.isActive = false
}

type pollStats struct {
	discovered int
	published  int
	duplicates int
}

func (s *JobScheduler) pollAllSources(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "JobScheduler.pollAllSources")
	defer span.End()

	var wg sync.WaitGroup
	for _, source := range s.sources {
		wg.Add(1)
		go func(src sources.Source) {
			defer wg.Done()
			s.pollSource(ctx, src)
		}(source)
	}
	wg.Wait()
}

func (s *JobScheduler) pollSource(ctx context.Context, source sources.Source) {
	ctx, span := tracer.Start(ctx, "JobScheduler.pollSource")
	span.SetAttributes(telemetry.String("source", source.Name()))
	defer span.End()

	jobs, err := source.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		s.logger.Error("source fetch failed",
			zap.String("source", source.Name()),
			zap.Error(err))
		return
	}

	stats := pollStats{discovered: len(jobs)}

	enriched := s.processor.ProcessBatch(jobs)
	for i := range enriched {
		job := &enriched[i]
		if s.tracker.Seen(ctx, job.URL) {
			stats.duplicates++
			continue
		}

		if err := s.publisher.PublishJobPosting(ctx, job); err != nil {
			s.logger.Error("failed to publish job posting",
				zap.String("url", job.URL),
				zap.Error(err))
			continue
		}
		if err := s.tracker.Mark(ctx, job.URL); err != nil {
			s.logger.Warn("failed to mark posting as sent",
				zap.String("url", job.URL),
				zap.Error(err))
		}
		stats.published++
	}

	batch := s.processor.Stats(enriched)
	span.SetAttributes(
		telemetry.Int("discovered", stats.discovered),
		telemetry.Int("published", stats.published),
		telemetry.Int("duplicates", stats.duplicates),
	)
	s.logger.Info("completed source poll",
		zap.String("source", source.Name()),
		zap.Int("discovered", stats.discovered),
		zap.Int("published", stats.published),
		zap.Int("duplicates", stats.duplicates),
		zap.Int("with_salary", batch.WithSalary),
		zap.Int("remote", batch.Remote),
		zap.Float64("avg_skills", batch.AvgSkillsPerJob))
}
