package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/common/telemetry"
	"github.com/sanlamamba/redbot/internal/messaging"
	"github.com/sanlamamba/redbot/internal/models"
	"github.com/sanlamamba/redbot/internal/notify"
	"github.com/sanlamamba/redbot/internal/store"
)

const similarLookbackDays = 7

// Handler consumes enriched postings off NATS and lands them in the store,
// flagging cross-source duplicates along the way.
type Handler struct {
	logger   *zap.Logger
	nc       *nats.Conn
	tracer   trace.Tracer
	jobs     *store.JobStore
	notifier *notify.Notifier
	sub      *nats.Subscription
}

func NewHandler(logger *zap.Logger, nc *nats.Conn, jobs *store.JobStore, notifier *notify.Notifier) *Handler {
	return &Handler{
		logger:   logger,
		nc:       nc,
		tracer:   telemetry.GetTracer("redbot/events"),
		jobs:     jobs,
		notifier: notifier,
	}
}

func (h *Handler) RegisterSubscriptions(lc fx.Lifecycle) error {
	sub, err := h.nc.QueueSubscribe(messaging.EnrichedPostingsSubject, "processing-service", h.handlePosting)
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", messaging.EnrichedPostingsSubject, err)
	}

	h.sub = sub
	h.logger.Info("Registered NATS subscriptions")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return h.sub.Unsubscribe()
		},
	})

	return nil
}

func (h *Handler) handlePosting(msg *nats.Msg) {
	ctx, span := h.tracer.Start(context.Background(), "handlePosting")
	defer span.End()

	if err := h.storePosting(ctx, msg.Data); err != nil {
		h.logger.Error("Failed to store job posting",
			zap.Error(err),
			zap.String("subject", msg.Subject),
		)
		return
	}

	h.logger.Info("Successfully stored job posting",
		zap.String("subject", msg.Subject),
	)
}

func (h *Handler) storePosting(ctx context.Context, rawData []byte) error {
	var posting models.JobPosting
	if err := json.Unmarshal(rawData, &posting); err != nil {
		return fmt.Errorf("decode job posting: %w", err)
	}

	existing, err := h.jobs.GetByURL(ctx, posting.URL)
	if err != nil {
		return err
	}
	if existing != nil {
		h.logger.Debug("Posting already stored", zap.String("url", posting.URL))
		return nil
	}

	if dupErr := h.flagDuplicate(ctx, &posting); dupErr != nil {
		// Duplicate detection is best effort, the posting still lands.
		h.logger.Warn("Duplicate check failed", zap.Error(dupErr))
	}

	if err := h.jobs.Save(ctx, &posting); err != nil {
		return err
	}

	if err := h.notifier.NotifyPosting(ctx, &posting); err != nil {
		// The posting is stored, losing one notification is acceptable.
		h.logger.Warn("Failed to notify posting", zap.Error(err))
	}
	return nil
}

// flagDuplicate marks the posting as a duplicate when a recent posting
// shares its company and title, which happens with cross-posted jobs.
func (h *Handler) flagDuplicate(ctx context.Context, posting *models.JobPosting) error {
	if posting.CompanyName == "" {
		return nil
	}

	similar, err := h.jobs.FindSimilar(ctx, posting, similarLookbackDays)
	if err != nil {
		return err
	}

	for _, candidate := range similar {
		if candidate.CompanyName == posting.CompanyName && candidate.Title == posting.Title {
			posting.DuplicateOf = store.PostingID(candidate.URL)
			h.logger.Info("Flagged duplicate posting",
				zap.String("url", posting.URL),
				zap.String("duplicate_of", candidate.URL),
			)
			break
		}
	}
	return nil
}
