package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/common/telemetry"
	"github.com/sanlamamba/redbot/internal/config"
	"github.com/sanlamamba/redbot/internal/errors"
	"github.com/sanlamamba/redbot/internal/models"
)

var tracer = telemetry.GetTracer("redbot/messaging")

const (
	// EnrichedPostingsSubject carries postings that went through the
	// enrichment pipeline and await persistence/notification.
	EnrichedPostingsSubject = "jobs.enriched"
)

type Publisher interface {
	PublishJobPosting(ctx context.Context, posting *models.JobPosting) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewPublisher(logger *zap.Logger, cfg *config.Config) (Publisher, error) {
	opts := []nats.Option{
		nats.Timeout(cfg.NATSConnTimeout),
		nats.Name("ingestion-service"),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	}

	conn, err := nats.Connect(cfg.NATSURL, opts...)
	if err != nil {
		return nil, errors.Internal("connecting to NATS", err)
	}

	return &natsPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *natsPublisher) PublishJobPosting(ctx context.Context, posting *models.JobPosting) error {
	_, span := tracer.Start(ctx, "PublishJobPosting")
	defer span.End()

	data, err := json.Marshal(posting)
	if err != nil {
		span.RecordError(err)
		return errors.Internal("marshaling job posting", err)
	}

	span.SetAttributes(
		telemetry.String("nats.subject", EnrichedPostingsSubject),
		telemetry.Int("message.size", len(data)),
	)

	if err := p.conn.Publish(EnrichedPostingsSubject, data); err != nil {
		span.RecordError(err)
		p.logger.Error("failed to publish job posting",
			zap.String("url", posting.URL),
			zap.Error(err))
		return errors.Internal("publishing to NATS", err)
	}

	p.logger.Debug("published job posting",
		zap.String("url", posting.URL),
		zap.String("subject", EnrichedPostingsSubject))
	return nil
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
