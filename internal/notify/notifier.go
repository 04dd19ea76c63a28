package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/sanlamamba/redbot/common/telemetry"
	"github.com/sanlamamba/redbot/internal/models"
)

const (
	PostingsSubject = "notifications.postings"
	DigestSubject   = "notifications.digest"
)

var tracer = telemetry.GetTracer("redbot/notify")

// Notification is the message delivered to downstream dispatch surfaces.
type Notification struct {
	URL  string `json:"url,omitempty"`
	Body string `json:"body"`
}

// Notifier renders postings and publishes them on the notification
// subjects for whatever bridge delivers them to users.
type Notifier struct {
	logger *zap.Logger
	nc     *nats.Conn
}

func NewNotifier(logger *zap.Logger, nc *nats.Conn) *Notifier {
	return &Notifier{
		logger: logger,
		nc:     nc,
	}
}

// NotifyPosting publishes the rendered posting. Duplicates stay silent;
// they are stored for analytics but not worth a second notification.
func (n *Notifier) NotifyPosting(ctx context.Context, job *models.JobPosting) error {
	_, span := tracer.Start(ctx, "Notifier.NotifyPosting")
	defer span.End()

	if job.DuplicateOf != "" {
		n.logger.Debug("Skipping notification for duplicate posting",
			zap.String("url", job.URL))
		return nil
	}

	payload, err := json.Marshal(Notification{
		URL:  job.URL,
		Body: RenderPosting(job),
	})
	if err != nil {
		return fmt.Errorf("encode posting notification: %w", err)
	}

	if err := n.nc.Publish(PostingsSubject, payload); err != nil {
		span.RecordError(err)
		return fmt.Errorf("publish posting notification: %w", err)
	}
	return nil
}

// NotifyDigest publishes a rendered digest body, such as daily stats.
func (n *Notifier) NotifyDigest(ctx context.Context, body string) error {
	_, span := tracer.Start(ctx, "Notifier.NotifyDigest")
	defer span.End()

	payload, err := json.Marshal(Notification{Body: body})
	if err != nil {
		return fmt.Errorf("encode digest notification: %w", err)
	}

	if err := n.nc.Publish(DigestSubject, payload); err != nil {
		span.RecordError(err)
		return fmt.Errorf("publish digest notification: %w", err)
	}
	return nil
}
