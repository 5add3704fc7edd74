// Package events serializes job lifecycle events and publishes them to
// the configured broker so downstream services (search indexers,
// notifiers) can react to posting changes.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jobstack-io/apiserver/internal/mq"
	"github.com/jobstack-io/apiserver/types"
	"github.com/rs/zerolog"
)

// ChannelJobEvents is the channel all job lifecycle events go to.
const ChannelJobEvents = "job-events"

const (
	TypeJobCreated = "job.created"
	TypeJobUpdated = "job.updated"
	TypeJobDeleted = "job.deleted"
)

// JobEvent is the wire payload for a job lifecycle event.
type JobEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Job        types.Job `json:"job"`
}

// Publisher emits job events on an mq backend. Publishing is
// best-effort: failures are logged and swallowed so the request that
// triggered the event is never affected.
type Publisher struct {
	mq  *mq.MQ
	log zerolog.Logger
}

func NewPublisher(m *mq.MQ, log zerolog.Logger) *Publisher {
	return &Publisher{mq: m, log: log}
}

func (p *Publisher) JobCreated(ctx context.Context, job types.Job) {
	p.publish(ctx, TypeJobCreated, job)
}

func (p *Publisher) JobUpdated(ctx context.Context, job types.Job) {
	p.publish(ctx, TypeJobUpdated, job)
}

func (p *Publisher) JobDeleted(ctx context.Context, job types.Job) {
	p.publish(ctx, TypeJobDeleted, job)
}

func (p *Publisher) publish(ctx context.Context, eventType string, job types.Job) {
	event := JobEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Job:        job,
	}

	data, err := json.Marshal(event)
	if err != nil {
		p.log.Error().Err(err).Str("type", eventType).Msg("failed to encode job event")
		return
	}

	attrs := map[string]string{"type": eventType}
	if _, err := p.mq.Publish(ctx, ChannelJobEvents, data, attrs); err != nil {
		p.log.Error().Err(err).Str("type", eventType).Int("job_id", job.ID).Msg("failed to publish job event")
	}
}
