package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
)

// ErrUnroutableEvent is returned for events without a routing key; the
// routing key is the message type the dispatcher publishes under.
var ErrUnroutableEvent = errors.New("event has no routing key")

// OutboxWriter records domain events as pending outbox messages.
type OutboxWriter interface {
	Enqueue(ctx context.Context, ev domain.Event) error
}

type outboxWriter struct {
	repo domain.OutboxRepository
}

func NewOutboxWriter(repo domain.OutboxRepository) OutboxWriter {
	return &outboxWriter{repo: repo}
}

func (w *outboxWriter) Enqueue(ctx context.Context, ev domain.Event) error {
	if ev == nil {
		return fmt.Errorf("enqueue: %w", ErrUnroutableEvent)
	}
	key := ev.GetRoutingKey()
	if key == "" {
		return fmt.Errorf("enqueue event %s: %w", ev.GetEventID(), ErrUnroutableEvent)
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", key, err)
	}

	// The event id is the message id, so a replayed Enqueue is a no-op.
	id := ev.GetEventID()
	if id == uuid.Nil {
		id = uuid.New()
	}

	return w.repo.Insert(ctx, domain.OutboxMessage{
		ID:            id,
		Type:          key,
		PayloadJSON:   string(payload),
		OccurredAtUtc: time.Now().UTC().Unix(),
	})
}
