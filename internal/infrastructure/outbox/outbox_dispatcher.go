package outbox

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
)

// Publisher delivers one serialised event to the outside world.
type Publisher interface {
	Publish(ctx context.Context, messageID, eventType string, payload []byte) error
}

type Dispatcher struct {
	repo      domain.OutboxRepository
	publisher Publisher
	maxRetry  int
	batchSize int
}

func NewDispatcher(
	repo domain.OutboxRepository,
	publisher Publisher,
	maxRetry, batchSize int,
) *Dispatcher {
	return &Dispatcher{
		repo:      repo,
		publisher: publisher,
		maxRetry:  maxRetry,
		batchSize: batchSize,
	}
}

// DispatchOnce publishes one batch of pending messages and reports how many
// were delivered. Failed messages stay pending with their retry count bumped.
func (d *Dispatcher) DispatchOnce(ctx context.Context) (int, error) {
	msgs, err := d.repo.GetPendingBatch(ctx, d.maxRetry, d.batchSize)
	if err != nil {
		return 0, err
	}
	if len(msgs) == 0 {
		return 0, nil
	}

	processed := 0
	for i := range msgs {
		msg := &msgs[i]

		if !json.Valid([]byte(msg.PayloadJSON)) {
			log.Printf("Outbox: invalid payload for %s id=%s", msg.Type, msg.ID.String())
			msg.RetryCount++
			if err := d.repo.Save(ctx, *msg); err != nil {
				log.Printf("Outbox: failed to save message: %v", err)
			}
			continue
		}

		if err := d.publisher.Publish(ctx, msg.ID.String(), msg.Type, []byte(msg.PayloadJSON)); err != nil {
			log.Printf("Outbox: failed to publish %s: %v", msg.Type, err)
			msg.RetryCount++
		} else {
			now := time.Now().UTC().Unix()
			msg.ProcessedAtUtc = &now
			processed++
		}

		if err := d.repo.Save(ctx, *msg); err != nil {
			log.Printf("Outbox: failed to save message: %v", err)
		}
	}

	return processed, nil
}
