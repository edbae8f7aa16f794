package db

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RodolfoDevApp/eventshop-billing-go/internal/domain"
)

// MemoryOutboxRepository is the outbox used when no database is configured.
// The console and the dispatcher goroutine share it, so it locks.
type MemoryOutboxRepository struct {
	mu   sync.Mutex
	seq  int64
	msgs map[uuid.UUID]*memoryEntry
}

type memoryEntry struct {
	seq int64
	msg domain.OutboxMessage
}

func NewMemoryOutboxRepository() *MemoryOutboxRepository {
	return &MemoryOutboxRepository{msgs: make(map[uuid.UUID]*memoryEntry)}
}

func (r *MemoryOutboxRepository) Insert(_ context.Context, msg domain.OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.OccurredAtUtc == 0 {
		msg.OccurredAtUtc = time.Now().UTC().Unix()
	}
	if _, exists := r.msgs[msg.ID]; exists {
		return nil
	}
	r.seq++
	r.msgs[msg.ID] = &memoryEntry{seq: r.seq, msg: msg}
	return nil
}

func (r *MemoryOutboxRepository) GetPendingBatch(_ context.Context, maxRetry, batchSize int) ([]domain.OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending := make([]*memoryEntry, 0)
	for _, e := range r.msgs {
		if e.msg.ProcessedAtUtc == nil && e.msg.RetryCount < maxRetry {
			pending = append(pending, e)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].seq < pending[j].seq })
	if batchSize > 0 && len(pending) > batchSize {
		pending = pending[:batchSize]
	}

	out := make([]domain.OutboxMessage, 0, len(pending))
	for _, e := range pending {
		out = append(out, e.msg)
	}
	return out, nil
}

func (r *MemoryOutboxRepository) Save(_ context.Context, msg domain.OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.msgs[msg.ID]
	if !ok {
		return errors.New("outbox message not found")
	}
	// Delivered messages are dropped; only pending and retry-exhausted ones stay.
	if msg.ProcessedAtUtc != nil {
		delete(r.msgs, msg.ID)
		return nil
	}
	e.msg.RetryCount = msg.RetryCount
	return nil
}

// All returns every message still held, pending or retry-exhausted, in
// insertion order.
func (r *MemoryOutboxRepository) All() []domain.OutboxMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]*memoryEntry, 0, len(r.msgs))
	for _, e := range r.msgs {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]domain.OutboxMessage, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.msg)
	}
	return out
}
