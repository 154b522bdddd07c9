package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/viralforge/marketplace/internal/ports"
)

// OutboxRepository is a FIFO in-memory outbox. Records keep enqueue order so
// notifications leave in the same order as the mutations that caused them.
type OutboxRepository struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]ports.OutboxRecord
	order []uuid.UUID
}

func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{rows: make(map[uuid.UUID]ports.OutboxRecord)}
}

func (r *OutboxRepository) Enqueue(_ context.Context, event ports.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := uuid.New()
	r.rows[id] = ports.OutboxRecord{
		OutboxID:     id,
		EventType:    event.EventType,
		PartitionKey: event.PartitionKey,
		Payload:      append([]byte(nil), event.Payload...),
		FirstSeenAt:  event.OccurredAt,
	}
	r.order = append(r.order, id)
	return nil
}

func (r *OutboxRepository) FetchUnpublished(_ context.Context, limit int) ([]ports.OutboxRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ports.OutboxRecord, 0, limit)
	for _, id := range r.order {
		row, ok := r.rows[id]
		if !ok || row.PublishedAt != nil {
			continue
		}
		copied := row
		copied.Payload = append([]byte(nil), row.Payload...)
		out = append(out, copied)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *OutboxRepository) MarkPublished(_ context.Context, outboxID uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[outboxID]
	if !ok {
		return nil
	}
	row.PublishedAt = &at
	r.rows[outboxID] = row
	return nil
}

func (r *OutboxRepository) MarkFailed(_ context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[outboxID]
	if !ok {
		return nil
	}
	row.RetryCount++
	row.LastError = &errMsg
	row.LastErrorAt = &at
	r.rows[outboxID] = row
	return nil
}
