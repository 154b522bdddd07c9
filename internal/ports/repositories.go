package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/viralforge/marketplace/internal/domain"
)

// UserRepository owns the identity/role/reputation records. Identities are
// never removed; ListAll returns users in registration order.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	Get(ctx context.Context, identity string) (domain.User, error)
	Exists(ctx context.Context, identity string) (bool, error)
	Update(ctx context.Context, user domain.User) error
	ListAll(ctx context.Context) ([]domain.User, error)
}

// ProductRepository owns catalog records and the product id sequence.
// NextID fails with domain.ErrInternal once the counter would wrap.
type ProductRepository interface {
	NextID(ctx context.Context) (uint32, error)
	Create(ctx context.Context, product domain.Product) error
	Get(ctx context.Context, id uint32) (domain.Product, error)
	Update(ctx context.Context, product domain.Product) error
	ListAll(ctx context.Context) ([]domain.Product, error)
	Count(ctx context.Context) (uint32, error)
}

// OrderRepository owns order records and the order id sequence.
type OrderRepository interface {
	NextID(ctx context.Context) (uint32, error)
	Create(ctx context.Context, order domain.Order) error
	Get(ctx context.Context, id uint32) (domain.Order, error)
	Update(ctx context.Context, order domain.Order) error
	ListAll(ctx context.Context) ([]domain.Order, error)
	Count(ctx context.Context) (uint32, error)
}

type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	PublishedAt  *time.Time
	LastError    *string
	LastErrorAt  *time.Time
	FirstSeenAt  time.Time
}

// OutboxRepository buffers notifications so they leave the service in the
// same order as the mutations that produced them.
type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}
