package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/viralforge/marketplace/internal/domain"
	"github.com/viralforge/marketplace/internal/ports"
)

func TestProductIDSequence(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()

	for want := uint32(0); want < 3; want++ {
		id, err := store.Products().NextID(ctx)
		if err != nil || id != want {
			t.Fatalf("expected id %d, got %d %v", want, id, err)
		}
	}
	count, err := store.Products().Count(ctx)
	if err != nil || count != 3 {
		t.Fatalf("expected count 3, got %d %v", count, err)
	}
}

func TestNextIDOverflow(t *testing.T) {
	t.Parallel()
	store := NewStore()
	store.nextOrderID = ^uint32(0)

	if _, err := store.Orders().NextID(context.Background()); !errors.Is(err, domain.ErrInternal) {
		t.Fatalf("expected ErrInternal at counter ceiling, got %v", err)
	}
}

func TestUserSnapshotOrderAndIsolation(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()

	for _, identity := range []string{"zulu", "alpha", "mike"} {
		if err := store.Users().Create(ctx, domain.User{Identity: identity, Role: domain.RoleBuyer}); err != nil {
			t.Fatalf("create %s: %v", identity, err)
		}
	}

	snapshot, err := store.AllUsers(ctx)
	if err != nil {
		t.Fatalf("all users: %v", err)
	}
	if snapshot[0].Identity != "zulu" || snapshot[1].Identity != "alpha" || snapshot[2].Identity != "mike" {
		t.Fatalf("expected registration order, got %+v", snapshot)
	}

	// The snapshot is a copy; mutating it must not leak into the store.
	snapshot[0].Role = domain.RoleBoth
	stored, err := store.Users().Get(ctx, "zulu")
	if err != nil || stored.Role != domain.RoleBuyer {
		t.Fatalf("snapshot mutation leaked into store: %+v %v", stored, err)
	}
}

func TestUpdateMissingRecords(t *testing.T) {
	t.Parallel()
	store := NewStore()
	ctx := context.Background()

	if err := store.Users().Update(ctx, domain.User{Identity: "ghost"}); !errors.Is(err, domain.ErrNotRegistered) {
		t.Fatalf("expected ErrNotRegistered, got %v", err)
	}
	if err := store.Products().Update(ctx, domain.Product{ID: 7}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := store.Orders().Update(ctx, domain.Order{ID: 7}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOutboxFIFO(t *testing.T) {
	t.Parallel()
	outbox := NewOutboxRepository()
	ctx := context.Background()

	for i, eventType := range []string{"first", "second", "third"} {
		err := outbox.Enqueue(ctx, ports.OutboxEvent{
			EventID:    uuid.New(),
			EventType:  eventType,
			Payload:    []byte{byte(i)},
			OccurredAt: time.Now(),
		})
		if err != nil {
			t.Fatalf("enqueue %s: %v", eventType, err)
		}
	}

	records, err := outbox.FetchUnpublished(ctx, 2)
	if err != nil || len(records) != 2 {
		t.Fatalf("expected two records, got %d %v", len(records), err)
	}
	if records[0].EventType != "first" || records[1].EventType != "second" {
		t.Fatalf("expected FIFO order, got %s %s", records[0].EventType, records[1].EventType)
	}

	if err := outbox.MarkPublished(ctx, records[0].OutboxID, time.Now()); err != nil {
		t.Fatalf("mark published: %v", err)
	}
	records, err = outbox.FetchUnpublished(ctx, 10)
	if err != nil || len(records) != 2 {
		t.Fatalf("expected two unpublished left, got %d %v", len(records), err)
	}
	if records[0].EventType != "second" {
		t.Fatalf("expected second at head after publish, got %s", records[0].EventType)
	}

	if err := outbox.MarkFailed(ctx, records[0].OutboxID, "broker down", time.Now()); err != nil {
		t.Fatalf("mark failed: %v", err)
	}
	records, _ = outbox.FetchUnpublished(ctx, 10)
	if records[0].RetryCount != 1 || records[0].LastError == nil {
		t.Fatalf("expected failure bookkeeping, got %+v", records[0])
	}
}
