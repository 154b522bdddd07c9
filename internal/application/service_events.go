package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/viralforge/marketplace/internal/domain"
	"github.com/viralforge/marketplace/internal/ports"
)

const (
	EventRoleChanged      = "marketplace.role_changed"
	EventProductPublished = "marketplace.product_published"
	EventBuyerRated       = "marketplace.buyer_rated"
	EventSellerRated      = "marketplace.seller_rated"
)

type roleChangedEventData struct {
	Identity string `json:"identity"`
	OldRole  string `json:"old_role"`
	NewRole  string `json:"new_role"`
}

type productPublishedEventData struct {
	Seller    string `json:"seller"`
	ProductID uint32 `json:"product_id"`
}

type ratingEventData struct {
	OrderID uint32 `json:"order_id"`
	Buyer   string `json:"buyer"`
	Seller  string `json:"seller"`
	Rating  uint32 `json:"rating"`
}

func (s *Service) enqueueRoleChanged(ctx context.Context, identity string, oldRole, newRole domain.Role) error {
	return s.enqueue(ctx, EventRoleChanged, identity, roleChangedEventData{
		Identity: identity,
		OldRole:  string(oldRole),
		NewRole:  string(newRole),
	})
}

func (s *Service) enqueueProductPublished(ctx context.Context, seller string, productID uint32) error {
	return s.enqueue(ctx, EventProductPublished, seller, productPublishedEventData{
		Seller:    seller,
		ProductID: productID,
	})
}

func (s *Service) enqueueBuyerRated(ctx context.Context, orderID uint32, buyer, seller string, rating uint32) error {
	return s.enqueue(ctx, EventBuyerRated, buyer, ratingEventData{
		OrderID: orderID,
		Buyer:   buyer,
		Seller:  seller,
		Rating:  rating,
	})
}

func (s *Service) enqueueSellerRated(ctx context.Context, orderID uint32, seller, buyer string, rating uint32) error {
	return s.enqueue(ctx, EventSellerRated, seller, ratingEventData{
		OrderID: orderID,
		Buyer:   buyer,
		Seller:  seller,
		Rating:  rating,
	})
}

func (s *Service) enqueue(ctx context.Context, eventType, partitionKey string, data any) error {
	if s.outbox == nil {
		return nil
	}
	occurredAt := s.nowFn()
	envelope := map[string]any{
		"event_id":       uuid.NewString(),
		"event_type":     eventType,
		"occurred_at":    occurredAt.Format(time.RFC3339),
		"source_service": s.cfg.ServiceName,
		"schema_version": "1.0",
		"partition_key":  partitionKey,
		"data":           data,
	}
	payload, _ := json.Marshal(envelope)
	return s.outbox.Enqueue(ctx, ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventType,
		PartitionKey: partitionKey,
		Payload:      payload,
		OccurredAt:   occurredAt,
	})
}
