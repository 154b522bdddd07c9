package application

import (
	"context"
	"errors"
	"strings"

	"github.com/viralforge/marketplace/internal/domain"
)

// CreateOrder reserves stock on the product and opens a Pending order for
// the caller. All validations run before any store is touched, so a failed
// call never leaves a partial mutation behind.
func (s *Service) CreateOrder(ctx context.Context, caller string, productID, quantity uint32) (uint32, error) {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return 0, domain.ErrUnauthorized
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.Get(ctx, caller)
	if err != nil {
		return 0, err
	}
	if !user.Role.CanBuy() {
		return 0, domain.ErrWrongRole
	}
	if quantity == 0 {
		return 0, domain.ErrInvalidQuantity
	}
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	if product.Quantity < quantity {
		return 0, domain.ErrInsufficientStock
	}
	id, err := s.orders.NextID(ctx)
	if err != nil {
		return 0, err
	}

	product.Quantity -= quantity
	if err := s.products.Update(ctx, product); err != nil {
		return 0, err
	}
	order := domain.NewOrder(id, caller, product.Seller, productID, quantity)
	if err := s.orders.Create(ctx, order); err != nil {
		return 0, err
	}
	return id, nil
}

// MarkShipped moves a Pending order to Shipped. Only the order's seller may
// do this.
func (s *Service) MarkShipped(ctx context.Context, caller string, orderID uint32) error {
	return s.transitionOrder(ctx, caller, orderID, domain.OrderStatusShipped)
}

// MarkReceived moves a Shipped order to Received. Only the order's buyer may
// do this.
func (s *Service) MarkReceived(ctx context.Context, caller string, orderID uint32) error {
	return s.transitionOrder(ctx, caller, orderID, domain.OrderStatusReceived)
}

func (s *Service) transitionOrder(ctx context.Context, caller string, orderID uint32, next domain.OrderStatus) error {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return domain.ErrUnauthorized
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.users.Exists(ctx, caller)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotRegistered
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	switch next {
	case domain.OrderStatusShipped:
		if caller != order.Seller {
			return domain.ErrWrongRole
		}
	case domain.OrderStatusReceived:
		if caller != order.Buyer {
			return domain.ErrWrongRole
		}
	}
	if err := domain.ValidateStatusTransition(order.Status, next); err != nil {
		return err
	}
	order.Status = next
	return s.orders.Update(ctx, order)
}

// RequestCancellation records the caller's side of the two-flag handshake on
// a Pending order. Calling twice is idempotent. Once both flags are set the
// order becomes Cancelled and the full order quantity goes back onto the
// product's stock; a single request on its own changes neither status nor
// stock.
func (s *Service) RequestCancellation(ctx context.Context, caller string, orderID uint32) error {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return domain.ErrUnauthorized
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.users.Exists(ctx, caller)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotRegistered
	}
	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderStatusPending {
		return domain.ErrInvalidState
	}
	switch caller {
	case order.Buyer:
		order.BuyerRequestsCancel = true
	case order.Seller:
		order.SellerAcceptsCancel = true
	default:
		return domain.ErrWrongRole
	}
	if !(order.BuyerRequestsCancel && order.SellerAcceptsCancel) {
		return s.orders.Update(ctx, order)
	}

	order.Status = domain.OrderStatusCancelled
	if err := s.orders.Update(ctx, order); err != nil {
		return err
	}
	// Restore stock. A vanished product record is tolerated the same way a
	// vanished counterparty is tolerated when rating.
	product, err := s.products.Get(ctx, order.ProductID)
	if errors.Is(err, domain.ErrProductNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	product.Quantity = domain.SaturatingAddStock(product.Quantity, order.Quantity)
	return s.products.Update(ctx, product)
}
