package application

import (
	"context"

	"github.com/viralforge/marketplace/internal/domain"
)

// AllUsers returns all registered users in registration order. Together with
// AllProducts and AllOrders this makes the engine usable as the reporting
// layer's in-process read port.
func (s *Service) AllUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.ListAll(ctx)
}

func (s *Service) AllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListAll(ctx)
}

func (s *Service) AllOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// ProductCount returns how many product ids have been issued.
func (s *Service) ProductCount(ctx context.Context) (uint32, error) {
	return s.products.Count(ctx)
}

// OrderCount returns how many order ids have been issued.
func (s *Service) OrderCount(ctx context.Context) (uint32, error) {
	return s.orders.Count(ctx)
}
