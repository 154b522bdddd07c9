// Package memory implements every repository port plus the market read port
// on top of one mutex-guarded in-memory store. List calls copy out, so the
// reporting layer always sees a complete snapshot, never a half-applied
// write.
package memory

import (
	"context"
	"sync"

	"github.com/viralforge/marketplace/internal/domain"
)

type Store struct {
	mu sync.RWMutex

	users     map[string]domain.User
	userOrder []string

	products      map[uint32]domain.Product
	nextProductID uint32

	orders      map[uint32]domain.Order
	nextOrderID uint32
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]domain.User),
		products: make(map[uint32]domain.Product),
		orders:   make(map[uint32]domain.Order),
	}
}

// Users, Products and Orders expose the store through the repository ports.
func (s *Store) Users() *UserRepository       { return &UserRepository{store: s} }
func (s *Store) Products() *ProductRepository { return &ProductRepository{store: s} }
func (s *Store) Orders() *OrderRepository     { return &OrderRepository{store: s} }

// AllUsers returns users in registration order.
func (s *Store) AllUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.userOrder))
	for _, identity := range s.userOrder {
		if u, ok := s.users[identity]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// AllProducts returns products in id order.
func (s *Store) AllProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, 0, len(s.products))
	for id := uint32(0); id < s.nextProductID; id++ {
		if p, ok := s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// AllOrders returns orders in id order.
func (s *Store) AllOrders(_ context.Context) ([]domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Order, 0, len(s.orders))
	for id := uint32(0); id < s.nextOrderID; id++ {
		if o, ok := s.orders[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}
