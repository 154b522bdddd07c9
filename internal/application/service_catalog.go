package application

import (
	"context"
	"strings"

	"github.com/viralforge/marketplace/internal/domain"
)

type PublishInput struct {
	Name        string
	Description string
	Price       uint64
	Quantity    uint32
	Category    string
}

// Publish registers a new product under the caller with the next sequential
// product id and emits a product-published notification.
func (s *Service) Publish(ctx context.Context, caller string, input PublishInput) (uint32, error) {
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
	if !user.Role.CanSell() {
		return 0, domain.ErrWrongRole
	}
	if input.Quantity == 0 {
		return 0, domain.ErrInvalidQuantity
	}
	id, err := s.products.NextID(ctx)
	if err != nil {
		return 0, err
	}
	product := domain.Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Category:    input.Category,
		Seller:      caller,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return 0, err
	}
	if err := s.enqueueProductPublished(ctx, caller, id); err != nil {
		return 0, err
	}
	return id, nil
}

// ListOwnProducts returns the caller's published products. The caller must
// hold a selling role; an empty result is reported as ErrEmptyCatalog.
func (s *Service) ListOwnProducts(ctx context.Context, caller string) ([]domain.Product, error) {
	user, err := s.users.Get(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !user.Role.CanSell() {
		return nil, domain.ErrWrongRole
	}
	return s.listBySeller(ctx, caller)
}

// ListProductsBy returns any seller's products without a role check; the
// queried identity does not need to be registered.
func (s *Service) ListProductsBy(ctx context.Context, seller string) ([]domain.Product, error) {
	return s.listBySeller(ctx, seller)
}

func (s *Service) listBySeller(ctx context.Context, seller string) ([]domain.Product, error) {
	all, err := s.products.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if p.Seller == seller {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	return out, nil
}
