package application

import (
	"context"
	"errors"
	"strings"

	"github.com/viralforge/marketplace/internal/domain"
)

// RateSeller lets the order's buyer rate the seller exactly once on a
// Received order. The seller's reputation grows by the rating, saturating at
// the counter ceiling; a missing seller record skips the reputation update
// but still consumes the rating flag.
func (s *Service) RateSeller(ctx context.Context, caller string, orderID uint32, rating uint32) error {
	return s.rate(ctx, caller, orderID, rating, true)
}

// RateBuyer is the seller-side counterpart of RateSeller.
func (s *Service) RateBuyer(ctx context.Context, caller string, orderID uint32, rating uint32) error {
	return s.rate(ctx, caller, orderID, rating, false)
}

func (s *Service) rate(ctx context.Context, caller string, orderID uint32, rating uint32, sellerRated bool) error {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return domain.ErrUnauthorized
	}
	if err := domain.ValidateRating(rating); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	var counterparty string
	if sellerRated {
		if caller != order.Buyer {
			return domain.ErrWrongRole
		}
		counterparty = order.Seller
	} else {
		if caller != order.Seller {
			return domain.ErrWrongRole
		}
		counterparty = order.Buyer
	}
	if order.Status != domain.OrderStatusReceived {
		return domain.ErrInvalidState
	}
	if (sellerRated && order.BuyerRated) || (!sellerRated && order.SellerRated) {
		return domain.ErrAlreadyRated
	}

	if sellerRated {
		order.BuyerRated = true
	} else {
		order.SellerRated = true
	}
	if err := s.orders.Update(ctx, order); err != nil {
		return err
	}

	user, err := s.users.Get(ctx, counterparty)
	switch {
	case errors.Is(err, domain.ErrNotRegistered):
		// Counterparty record is gone; the rating flag stays consumed.
	case err != nil:
		return err
	default:
		if sellerRated {
			user.SellerReputation = domain.SaturatingAddReputation(user.SellerReputation, rating)
		} else {
			user.BuyerReputation = domain.SaturatingAddReputation(user.BuyerReputation, rating)
		}
		if err := s.users.Update(ctx, user); err != nil {
			return err
		}
	}

	if sellerRated {
		return s.enqueueBuyerRated(ctx, order.ID, order.Buyer, order.Seller, rating)
	}
	return s.enqueueSellerRated(ctx, order.ID, order.Seller, order.Buyer, rating)
}
