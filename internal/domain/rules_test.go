package domain_test

import (
	"errors"
	"testing"

	"github.com/viralforge/marketplace/internal/domain"
)

func TestValidateRoleTransition(t *testing.T) {
	t.Parallel()

	allowed := []struct{ current, next domain.Role }{
		{domain.RoleBuyer, domain.RoleSeller},
		{domain.RoleSeller, domain.RoleBuyer},
		{domain.RoleBuyer, domain.RoleBoth},
		{domain.RoleSeller, domain.RoleBoth},
		{domain.RoleBoth, domain.RoleBuyer},
		{domain.RoleBoth, domain.RoleSeller},
	}
	for _, tc := range allowed {
		if err := domain.ValidateRoleTransition(tc.current, tc.next); err != nil {
			t.Fatalf("expected %s -> %s to be allowed, got %v", tc.current, tc.next, err)
		}
	}

	for _, role := range []domain.Role{domain.RoleBuyer, domain.RoleSeller, domain.RoleBoth} {
		if err := domain.ValidateRoleTransition(role, role); !errors.Is(err, domain.ErrInvalidRoleTransition) {
			t.Fatalf("expected same-role transition %s to fail, got %v", role, err)
		}
	}

	if err := domain.ValidateRoleTransition(domain.RoleBuyer, domain.Role("admin")); !errors.Is(err, domain.ErrInvalidRoleTransition) {
		t.Fatalf("expected unknown target role to fail, got %v", err)
	}
}

func TestValidateRating(t *testing.T) {
	t.Parallel()

	for rating := uint32(1); rating <= 5; rating++ {
		if err := domain.ValidateRating(rating); err != nil {
			t.Fatalf("expected rating %d to be valid, got %v", rating, err)
		}
	}
	for _, rating := range []uint32{0, 6, 100} {
		if err := domain.ValidateRating(rating); !errors.Is(err, domain.ErrInvalidRating) {
			t.Fatalf("expected rating %d to be invalid, got %v", rating, err)
		}
	}
}

func TestValidateStatusTransition(t *testing.T) {
	t.Parallel()

	if err := domain.ValidateStatusTransition(domain.OrderStatusPending, domain.OrderStatusShipped); err != nil {
		t.Fatalf("expected pending -> shipped to be allowed, got %v", err)
	}
	if err := domain.ValidateStatusTransition(domain.OrderStatusShipped, domain.OrderStatusReceived); err != nil {
		t.Fatalf("expected shipped -> received to be allowed, got %v", err)
	}

	denied := []struct{ current, next domain.OrderStatus }{
		{domain.OrderStatusPending, domain.OrderStatusReceived},
		{domain.OrderStatusShipped, domain.OrderStatusShipped},
		{domain.OrderStatusReceived, domain.OrderStatusShipped},
		{domain.OrderStatusCancelled, domain.OrderStatusShipped},
		{domain.OrderStatusCancelled, domain.OrderStatusReceived},
	}
	for _, tc := range denied {
		if err := domain.ValidateStatusTransition(tc.current, tc.next); !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("expected %s -> %s to fail, got %v", tc.current, tc.next, err)
		}
	}
}

func TestSaturatingAddReputation(t *testing.T) {
	t.Parallel()

	if got := domain.SaturatingAddReputation(10, 5); got != 15 {
		t.Fatalf("expected 15, got %d", got)
	}
	max := ^uint32(0)
	if got := domain.SaturatingAddReputation(max-2, 5); got != max {
		t.Fatalf("expected saturation at max, got %d", got)
	}
	if got := domain.SaturatingAddReputation(max, 1); got != max {
		t.Fatalf("expected max to stay at max, got %d", got)
	}
}

func TestSaturatingAddStock(t *testing.T) {
	t.Parallel()

	if got := domain.SaturatingAddStock(2, 3); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
	max := ^uint32(0)
	if got := domain.SaturatingAddStock(max-1, 3); got != max {
		t.Fatalf("expected saturation at max, got %d", got)
	}
}

func TestRoleCapabilities(t *testing.T) {
	t.Parallel()

	if !domain.RoleBuyer.CanBuy() || domain.RoleBuyer.CanSell() {
		t.Fatalf("buyer role capabilities wrong")
	}
	if domain.RoleSeller.CanBuy() || !domain.RoleSeller.CanSell() {
		t.Fatalf("seller role capabilities wrong")
	}
	if !domain.RoleBoth.CanBuy() || !domain.RoleBoth.CanSell() {
		t.Fatalf("both role capabilities wrong")
	}
	if domain.Role("admin").Valid() {
		t.Fatalf("expected unknown role to be invalid")
	}
}
