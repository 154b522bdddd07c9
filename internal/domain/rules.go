package domain

// ValidateRoleTransition enforces the role change matrix: Both may move to
// either single role, Buyer and Seller may only swap with each other, and no
// role reaches Both after registration. Changing to the current role is
// rejected as well.
func ValidateRoleTransition(current, next Role) error {
	if !next.Valid() {
		return ErrInvalidRoleTransition
	}
	if current == next {
		return ErrInvalidRoleTransition
	}
	switch current {
	case RoleBoth:
		return nil
	case RoleBuyer:
		if next != RoleSeller {
			return ErrInvalidRoleTransition
		}
	case RoleSeller:
		if next != RoleBuyer {
			return ErrInvalidRoleTransition
		}
	}
	return nil
}

// ValidateRating checks the 1..5 rating range.
func ValidateRating(rating uint32) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

// ValidateStatusTransition allows Pending->Shipped and Shipped->Received.
// Cancellation is not a direct transition; it happens through the
// mutual-consent handshake.
func ValidateStatusTransition(current, next OrderStatus) error {
	switch {
	case current == OrderStatusPending && next == OrderStatusShipped:
		return nil
	case current == OrderStatusShipped && next == OrderStatusReceived:
		return nil
	}
	return ErrInvalidState
}

// SaturatingAddReputation adds a rating to a reputation counter without
// wrapping past the uint32 ceiling.
func SaturatingAddReputation(counter, rating uint32) uint32 {
	if counter > ^uint32(0)-rating {
		return ^uint32(0)
	}
	return counter + rating
}

// SaturatingAddStock restores cancelled stock without wrapping.
func SaturatingAddStock(stock, quantity uint32) uint32 {
	if stock > ^uint32(0)-quantity {
		return ^uint32(0)
	}
	return stock + quantity
}
