package application

import (
	"context"
	"strings"

	"github.com/viralforge/marketplace/internal/domain"
)

// Register creates a User record for the caller with zero reputation.
// Each identity registers at most once.
func (s *Service) Register(ctx context.Context, caller string, role domain.Role) error {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return domain.ErrUnauthorized
	}
	if !role.Valid() {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.users.Exists(ctx, caller)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadyRegistered
	}
	return s.users.Create(ctx, domain.User{Identity: caller, Role: role})
}

// ChangeRole moves the caller to a new role following the transition matrix
// and emits a role-changed notification carrying old and new role.
func (s *Service) ChangeRole(ctx context.Context, caller string, newRole domain.Role) error {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return domain.ErrUnauthorized
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.Get(ctx, caller)
	if err != nil {
		return err
	}
	if err := domain.ValidateRoleTransition(user.Role, newRole); err != nil {
		return err
	}
	oldRole := user.Role
	user.Role = newRole
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.enqueueRoleChanged(ctx, caller, oldRole, newRole)
}

// IsRegistered reports whether an identity has a User record.
func (s *Service) IsRegistered(ctx context.Context, identity string) (bool, error) {
	return s.users.Exists(ctx, identity)
}

// GetUser returns the User record for an identity, or ErrNotRegistered.
func (s *Service) GetUser(ctx context.Context, identity string) (domain.User, error) {
	return s.users.Get(ctx, identity)
}
