package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/authslice/authd/internal/core/domain"
	"github.com/authslice/authd/internal/core/ports"
)

// RoleService seeds the role registry and reassigns user roles.
type RoleService struct {
	roles ports.RoleRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, users ports.UserRepository, log zerolog.Logger) *RoleService {
	return &RoleService{
		roles: roles,
		users: users,
		log:   log.With().Str("component", "roles").Logger(),
	}
}

// EnsureRoles creates every named role that is missing, in order, and logs
// one line per role confirmed present. All names are validated before the
// store is touched.
func (s *RoleService) EnsureRoles(ctx context.Context, names []string) ([]*domain.RoleRecord, error) {
	roles, err := domain.ParseRoles(names)
	if err != nil {
		return nil, fmt.Errorf("ensure roles: %w", err)
	}

	records := make([]*domain.RoleRecord, 0, len(roles))
	for _, r := range roles {
		rec, created, err := s.roles.Ensure(ctx, r)
		if err != nil {
			return nil, fmt.Errorf("ensure role %s: %w", r, err)
		}
		s.log.Info().Str("role", string(rec.Name)).Bool("created", created).Msg("role ensured")
		records = append(records, rec)
	}
	return records, nil
}

// ListRoles returns every role in the registry.
func (s *RoleService) ListRoles(ctx context.Context) ([]*domain.RoleRecord, error) {
	records, err := s.roles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return records, nil
}

// AssignRoles replaces the role set of the user registered under email.
// Tokens issued before the change keep their old roles until they expire.
func (s *RoleService) AssignRoles(ctx context.Context, email string, names []string) (*domain.User, error) {
	if email == "" || len(names) == 0 {
		return nil, fmt.Errorf("assign roles: %w: email and at least one role are required", domain.ErrInvalidInput)
	}
	roles, err := domain.ParseRoles(names)
	if err != nil {
		return nil, fmt.Errorf("assign roles: %w", err)
	}

	user, err := s.users.SetRoles(ctx, email, dedupeRoles(roles))
	if err != nil {
		return nil, fmt.Errorf("assign roles: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Strs("roles", domain.RoleNames(user.Roles)).Msg("user roles replaced")
	return user.Sanitized(), nil
}

func dedupeRoles(roles []domain.Role) []domain.Role {
	seen := make(map[domain.Role]struct{}, len(roles))
	out := make([]domain.Role, 0, len(roles))
	for _, r := range roles {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
