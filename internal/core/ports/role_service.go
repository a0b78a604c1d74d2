package ports

import (
	"context"

	"github.com/authslice/authd/internal/core/domain"
)

// RoleService seeds the role registry and manages user role assignment.
type RoleService interface {
	EnsureRoles(ctx context.Context, names []string) ([]*domain.RoleRecord, error)
	ListRoles(ctx context.Context) ([]*domain.RoleRecord, error)
	AssignRoles(ctx context.Context, email string, names []string) (*domain.User, error)
}
