package ports

import (
	"context"

	"github.com/authslice/authd/internal/core/domain"
)

// RoleRepository persists the role registry.
type RoleRepository interface {
	// Ensure creates the role if absent and never modifies an existing one.
	// created is true only when this call inserted the record.
	Ensure(ctx context.Context, name domain.Role) (record *domain.RoleRecord, created bool, err error)
	List(ctx context.Context) ([]*domain.RoleRecord, error)
}
