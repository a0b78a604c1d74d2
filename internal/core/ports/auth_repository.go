package ports

import (
	"context"

	"github.com/authslice/authd/internal/core/domain"
)

// UserRepository is the credential store. Email uniqueness is enforced by the
// backing store; Create reports a conflict as domain.ErrDuplicateEmail.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// SetRoles replaces the user's role set. Unknown emails yield
	// domain.ErrUserNotFound.
	SetRoles(ctx context.Context, email string, roles []domain.Role) (*domain.User, error)
}
