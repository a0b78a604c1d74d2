package ports

import (
	"context"

	"github.com/authslice/authd/internal/core/domain"
)

// AuthService validates credentials, issues session tokens and registers users.
type AuthService interface {
	ValidateUser(ctx context.Context, email, password string) (*domain.User, error)
	Login(user *domain.User) (*domain.SessionToken, error)
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (*domain.SessionToken, error)
}

// TokenVerifier turns a raw bearer token back into an identity claim.
type TokenVerifier interface {
	Verify(raw string) (*domain.IdentityClaim, error)
}
