package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/authslice/authd/internal/core/domain"
)

const (
	defaultTokenTTL = 24 * time.Hour
	tokenType       = "Bearer"
)

// sessionClaims is the JWT payload: sub, iat, exp and jti come from
// RegisteredClaims, email and roles are carried alongside.
type sessionClaims struct {
	Email string        `json:"email"`
	Roles []domain.Role `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 session tokens. It holds no mutable
// state and is safe for concurrent use.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token carrying the user's id, email and current roles.
func (s *TokenService) Issue(user *domain.User) (*domain.SessionToken, error) {
	if user == nil || user.ID == "" {
		return nil, fmt.Errorf("issue token: %w: missing user id", domain.ErrInvalidInput)
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := sessionClaims{
		Email: user.Email,
		Roles: append([]domain.Role(nil), user.Roles...),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.SessionToken{
		AccessToken: signed,
		TokenType:   tokenType,
		ExpiresAt:   expiresAt.UTC().Truncate(time.Second),
	}, nil
}

// Verify checks signature and expiry and rebuilds the identity claim from the
// embedded fields. The store is never consulted.
func (s *TokenService) Verify(raw string) (*domain.IdentityClaim, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty token", domain.ErrTokenMalformed)
	}

	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return nil, classifyTokenError(err)
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrTokenMalformed)
	}

	return &domain.IdentityClaim{
		UserID: claims.Subject,
		Email:  claims.Email,
		Roles:  claims.Roles,
	}, nil
}

// classifyTokenError maps jwt parse failures onto the domain taxonomy. The
// signature is verified before claims, so a tampered expired token reports
// an invalid signature.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", domain.ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", domain.ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %w", domain.ErrTokenMalformed, err)
	}
}
