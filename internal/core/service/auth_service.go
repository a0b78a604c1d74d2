package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/authslice/authd/internal/core/domain"
	"github.com/authslice/authd/internal/core/ports"
)

// AuthService implements credential validation, login and registration.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	log    zerolog.Logger
	cost   int
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    log.With().Str("component", "auth").Logger(),
		cost:   bcrypt.DefaultCost,
	}
}

// ValidateUser returns the user owning email when password matches its hash.
// An unknown email and a wrong password both yield ErrInvalidCredentials; the
// distinction is only visible in debug logs.
func (s *AuthService) ValidateUser(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Str("reason", "unknown_email").Msg("credential check failed")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("validate user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.log.Debug().Str("user_id", user.ID).Str("reason", "password_mismatch").Msg("credential check failed")
		return nil, domain.ErrInvalidCredentials
	}

	return user.Sanitized(), nil
}

// Login signs a session token for an already validated user. It does not
// touch the store.
func (s *AuthService) Login(user *domain.User) (*domain.SessionToken, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return token, nil
}

// Register hashes the password and stores a new user holding DefaultRole.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("register: %w: email and password are required", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Roles:        []domain.Role{domain.DefaultRole},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created.Sanitized(), nil
}
