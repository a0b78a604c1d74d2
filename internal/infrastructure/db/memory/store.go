// Package memory is a process-local credential store for development and
// tests. Nothing survives a restart.
package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/authslice/authd/internal/core/domain"
)

// Store holds users and roles behind a single mutex. It satisfies both
// ports.UserRepository (via Users) and ports.RoleRepository (via Roles).
type Store struct {
	mu     sync.RWMutex
	users  map[string]*domain.User
	roles  map[domain.Role]*domain.RoleRecord
	nextID int
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]*domain.User),
		roles: make(map[domain.Role]*domain.RoleRecord),
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }
func (s *Store) Roles() *RoleRepository { return &RoleRepository{s: s} }

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.Email]; ok {
		return nil, domain.ErrDuplicateEmail
	}

	now := time.Now().UTC()
	stored := clone(user)
	stored.ID = uuid.NewString()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = now
	}
	r.s.users[stored.Email] = stored
	return clone(stored), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) SetRoles(_ context.Context, email string, roles []domain.Role) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Roles = append([]domain.Role(nil), roles...)
	u.UpdatedAt = time.Now().UTC()
	return clone(u), nil
}

type RoleRepository struct{ s *Store }

func (r *RoleRepository) Ensure(_ context.Context, name domain.Role) (*domain.RoleRecord, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if rec, ok := r.s.roles[name]; ok {
		out := *rec
		return &out, false, nil
	}

	r.s.nextID++
	rec := &domain.RoleRecord{
		ID:        strconv.Itoa(r.s.nextID),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	r.s.roles[name] = rec
	out := *rec
	return &out, true, nil
}

func (r *RoleRepository) List(context.Context) ([]*domain.RoleRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.RoleRecord, 0, len(r.s.roles))
	for _, rec := range r.s.roles {
		c := *rec
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a < b
	})
	return out, nil
}

func clone(u *domain.User) *domain.User {
	c := *u
	c.Roles = append([]domain.Role(nil), u.Roles...)
	return &c
}
