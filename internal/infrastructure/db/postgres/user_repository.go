package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/authslice/authd/internal/core/domain"
)

// UserRepository stores users with their role set in the user_roles table.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const selectUserByEmail = `
SELECT u.id::text, u.email, u.name, u.password_hash, u.created_at, u.updated_at,
       COALESCE(array_agg(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}')
FROM users u
LEFT JOIN user_roles ur ON ur.user_id = u.id
LEFT JOIN roles r ON r.id = ur.role_id
WHERE u.email = $1
GROUP BY u.id`

const insertUserRoles = `
INSERT INTO user_roles (user_id, role_id)
SELECT $1, id FROM roles WHERE name = ANY($2)`

// Create inserts the user and its role links in one transaction. Every role
// must already exist in the registry, otherwise the insert is rolled back
// with domain.ErrUnknownRole.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	out := *user
	out.ID = uuid.NewString()
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = now
	}
	out.Roles = append([]domain.Role(nil), user.Roles...)

	err := RunInTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			out.ID, out.Email, nullableString(out.Name), out.PasswordHash, out.CreatedAt, out.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicateEmail
			}
			return fmt.Errorf("insert user: %w", err)
		}
		return linkRoles(ctx, tx, out.ID, out.Roles)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return findByEmail(ctx, r.pool, email)
}

// SetRoles replaces the user's links in user_roles and bumps updated_at.
func (r *UserRepository) SetRoles(ctx context.Context, email string, roles []domain.Role) (*domain.User, error) {
	var user *domain.User
	err := RunInTx(ctx, r.pool, func(tx pgx.Tx) error {
		var id string
		err := tx.QueryRow(ctx,
			`UPDATE users SET updated_at = $2 WHERE email = $1 RETURNING id::text`,
			email, time.Now().UTC(),
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("touch user: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("clear roles: %w", err)
		}
		if err := linkRoles(ctx, tx, id, roles); err != nil {
			return err
		}

		user, err = findByEmail(ctx, tx, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func linkRoles(ctx context.Context, db DBTX, userID string, roles []domain.Role) error {
	if len(roles) == 0 {
		return nil
	}
	names := domain.RoleNames(roles)
	tag, err := db.Exec(ctx, insertUserRoles, userID, names)
	if err != nil {
		return fmt.Errorf("link roles: %w", err)
	}
	if int(tag.RowsAffected()) != len(names) {
		return fmt.Errorf("%w: role registry is missing one of %v", domain.ErrUnknownRole, names)
	}
	return nil
}

func findByEmail(ctx context.Context, db DBTX, email string) (*domain.User, error) {
	var (
		u     domain.User
		name  *string
		roles []string
	)
	err := db.QueryRow(ctx, selectUserByEmail, email).Scan(
		&u.ID, &u.Email, &name, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt, &roles,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if name != nil {
		u.Name = *name
	}
	u.Roles = make([]domain.Role, 0, len(roles))
	for _, r := range roles {
		u.Roles = append(u.Roles, domain.Role(r))
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
