package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/authslice/authd/internal/core/domain"
)

// RoleRepository is the role registry backed by the roles table.
type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

// Ensure inserts the role unless the name is taken. ON CONFLICT DO NOTHING
// returns no row for an existing name, in which case the stored record is
// read back unchanged.
func (r *RoleRepository) Ensure(ctx context.Context, name domain.Role) (*domain.RoleRecord, bool, error) {
	var rec domain.RoleRecord
	var stored string

	err := r.pool.QueryRow(ctx,
		`INSERT INTO roles (name) VALUES ($1)
		 ON CONFLICT (name) DO NOTHING
		 RETURNING id::text, name, created_at`,
		string(name),
	).Scan(&rec.ID, &stored, &rec.CreatedAt)
	if err == nil {
		rec.Name = domain.Role(stored)
		rec.CreatedAt = rec.CreatedAt.UTC()
		return &rec, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert role: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT id::text, name, created_at FROM roles WHERE name = $1`,
		string(name),
	).Scan(&rec.ID, &stored, &rec.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("find role: %w", err)
	}
	rec.Name = domain.Role(stored)
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, false, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*domain.RoleRecord, error) {
	rows, err := r.pool.Query(ctx, `SELECT id::text, name, created_at FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()

	var out []*domain.RoleRecord
	for rows.Next() {
		var rec domain.RoleRecord
		var stored string
		if err := rows.Scan(&rec.ID, &stored, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		rec.Name = domain.Role(stored)
		rec.CreatedAt = rec.CreatedAt.UTC()
		out = append(out, &rec)
	}
	return out, rows.Err()
}
