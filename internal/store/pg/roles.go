package pg

import (
	"context"
	"errors"
	"time"

	"github.com/dropDatabas3/janus/internal/store/core"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateRole(ctx context.Context, r *core.Role) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	const q = `
INSERT INTO roles (id, name, created_at)
VALUES ($1, $2, $3);`
	_, err := s.pool.Exec(ctx, q, r.ID, r.Name, r.CreatedAt)
	if isUniqueViolation(err) {
		return core.ErrConflict
	}
	return err
}

func (s *Store) GetRoleByName(ctx context.Context, name string) (*core.Role, error) {
	const q = `
SELECT id, name, created_at
FROM roles
WHERE name = $1;`
	var r core.Role
	err := s.pool.QueryRow(ctx, q, name).Scan(&r.ID, &r.Name, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// AddRoleToUser asocia rol y usuario existentes; la asociación repetida es no-op.
func (s *Store) AddRoleToUser(ctx context.Context, email, roleName string) error {
	u, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	r, err := s.GetRoleByName(ctx, roleName)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO user_roles (user_id, role_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING;`
	_, err = s.pool.Exec(ctx, q, u.ID, r.ID)
	return err
}
