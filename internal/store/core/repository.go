package core

import "context"

// Repository es el colaborador de identidad del pipeline de tokens.
// Implementaciones: pg (pgxpool) y memory (tests / desarrollo).
type Repository interface {
	Ping(ctx context.Context) error
	Close()

	// Usuarios. GetUserByEmail devuelve el usuario con su hash y sus roles
	// actuales; es la única lectura que necesita el pipeline de tokens
	// (login y refresh).
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	// CreateUser asigna ID y persiste; u.PasswordHash ya viene calculado.
	// Email duplicado → ErrConflict.
	CreateUser(ctx context.Context, u *User) error

	// Roles
	CreateRole(ctx context.Context, r *Role) error
	GetRoleByName(ctx context.Context, name string) (*Role, error)
	// AddRoleToUser asocia un rol existente a un usuario existente.
	// Usuario o rol inexistente → ErrNotFound; asociación repetida es no-op.
	AddRoleToUser(ctx context.Context, email, roleName string) error
}
