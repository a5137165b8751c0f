package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/security/password"
	"github.com/dropDatabas3/janus/internal/store/core"
)

// Roles por defecto del sistema.
var DefaultRoles = []string{"SUPER_ADMIN", "ADMIN", "MANAGER", "NORMAL_USER"}

type seedUser struct {
	name     string
	email    string
	password string
	roles    []string
}

// Cuentas demo del seed original. Passwords solo para entornos de prueba.
var seedUsers = []seedUser{
	{"Super Admin", "superadmin@gmail.com", "superadmin", []string{"SUPER_ADMIN", "ADMIN", "MANAGER", "NORMAL_USER"}},
	{"Ye", "ye@gmail.com", "yeyeye", []string{"NORMAL_USER"}},
	{"Mg Mg", "mgmg@gmail.com", "mgmg", []string{"NORMAL_USER", "MANAGER"}},
	{"Aung Aung", "aungaung@gmail.com", "aungaung", []string{"MANAGER", "ADMIN"}},
	{"Win", "win@gmail.com", "winwin", []string{"MANAGER"}},
	{"Ye Win", "yewin@gmail.com", "yewin", []string{"ADMIN"}},
	{"Mr. Ye Win", "mryewin@gmail.com", "mryewin", nil},
}

// Seed crea los roles por defecto y las cuentas demo. Es idempotente:
// lo que ya existe se saltea sin error.
func Seed(ctx context.Context, repo core.Repository) error {
	log := logger.Named("seed")

	for _, name := range DefaultRoles {
		err := repo.CreateRole(ctx, &core.Role{Name: name})
		if err != nil && !errors.Is(err, core.ErrConflict) {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}

	for _, su := range seedUsers {
		hash, err := password.Hash(su.password)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
		err = repo.CreateUser(ctx, &core.User{
			Name:         su.name,
			Email:        su.email,
			PasswordHash: hash,
		})
		if err != nil && !errors.Is(err, core.ErrConflict) {
			return fmt.Errorf("seed user %s: %w", su.email, err)
		}
		for _, role := range su.roles {
			if err := repo.AddRoleToUser(ctx, su.email, role); err != nil {
				return fmt.Errorf("seed role %s -> %s: %w", role, su.email, err)
			}
		}
	}

	log.Info("seed completed",
		logger.Any("roles", len(DefaultRoles)),
		logger.Any("users", len(seedUsers)),
	)
	return nil
}
