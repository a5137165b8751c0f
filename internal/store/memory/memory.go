package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dropDatabas3/janus/internal/store/core"
	"github.com/google/uuid"
)

// Store es un Repository en memoria para tests y desarrollo local
// (driver "memory"). Un RWMutex alcanza: las escrituras solo ocurren por
// la API de administración y el seed.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*core.User // key: email (lowercase)
	roles     map[string]*core.Role // key: nombre de rol
	userRoles map[string][]string   // email -> nombres de rol (orden de alta)
}

func New() *Store {
	return &Store{
		users:     make(map[string]*core.User),
		roles:     make(map[string]*core.Role),
		userRoles: make(map[string][]string),
	}
}

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close()                         {}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[normalize(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	return s.withRoles(u), nil
}

func (s *Store) ListUsers(ctx context.Context) ([]core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *s.withRoles(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := normalize(u.Email)
	if _, exists := s.users[email]; exists {
		return core.ErrConflict
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	cp := *u
	cp.Email = email
	cp.Roles = nil
	s.users[email] = &cp
	return nil
}

func (s *Store) CreateRole(ctx context.Context, r *core.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.roles[r.Name]; exists {
		return core.ErrConflict
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	cp := *r
	s.roles[r.Name] = &cp
	return nil
}

func (s *Store) GetRoleByName(ctx context.Context, name string) (*core.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.roles[name]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *Store) AddRoleToUser(ctx context.Context, email, roleName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = normalize(email)
	if _, ok := s.users[email]; !ok {
		return core.ErrNotFound
	}
	if _, ok := s.roles[roleName]; !ok {
		return core.ErrNotFound
	}
	for _, r := range s.userRoles[email] {
		if r == roleName {
			return nil // ya asociado
		}
	}
	s.userRoles[email] = append(s.userRoles[email], roleName)
	return nil
}

// withRoles arma una copia del usuario con su snapshot de roles.
// Se llama con el lock tomado.
func (s *Store) withRoles(u *core.User) *core.User {
	cp := *u
	roles := s.userRoles[u.Email]
	cp.Roles = make([]string, len(roles))
	copy(cp.Roles, roles)
	return &cp
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
