package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/janus/internal/audit"
	httpx "github.com/dropDatabas3/janus/internal/http"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/security/password"
	"github.com/dropDatabas3/janus/internal/store/core"
)

// NewListUsersHandler: GET /user/getAllUser
func NewListUsersHandler(repo core.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := repo.ListUsers(r.Context())
		if err != nil {
			logger.From(r.Context()).Error("list users", logger.Err(err))
			httpx.WriteError(w, http.StatusInternalServerError, "store_error")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, users)
	}
}

// NewGetUserByEmailHandler: GET /user/getUserByEmail?email=...
func NewGetUserByEmailHandler(repo core.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.URL.Query().Get("email"))
		if email == "" {
			httpx.WriteError(w, http.StatusBadRequest, "Input is null")
			return
		}
		u, err := repo.GetUserByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				httpx.WriteError(w, http.StatusBadRequest, "User Not Found")
				return
			}
			httpx.WriteError(w, http.StatusInternalServerError, "store_error")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, u)
	}
}

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NewCreateUserHandler: POST /user/createUser
// El password entra en claro y se persiste solo como hash bcrypt.
func NewCreateUserHandler(repo core.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if !httpx.ReadJSON(w, r, &req) {
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if req.Email == "" || req.Password == "" {
			httpx.WriteError(w, http.StatusBadRequest, "Input is null")
			return
		}

		hash, err := password.Hash(req.Password)
		if err != nil {
			httpx.WriteError(w, http.StatusInternalServerError, "hash_failed")
			return
		}
		u := &core.User{Name: req.Name, Email: req.Email, PasswordHash: hash}
		if err := repo.CreateUser(r.Context(), u); err != nil {
			if errors.Is(err, core.ErrConflict) {
				logger.From(r.Context()).Warn("create user: duplicate", logger.Email(req.Email))
				httpx.WriteError(w, http.StatusBadRequest, "User is already existed in System")
				return
			}
			logger.From(r.Context()).Error("create user", logger.Err(err))
			httpx.WriteError(w, http.StatusInternalServerError, "store_error")
			return
		}

		audit.Event(r.Context(), "user.created", logger.Email(u.Email))
		u.Roles = []string{} // recién creado, sin roles todavía
		httpx.WriteJSON(w, http.StatusCreated, u)
	}
}
