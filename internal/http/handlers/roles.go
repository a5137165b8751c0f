package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dropDatabas3/janus/internal/audit"
	httpx "github.com/dropDatabas3/janus/internal/http"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/store/core"
	"github.com/dropDatabas3/janus/internal/validation"
)

type CreateRoleRequest struct {
	Name string `json:"name"`
}

// NewCreateRoleHandler: POST /user/role/createRole
func NewCreateRoleHandler(repo core.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateRoleRequest
		if !httpx.ReadJSON(w, r, &req) {
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			httpx.WriteError(w, http.StatusBadRequest, "Input is null")
			return
		}
		if !validation.ValidRoleName(req.Name) {
			httpx.WriteError(w, http.StatusBadRequest, "Role Name is invalid")
			return
		}

		role := &core.Role{Name: req.Name}
		if err := repo.CreateRole(r.Context(), role); err != nil {
			if errors.Is(err, core.ErrConflict) {
				httpx.WriteError(w, http.StatusBadRequest, "Role is already in System")
				return
			}
			logger.From(r.Context()).Error("create role", logger.Err(err))
			httpx.WriteError(w, http.StatusInternalServerError, "store_error")
			return
		}
		audit.Event(r.Context(), "role.created", logger.Any("role", role.Name))
		httpx.WriteJSON(w, http.StatusCreated, role)
	}
}

type AddRoleToUserRequest struct {
	Email    string `json:"email"`
	RoleName string `json:"roleName"`
}

// NewAddRoleToUserHandler: POST /user/role/addRoleToUser
// Usuario o rol inexistente → 400 descriptivo; la asociación repetida es no-op.
func NewAddRoleToUserHandler(repo core.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddRoleToUserRequest
		if !httpx.ReadJSON(w, r, &req) {
			return
		}
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		req.RoleName = strings.TrimSpace(req.RoleName)
		if req.Email == "" || req.RoleName == "" {
			httpx.WriteError(w, http.StatusBadRequest, "Input is null")
			return
		}

		if _, err := repo.GetUserByEmail(r.Context(), req.Email); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				httpx.WriteError(w, http.StatusBadRequest, "User Not Found")
				return
			}
			httpx.WriteError(w, http.StatusInternalServerError, "store_error")
			return
		}
		if _, err := repo.GetRoleByName(r.Context(), req.RoleName); err != nil {
			if errors.Is(err, core.ErrNotFound) {
				httpx.WriteError(w, http.StatusBadRequest, "Role Name Not Found, Please add Role Name that you want.")
				return
			}
			httpx.WriteError(w, http.StatusInternalServerError, "store_error")
			return
		}

		if err := repo.AddRoleToUser(r.Context(), req.Email, req.RoleName); err != nil {
			logger.From(r.Context()).Error("add role to user", logger.Err(err))
			httpx.WriteError(w, http.StatusInternalServerError, "store_error")
			return
		}
		audit.Event(r.Context(), "role.assigned",
			logger.Email(req.Email), logger.Any("role", req.RoleName))
		w.WriteHeader(http.StatusOK)
	}
}
