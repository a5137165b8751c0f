package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dropDatabas3/janus/internal/http/handlers"
	"github.com/dropDatabas3/janus/internal/store/core"
)

func postJSON(t *testing.T, h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body %q: %v", rec.Body.String(), err)
	}
	return body.Error
}

func TestListUsers(t *testing.T) {
	repo := seedRepo(t)
	h := handlers.NewListUsersHandler(repo)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/getAllUser", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var users []core.User
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("usuarios = %d", len(users))
	}
	// el hash jamás sale en la respuesta
	if strings.Contains(rec.Body.String(), "$2a$") || strings.Contains(rec.Body.String(), "passwordHash") {
		t.Fatal("el body filtra el hash del password")
	}
}

func TestGetUserByEmail(t *testing.T) {
	repo := seedRepo(t)
	h := handlers.NewGetUserByEmailHandler(repo)

	get := func(q string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/user/getUserByEmail"+q, nil))
		return rec
	}

	rec := get("?email=ye@gmail.com")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var u core.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("body: %v", err)
	}
	if u.Email != "ye@gmail.com" || len(u.Roles) != 2 {
		t.Fatalf("user = %+v", u)
	}

	if rec := get(""); rec.Code != http.StatusBadRequest || errorOf(t, rec) != "Input is null" {
		t.Fatalf("sin email: %d %s", rec.Code, rec.Body.String())
	}
	if rec := get("?email=nadie@gmail.com"); rec.Code != http.StatusBadRequest || errorOf(t, rec) != "User Not Found" {
		t.Fatalf("inexistente: %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreateUser(t *testing.T) {
	repo := seedRepo(t)
	h := handlers.NewCreateUserHandler(repo)

	rec := postJSON(t, h, "/user/createUser", `{"name":"Aung","email":"aungaung@gmail.com","password":"aung123"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var u core.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("body: %v", err)
	}
	if u.ID == "" || u.Email != "aungaung@gmail.com" {
		t.Fatalf("user = %+v", u)
	}

	// duplicado
	rec = postJSON(t, h, "/user/createUser", `{"name":"Aung","email":"aungaung@gmail.com","password":"aung123"}`)
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != "User is already existed in System" {
		t.Fatalf("duplicado: %d %s", rec.Code, rec.Body.String())
	}

	// input incompleto
	rec = postJSON(t, h, "/user/createUser", `{"name":"X"}`)
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != "Input is null" {
		t.Fatalf("incompleto: %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreateRole(t *testing.T) {
	repo := seedRepo(t)
	h := handlers.NewCreateRoleHandler(repo)

	rec := postJSON(t, h, "/user/role/createRole", `{"name":"ADMIN"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, h, "/user/role/createRole", `{"name":"NORMAL_USER"}`)
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != "Role is already in System" {
		t.Fatalf("duplicado: %d %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, h, "/user/role/createRole", `{"name":"  "}`)
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != "Input is null" {
		t.Fatalf("vacío: %d %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, h, "/user/role/createRole", `{"name":"admin;drop"}`)
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != "Role Name is invalid" {
		t.Fatalf("nombre inválido: %d %s", rec.Code, rec.Body.String())
	}
}

func TestAddRoleToUser(t *testing.T) {
	repo := seedRepo(t)
	h := handlers.NewAddRoleToUserHandler(repo)

	rec := postJSON(t, h, "/user/role/addRoleToUser", `{"email":"mryewin@gmail.com","roleName":"MANAGER"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	u, err := repo.GetUserByEmail(context.Background(), "mryewin@gmail.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(u.Roles) != 1 || u.Roles[0] != "MANAGER" {
		t.Fatalf("roles = %v", u.Roles)
	}

	rec = postJSON(t, h, "/user/role/addRoleToUser", `{"email":"nadie@gmail.com","roleName":"MANAGER"}`)
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != "User Not Found" {
		t.Fatalf("usuario inexistente: %d %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, h, "/user/role/addRoleToUser", `{"email":"ye@gmail.com","roleName":"NOPE"}`)
	if rec.Code != http.StatusBadRequest || errorOf(t, rec) != "Role Name Not Found, Please add Role Name that you want." {
		t.Fatalf("rol inexistente: %d %s", rec.Code, rec.Body.String())
	}

	// repetir la asociación es no-op
	rec = postJSON(t, h, "/user/role/addRoleToUser", `{"email":"mryewin@gmail.com","roleName":"MANAGER"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("repetido: %d", rec.Code)
	}
}
