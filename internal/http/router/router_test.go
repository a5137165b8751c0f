package router_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/janus/internal/bootstrap"
	"github.com/dropDatabas3/janus/internal/http/router"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/rate"
	"github.com/dropDatabas3/janus/internal/store/memory"
)

var secret = []byte("router-test-secret")

func newServer(t *testing.T, limiter rate.Limiter) *httptest.Server {
	t.Helper()
	repo := memory.New()
	require.NoError(t, bootstrap.Seed(context.Background(), repo))

	h := router.New(router.Deps{
		Repo:         repo,
		Issuer:       jwtx.NewIssuer(secret, 3*time.Minute, 90*time.Minute),
		Verifier:     jwtx.NewVerifier(secret),
		LoginLimiter: limiter,
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func login(t *testing.T, srv *httptest.Server, user, pass string) tokenResponse {
	t.Helper()
	form := url.Values{}
	form.Set("username", user)
	form.Set("password", pass)
	resp, err := http.PostForm(srv.URL+"/login", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var tr tokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	require.NotEmpty(t, tr.AccessToken)
	require.NotEmpty(t, tr.RefreshToken)
	return tr
}

func do(t *testing.T, srv *httptest.Server, method, path, bearer, body string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestLoginAndProtectedRead(t *testing.T) {
	srv := newServer(t, nil)

	tr := login(t, srv, "ye@gmail.com", "yeyeye")

	resp, body := do(t, srv, http.MethodGet, "/user/getAllUser", tr.AccessToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(body, &users))
	require.Len(t, users, 7)
}

func TestAnonymousIsDeniedByRoleGuard(t *testing.T) {
	srv := newServer(t, nil)

	// sin header: el gate deja pasar, el guard rechaza
	resp, body := do(t, srv, http.MethodGet, "/user/getAllUser", "", "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Contains(t, string(body), "access_denied")
}

func TestGarbageTokenIsRejectedByGate(t *testing.T) {
	srv := newServer(t, nil)

	resp, body := do(t, srv, http.MethodGet, "/user/getAllUser", "garbage", "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var e struct {
		Error   string `json:"error"`
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(body, &e))
	require.Equal(t, "invalid_token", e.Error)
	require.Equal(t, "403", e.Code)
}

func TestRoleMatrix(t *testing.T) {
	srv := newServer(t, nil)

	normal := login(t, srv, "ye@gmail.com", "yeyeye")        // NORMAL_USER
	manager := login(t, srv, "win@gmail.com", "winwin")      // MANAGER
	admin := login(t, srv, "yewin@gmail.com", "yewin")       // ADMIN
	noRoles := login(t, srv, "mryewin@gmail.com", "mryewin") // sin roles

	// NORMAL_USER lee pero no crea
	resp, _ := do(t, srv, http.MethodGet, "/user/getUserByEmail?email=ye@gmail.com", normal.AccessToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodPost, "/user/createUser", normal.AccessToken,
		`{"name":"N","email":"n@gmail.com","password":"n123"}`)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// MANAGER crea usuarios pero no roles
	resp, _ = do(t, srv, http.MethodPost, "/user/createUser", manager.AccessToken,
		`{"name":"Nuevo","email":"nuevo@gmail.com","password":"nuevo123"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodPost, "/user/role/createRole", manager.AccessToken, `{"name":"AUDITOR"}`)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	// ADMIN gestiona roles
	resp, _ = do(t, srv, http.MethodPost, "/user/role/createRole", admin.AccessToken, `{"name":"AUDITOR"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = do(t, srv, http.MethodPost, "/user/role/addRoleToUser", admin.AccessToken,
		`{"email":"nuevo@gmail.com","roleName":"AUDITOR"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// autenticado sin roles: el gate lo deja anónimo y el guard lo frena
	resp, _ = do(t, srv, http.MethodGet, "/user/getAllUser", noRoles.AccessToken, "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRefreshFlowOverRouter(t *testing.T) {
	srv := newServer(t, nil)

	tr := login(t, srv, "mgmg@gmail.com", "mgmg")

	// el refresh NO pasa por el gate: un refresh token acá es válido
	resp, body := do(t, srv, http.MethodGet, "/user/token/refresh", tr.RefreshToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out tokenResponse
	require.NoError(t, json.Unmarshal(body, &out))
	require.Equal(t, tr.RefreshToken, out.RefreshToken)

	// idempotente: el mismo refresh sirve de nuevo
	resp, _ = do(t, srv, http.MethodGet, "/user/token/refresh", tr.RefreshToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// el access nuevo autoriza lecturas
	resp, _ = do(t, srv, http.MethodGet, "/user/getAllUser", out.AccessToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// un access token en el endpoint de refresh se rechaza
	resp, body = do(t, srv, http.MethodGet, "/user/token/refresh", tr.AccessToken, "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Contains(t, string(body), "Token is not valid.")
}

func TestOperationalEndpoints(t *testing.T) {
	srv := newServer(t, nil)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, _ := do(t, srv, http.MethodGet, path, "", "")
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestLoginRateLimit(t *testing.T) {
	srv := newServer(t, rate.NewMemoryLimiter(3, time.Hour))

	form := url.Values{}
	form.Set("username", "ye@gmail.com")
	form.Set("password", "wrong")

	var last int
	for i := 0; i < 4; i++ {
		resp, err := http.PostForm(srv.URL+"/login", form)
		require.NoError(t, err)
		resp.Body.Close()
		last = resp.StatusCode
	}
	require.Equal(t, http.StatusTooManyRequests, last)
}
