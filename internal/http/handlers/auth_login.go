package handlers

import (
	"net/http"

	httpx "github.com/dropDatabas3/janus/internal/http"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/metrics"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/security/password"
	"github.com/dropDatabas3/janus/internal/store/core"
)

// TokenResponse es el body de login y refresh exitosos.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// NewLoginHandler: POST /login con form fields username/password.
// Dos salidas: éxito → par de tokens; fallo → 401 {error} y un warn en el
// log. El password jamás se loguea ni viaja en el body de error.
func NewLoginHandler(repo core.Repository, issuer *jwtx.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "invalid_form")
			return
		}
		username := r.PostFormValue("username")
		pwd := r.PostFormValue("password")

		log := logger.From(r.Context())

		u, err := repo.GetUserByEmail(r.Context(), username)
		if err != nil {
			metrics.LoginTotal.WithLabelValues("invalid_credentials").Inc()
			log.Warn("login failed: user not found", logger.Email(username))
			httpx.WriteError(w, http.StatusUnauthorized, "User not found in the database")
			return
		}

		if !password.Verify(pwd, u.PasswordHash) {
			metrics.LoginTotal.WithLabelValues("invalid_credentials").Inc()
			log.Warn("login failed: password mismatch", logger.Email(username))
			httpx.WriteError(w, http.StatusUnauthorized, "Bad credentials")
			return
		}

		iss := requestURL(r)

		// Un usuario sin roles igual autentica: su access token lleva el
		// claim de roles como array vacío (y el guard de rutas lo frena
		// después). El refresh token nunca lleva claim de roles.
		access, _, err := issuer.IssueAccess(u.Email, iss, u.Roles)
		if err != nil {
			metrics.LoginTotal.WithLabelValues("error").Inc()
			httpx.WriteError(w, http.StatusInternalServerError, "issue_failed")
			return
		}
		refresh, _, err := issuer.IssueRefresh(u.Email, iss)
		if err != nil {
			metrics.LoginTotal.WithLabelValues("error").Inc()
			httpx.WriteError(w, http.StatusInternalServerError, "issue_failed")
			return
		}

		metrics.LoginTotal.WithLabelValues("success").Inc()
		log.Info("login ok", logger.Email(u.Email), logger.Roles(u.Roles))
		httpx.WriteJSON(w, http.StatusOK, TokenResponse{
			AccessToken:  access,
			RefreshToken: refresh,
		})
	}
}

// requestURL reconstruye la URL canónica del endpoint que emite el token;
// va en el claim "iss" como dato informativo (el verificador no lo exige).
func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.Path
}
