package handlers

import (
	"net/http"
	"strings"

	httpx "github.com/dropDatabas3/janus/internal/http"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/metrics"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/store/core"
)

const refreshErrMessage = "Your input refresh token is something wrong"

// NewRefreshHandler: GET /user/token/refresh con Authorization: Bearer <refresh>.
// Re-emite un access token sin pedir credenciales de nuevo. El refresh token
// presentado vuelve igual en la respuesta: no hay rotación en este diseño.
// Todo fallo de los pasos 1-4 sale como el mismo 403 estructurado.
func NewRefreshHandler(repo core.Repository, issuer *jwtx.Issuer, verifier *jwtx.Verifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		log := logger.From(r.Context())

		ah := r.Header.Get("Authorization")
		if ah == "" || !strings.HasPrefix(ah, "Bearer ") {
			metrics.RefreshTotal.WithLabelValues("rejected").Inc()
			httpx.WriteTokenError(w, "Token format is wrong", refreshErrMessage)
			return
		}
		raw := ah[len("Bearer "):]

		claims, err := verifier.Verify(raw)
		if err != nil {
			metrics.RefreshTotal.WithLabelValues("rejected").Inc()
			log.Warn("refresh rejected", logger.Err(err))
			httpx.WriteTokenError(w, "invalid_token", refreshErrMessage)
			return
		}

		// Acá el discriminante corre al revés que en el gate: un claim de
		// roles presente y no vacío delata un ACCESS token, y no dejamos que
		// un access token (TTL corto a propósito) acuñe más access tokens.
		if claims.HasRoles() {
			metrics.RefreshTotal.WithLabelValues("rejected").Inc()
			log.Warn("refresh rejected: access token presented", logger.Email(claims.Subject))
			httpx.WriteTokenError(w, "Token is not valid.", refreshErrMessage)
			return
		}

		// Roles ACTUALES del store, no los de ningún claim viejo.
		u, err := repo.GetUserByEmail(r.Context(), claims.Subject)
		if err != nil {
			metrics.RefreshTotal.WithLabelValues("rejected").Inc()
			log.Warn("refresh rejected: subject lookup failed", logger.Email(claims.Subject), logger.Err(err))
			httpx.WriteTokenError(w, "invalid_token", refreshErrMessage)
			return
		}

		access, _, err := issuer.IssueAccess(u.Email, requestURL(r), u.Roles)
		if err != nil {
			metrics.RefreshTotal.WithLabelValues("error").Inc()
			httpx.WriteError(w, http.StatusInternalServerError, "issue_failed")
			return
		}

		metrics.RefreshTotal.WithLabelValues("success").Inc()
		log.Info("access token refreshed", logger.Email(u.Email))
		httpx.WriteJSON(w, http.StatusOK, TokenResponse{
			AccessToken:  access,
			RefreshToken: raw, // el mismo refresh token, sin cambios
		})
	}
}
