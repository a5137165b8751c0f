package middlewares

import (
	"net/http"
	"strings"

	httpx "github.com/dropDatabas3/janus/internal/http"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/metrics"
	"github.com/dropDatabas3/janus/internal/observability/logger"
)

// =================================================================================
// AUTHORIZATION GATE
// =================================================================================

// Outcome es el resultado trivaluado del gate por request.
type Outcome int

const (
	// OutcomeAnonymous: el request sigue SIN principal. Cubre header ausente
	// o sin prefijo Bearer, y también tokens válidos sin roles (refresh
	// tokens y usuarios sin rol). Es fail-open deliberado: el rechazo es
	// responsabilidad del chequeo de roles de la ruta, que así distingue
	// "no ofreció credenciales" de "credenciales inválidas".
	OutcomeAnonymous Outcome = iota
	// OutcomeAuthenticated: token válido con roles; hay principal.
	OutcomeAuthenticated
	// OutcomeRejected: el token presentado no verifica (firma, expiración o
	// forma). El request se corta con 403.
	OutcomeRejected
)

// Decision es lo que el gate decidió para un request.
type Decision struct {
	Outcome   Outcome
	Principal *Principal
	Err       error
}

const bearerPrefix = "Bearer " // el espacio es parte del prefijo

// Decide evalúa el header Authorization contra el verificador.
// Función pura sobre (header, verifier): los tests la ejercitan directo.
func Decide(authorization string, v *jwtx.Verifier) Decision {
	if authorization == "" || !strings.HasPrefix(authorization, bearerPrefix) {
		return Decision{Outcome: OutcomeAnonymous}
	}
	raw := authorization[len(bearerPrefix):]

	claims, err := v.Verify(raw)
	if err != nil {
		return Decision{Outcome: OutcomeRejected, Err: err}
	}

	// Solo un claim de roles presente y NO vacío autentica. Un refresh token
	// (claim ausente) o un access token de un usuario sin roles pasan como
	// anónimos y los frena después el guard de roles.
	if !claims.HasRoles() {
		return Decision{Outcome: OutcomeAnonymous}
	}

	return Decision{
		Outcome:   OutcomeAuthenticated,
		Principal: &Principal{Email: claims.Subject, Roles: claims.Roles},
	}
}

// Authorize corre el gate en cada request de las rutas protegidas.
// Las rutas /login y /user/token/refresh NO pasan por acá: quedan fuera del
// grupo de rutas que monta este middleware.
func Authorize(v *jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Decide(r.Header.Get("Authorization"), v)

			switch d.Outcome {
			case OutcomeRejected:
				metrics.TokenVerifyTotal.WithLabelValues("rejected").Inc()
				logger.From(r.Context()).Warn("token rejected", logger.Err(d.Err))
				// Uniforme hacia afuera: no se filtra cuál chequeo falló.
				httpx.WriteTokenError(w, "invalid_token", "Your input token is something wrong")
				return

			case OutcomeAuthenticated:
				metrics.TokenVerifyTotal.WithLabelValues("success").Inc()
				ctx := WithPrincipal(r.Context(), d.Principal)
				next.ServeHTTP(w, r.WithContext(ctx))
				return

			default: // OutcomeAnonymous
				metrics.TokenVerifyTotal.WithLabelValues("anonymous").Inc()
				next.ServeHTTP(w, r)
				return
			}
		})
	}
}
