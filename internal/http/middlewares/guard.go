package middlewares

import (
	"net/http"

	httpx "github.com/dropDatabas3/janus/internal/http"
)

// RequireAnyRole exige que el request venga autenticado con alguno de los
// roles dados. Debe usarse detrás de Authorize: acá es donde los requests
// anónimos que dejó pasar el fail-open finalmente se rechazan.
func RequireAnyRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := GetPrincipal(r.Context())
			if !p.HasAnyRole(roles...) {
				httpx.WriteError(w, http.StatusForbidden, "access_denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
