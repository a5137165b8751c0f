package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Contadores del pipeline de tokens. Los labels "result" son de cardinalidad
// chica y fija (success/invalid_credentials, success/rejected, etc).
var (
	LoginTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "janus_login_total",
		Help: "Logins procesados, por resultado.",
	}, []string{"result"})

	TokenVerifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "janus_token_verifications_total",
		Help: "Verificaciones de token del gate de autorización, por resultado.",
	}, []string{"result"})

	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "janus_refresh_total",
		Help: "Intentos de refresh de access token, por resultado.",
	}, []string{"result"})
)

// Handler expone /metrics en formato Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
