package handlers

import (
	"net/http"

	httpx "github.com/dropDatabas3/janus/internal/http"
	"github.com/dropDatabas3/janus/internal/store/core"
)

// NewReadyzHandler reporta listo solo si el store responde al ping.
func NewReadyzHandler(repo core.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := repo.Ping(r.Context()); err != nil {
			httpx.WriteError(w, http.StatusServiceUnavailable, "store_unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
