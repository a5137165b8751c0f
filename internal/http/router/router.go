package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/janus/internal/http/handlers"
	"github.com/dropDatabas3/janus/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/metrics"
	"github.com/dropDatabas3/janus/internal/rate"
	"github.com/dropDatabas3/janus/internal/store/core"
)

// Deps agrupa lo que necesita el router.
type Deps struct {
	Repo     core.Repository
	Issuer   *jwtx.Issuer
	Verifier *jwtx.Verifier
	// LoginLimiter es opcional; nil desactiva el rate limit de login.
	LoginLimiter rate.Limiter
}

// New arma el router completo.
//
// /login y /user/token/refresh quedan FUERA del grupo con Authorize: esos dos
// flujos autentican por su cuenta y el gate no debe tocarlos. Todo /user/**
// restante pasa por el gate y después por el guard de roles de cada ruta.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewares.WithRequestID())
	r.Use(middlewares.WithLogging())
	r.Use(middlewares.WithRecover())

	// Operacionales
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", handlers.NewReadyzHandler(d.Repo))
	r.Handle("/metrics", metrics.Handler())

	// Login (bypass del gate), con rate limit opcional
	login := handlers.NewLoginHandler(d.Repo, d.Issuer)
	if d.LoginLimiter != nil {
		r.With(middlewares.WithRateLimit(d.LoginLimiter)).Post("/login", login)
	} else {
		r.Post("/login", login)
	}

	// Refresh (bypass del gate)
	r.Get("/user/token/refresh", handlers.NewRefreshHandler(d.Repo, d.Issuer, d.Verifier))

	// Rutas protegidas: gate + guard de roles por ruta.
	// Los sets de roles replican la matriz de permisos de la aplicación:
	// lecturas para cualquier rol, alta de usuarios para manager+, roles
	// solo para admin+.
	r.Group(func(pr chi.Router) {
		pr.Use(middlewares.Authorize(d.Verifier))

		anyRole := middlewares.RequireAnyRole("NORMAL_USER", "MANAGER", "ADMIN", "SUPER_ADMIN")
		managerUp := middlewares.RequireAnyRole("MANAGER", "ADMIN", "SUPER_ADMIN")
		adminUp := middlewares.RequireAnyRole("ADMIN", "SUPER_ADMIN")

		pr.With(anyRole).Get("/user/getAllUser", handlers.NewListUsersHandler(d.Repo))
		pr.With(anyRole).Get("/user/getUserByEmail", handlers.NewGetUserByEmailHandler(d.Repo))
		pr.With(managerUp).Post("/user/createUser", handlers.NewCreateUserHandler(d.Repo))
		pr.With(adminUp).Post("/user/role/createRole", handlers.NewCreateRoleHandler(d.Repo))
		pr.With(adminUp).Post("/user/role/addRoleToUser", handlers.NewAddRoleToUserHandler(d.Repo))
	})

	return r
}
