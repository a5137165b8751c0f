package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	rdb "github.com/redis/go-redis/v9"

	"github.com/dropDatabas3/janus/internal/bootstrap"
	"github.com/dropDatabas3/janus/internal/config"
	httpx "github.com/dropDatabas3/janus/internal/http"
	"github.com/dropDatabas3/janus/internal/http/router"
	jwtx "github.com/dropDatabas3/janus/internal/jwt"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/rate"
	"github.com/dropDatabas3/janus/internal/store"
	"github.com/dropDatabas3/janus/internal/store/pg"
	migrations "github.com/dropDatabas3/janus/migrations/postgres"
)

func main() {
	// .env es opcional; las vars reales del entorno pisan al archivo
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/config.example.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		// Sin archivo de config, arrancar con defaults + env
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "janus",
	})
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := store.Open(ctx, store.Config{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
		Postgres: pg.Config{
			MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		},
	})
	if err != nil {
		logger.L().Fatal("store open", logger.Err(err))
	}
	defer repo.Close()

	if pgStore, ok := repo.(*pg.Store); ok {
		if err := pgStore.RunMigrations(ctx, migrations.FS); err != nil {
			logger.L().Fatal("migrations", logger.Err(err))
		}
	}

	if cfg.App.Seed {
		if err := bootstrap.Seed(ctx, repo); err != nil {
			logger.L().Fatal("seed", logger.Err(err))
		}
	}

	// El secret entra una sola vez acá y nunca se loguea
	secret := []byte(cfg.JWT.Secret)
	issuer := jwtx.NewIssuer(secret, cfg.AccessTTL(), cfg.RefreshTTL())
	verifier := jwtx.NewVerifier(secret)

	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		switch cfg.Rate.Backend {
		case "redis":
			client := rdb.NewClient(&rdb.Options{Addr: cfg.Rate.Redis.Addr, DB: cfg.Rate.Redis.DB})
			limiter = rate.NewRedisLimiter(client, cfg.Rate.Redis.Prefix, cfg.Rate.Login.Limit, cfg.LoginRateWindow())
		default:
			limiter = rate.NewMemoryLimiter(cfg.Rate.Login.Limit, cfg.LoginRateWindow())
		}
	}

	handler := router.New(router.Deps{
		Repo:         repo,
		Issuer:       issuer,
		Verifier:     verifier,
		LoginLimiter: limiter,
	})

	logger.L().Info("janus up",
		logger.Any("addr", cfg.Server.Addr),
		logger.Any("driver", cfg.Storage.Driver),
		logger.Any("access_ttl", cfg.AccessTTL().String()),
		logger.Any("refresh_ttl", cfg.RefreshTTL().String()),
	)
	if err := httpx.Start(ctx, cfg.Server.Addr, handler); err != nil {
		logger.L().Fatal("server", logger.Err(err))
	}
	logger.L().Info("janus stopped")
}
