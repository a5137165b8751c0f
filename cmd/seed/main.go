package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/janus/internal/bootstrap"
	"github.com/dropDatabas3/janus/internal/observability/logger"
	"github.com/dropDatabas3/janus/internal/store/pg"
	migrations "github.com/dropDatabas3/janus/migrations/postgres"
)

// ---------- helpers env ----------

func strEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Seeder standalone contra postgres: aplica migraciones y carga los roles
// por defecto y las cuentas demo. Pensado para entornos de desarrollo.
func main() {
	_ = godotenv.Load()

	dsn := strEnv("DATABASE_URL", "")
	if dsn == "" {
		log.Fatal("seed: falta DATABASE_URL")
	}

	logger.Init(logger.Config{Env: "dev", Level: "info", ServiceName: "janus-seed"})
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := pg.New(ctx, dsn, pg.Config{})
	if err != nil {
		log.Fatalf("seed: pg open: %v", err)
	}
	defer store.Close()

	if err := store.RunMigrations(ctx, migrations.FS); err != nil {
		log.Fatalf("seed: migrations: %v", err)
	}
	if err := bootstrap.Seed(ctx, store); err != nil {
		log.Fatalf("seed: %v", err)
	}
}
