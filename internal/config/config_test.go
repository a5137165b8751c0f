package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dropDatabas3/janus/internal/config"
)

func TestDefaults(t *testing.T) {
	// neutralizar overrides del entorno de CI
	t.Setenv("ADDR", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "")

	c := config.Default()

	if c.Server.Addr != ":8080" {
		t.Fatalf("addr = %q", c.Server.Addr)
	}
	if c.Storage.Driver != "memory" {
		t.Fatalf("driver = %q", c.Storage.Driver)
	}
	if c.AccessTTL() != 3*time.Minute {
		t.Fatalf("access ttl = %v", c.AccessTTL())
	}
	if c.RefreshTTL() != 90*time.Minute {
		t.Fatalf("refresh ttl = %v", c.RefreshTTL())
	}
	if c.Rate.Login.Limit != 10 || c.LoginRateWindow() != time.Minute {
		t.Fatalf("rate = %d/%v", c.Rate.Login.Limit, c.LoginRateWindow())
	}
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("DATABASE_URL", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
app:
  env: prod
  seed: true
server:
  addr: ":9090"
jwt:
  secret: "s3cret"
  access_ttl: 5m
storage:
  driver: memory
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.App.Env != "prod" || !c.App.Seed {
		t.Fatalf("app = %+v", c.App)
	}
	if c.Server.Addr != ":9090" {
		t.Fatalf("addr = %q", c.Server.Addr)
	}
	if c.AccessTTL() != 5*time.Minute {
		t.Fatalf("access ttl = %v", c.AccessTTL())
	}
	// lo no seteado cae al default
	if c.RefreshTTL() != 90*time.Minute {
		t.Fatalf("refresh ttl = %v", c.RefreshTTL())
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := config.Load("/no/existe.yaml"); err == nil {
		t.Fatal("load de archivo inexistente no falló")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/db")

	c := config.Default()
	if c.Server.Addr != ":7070" {
		t.Fatalf("addr = %q", c.Server.Addr)
	}
	if c.JWT.Secret != "env-secret" {
		t.Fatalf("secret no vino del env")
	}
	if c.Storage.Driver != "postgres" || c.Storage.DSN == "" {
		t.Fatalf("storage = %+v", c.Storage)
	}
}

func TestValidate(t *testing.T) {
	c := config.Default()
	c.JWT.Secret = ""
	if err := c.Validate(); err == nil {
		t.Fatal("sin secret tendría que fallar")
	}

	c = config.Default()
	c.JWT.Secret = "s"
	c.Storage.Driver = "postgres"
	c.Storage.DSN = ""
	if err := c.Validate(); err == nil {
		t.Fatal("postgres sin dsn tendría que fallar")
	}
}

func TestBadDurationFallsBack(t *testing.T) {
	c := config.Default()
	c.JWT.AccessTTL = "no-es-duracion"
	if c.AccessTTL() != 3*time.Minute {
		t.Fatalf("ttl = %v", c.AccessTTL())
	}
}
