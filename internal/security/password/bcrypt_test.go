package password_test

import (
	"strings"
	"testing"

	"github.com/dropDatabas3/janus/internal/security/password"
)

func TestHashAndVerify(t *testing.T) {
	h, err := password.Hash("yeyeye")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(h, "$2") {
		t.Fatalf("no parece bcrypt: %q", h)
	}
	if !password.Verify("yeyeye", h) {
		t.Fatal("el password correcto no verifica")
	}
	if password.Verify("otro", h) {
		t.Fatal("un password incorrecto verificó")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := password.Hash("mismo")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := password.Hash("mismo")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatal("dos hashes del mismo password salieron iguales")
	}
}

func TestEmptyPassword(t *testing.T) {
	if _, err := password.Hash(""); err == nil {
		t.Fatal("hash de password vacío no falló")
	}
	if password.Verify("", "hash-cualquiera") {
		t.Fatal("verify de vacío contra basura pasó")
	}
}
