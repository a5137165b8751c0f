package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost del hash bcrypt. DefaultCost (10) alcanza para este servicio.
const Cost = bcrypt.DefaultCost

// Hash devuelve el hash bcrypt del password en claro.
// El claro nunca se persiste ni se loguea.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara un password en claro contra un hash almacenado.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
