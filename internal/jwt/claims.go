package jwt

import "time"

// Kind es el tipo de token, derivado de la forma del claim set.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Claims es el payload firmado de un token: {sub, iss, exp, roles?}.
//
// Invariante de wire-format: el claim "roles" está SIEMPRE presente en un
// access token (aunque sea un array vacío) y NUNCA presente en un refresh
// token. La presencia del claim es el único discriminante entre ambos tipos.
// En el struct decodificado eso se representa con Roles == nil (claim
// ausente) vs Roles != nil pero posiblemente vacío (claim presente).
type Claims struct {
	Subject   string
	Issuer    string
	ExpiresAt time.Time
	Roles     []string
}

// Kind deriva el tipo de token del claim set, para que ningún caller
// re-implemente el discriminante por su cuenta.
func (c *Claims) Kind() Kind {
	if c.Roles == nil {
		return KindRefresh
	}
	return KindAccess
}

// HasRoles indica si el token otorga al menos un rol.
// Un access token de un usuario sin roles retorna false.
func (c *Claims) HasRoles() bool {
	return len(c.Roles) > 0
}
