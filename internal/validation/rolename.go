package validation

import "regexp"

// Reglas para nombres de rol:
// - Mayúsculas, dígitos y guion bajo.
// - Empieza y termina en [A-Z0-9].
// - Largo 1..64.
//
// Válidos: ADMIN, NORMAL_USER, SUPER_ADMIN, L2_SUPPORT
// Inválidos: admin, _ADMIN, ADMIN_, "ROL CON ESPACIO", ""
var roleNameRe = regexp.MustCompile(`^[A-Z0-9](?:[A-Z0-9_]{0,62}[A-Z0-9])?$`)

// ValidRoleName indica si el nombre cumple el patrón permitido.
func ValidRoleName(name string) bool {
	return roleNameRe.MatchString(name)
}
