package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Fallos tipados de verificación. Hacia el cliente se colapsan en un 403
// genérico para no filtrar cuál chequeo falló; los logs sí distinguen.
var (
	// ErrMalformed: el string no decodifica a la forma esperada.
	ErrMalformed = errors.New("token_malformed")
	// ErrSignatureInvalid: la firma no corresponde a la clave configurada.
	ErrSignatureInvalid = errors.New("token_signature_invalid")
	// ErrExpired: exp <= now.
	ErrExpired = errors.New("token_expired")
)

// Verifier valida firma y expiración con la misma clave simétrica del Issuer.
// Es una transformación pura sobre (token, clave, reloj): seguro para
// requests concurrentes.
type Verifier struct {
	// Now es el reloj inyectable para tests de borde de expiración.
	Now func() time.Time

	secret []byte
}

func NewVerifier(secret []byte) *Verifier {
	return &Verifier{Now: time.Now, secret: secret}
}

// Verify valida el token y devuelve sus claims decodificadas.
// No distingue access de refresh: eso lo decide el caller vía Claims.Kind().
func (v *Verifier) Verify(raw string) (*Claims, error) {
	keyfunc := func(t *jwtv5.Token) (any, error) {
		return v.secret, nil
	}
	tok, err := jwtv5.Parse(raw, keyfunc,
		jwtv5.WithValidMethods([]string{"HS256"}),
		jwtv5.WithTimeFunc(func() time.Time { return v.Now() }),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return nil, mapParseError(err)
	}

	mc, ok := tok.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil, ErrMalformed
	}

	out := &Claims{}
	out.Subject, _ = mc["sub"].(string)
	out.Issuer, _ = mc["iss"].(string)
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}

	// roles: la PRESENCIA del claim decide el tipo de token, así que un
	// array vacío se preserva como slice no-nil.
	if rawRoles, present := mc["roles"]; present {
		arr, ok := rawRoles.([]any)
		if !ok {
			return nil, ErrMalformed
		}
		roles := make([]string, 0, len(arr))
		for _, r := range arr {
			s, ok := r.(string)
			if !ok {
				return nil, ErrMalformed
			}
			roles = append(roles, s)
		}
		out.Roles = roles
	}
	return out, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwtv5.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwtv5.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	default:
		return ErrMalformed
	}
}
