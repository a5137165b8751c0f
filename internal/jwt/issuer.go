package jwt

import (
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Issuer firma access y refresh tokens con la clave simétrica del proceso.
// No guarda estado por token: todo vive en el claim set firmado.
type Issuer struct {
	AccessTTL  time.Duration // TTL del access token (default 3m, corto a propósito)
	RefreshTTL time.Duration // TTL del refresh token (default 90m; en prod debería ser mucho mayor)

	// Now es el reloj inyectable; los tests lo reemplazan para fijar exp.
	Now func() time.Time

	secret []byte
}

func NewIssuer(secret []byte, accessTTL, refreshTTL time.Duration) *Issuer {
	if accessTTL <= 0 {
		accessTTL = 3 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 90 * time.Minute
	}
	return &Issuer{
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		Now:        time.Now,
		secret:     secret,
	}
}

// IssueAccess emite un access token {sub, iss, exp, roles}.
// El claim "roles" se serializa aunque el slice esté vacío: un usuario sin
// roles igual recibe un access token, y omitir el claim lo volvería
// indistinguible de un refresh token.
func (i *Issuer) IssueAccess(sub, iss string, roles []string) (string, time.Time, error) {
	exp := i.Now().UTC().Add(i.AccessTTL)
	if roles == nil {
		roles = []string{}
	}
	claims := jwtv5.MapClaims{
		"sub":   sub,
		"iss":   iss,
		"exp":   exp.Unix(),
		"roles": roles,
	}
	signed, err := i.sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// IssueRefresh emite un refresh token {sub, iss, exp}, sin claim de roles.
func (i *Issuer) IssueRefresh(sub, iss string) (string, time.Time, error) {
	exp := i.Now().UTC().Add(i.RefreshTTL)
	claims := jwtv5.MapClaims{
		"sub": sub,
		"iss": iss,
		"exp": exp.Unix(),
	}
	signed, err := i.sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// sign firma un MapClaims arbitrario con HS256 y devuelve el JWT compacto.
func (i *Issuer) sign(claims jwtv5.MapClaims) (string, error) {
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"
	return tk.SignedString(i.secret)
}
