package middlewares

import (
	"context"
)

// Principal es la identidad autenticada del request: el email (subject del
// token) más el snapshot de roles que venía en el claim. Vive solo en el
// contexto del request y muere con él.
type Principal struct {
	Email string
	Roles []string
}

// HasAnyRole indica si el principal tiene al menos uno de los roles dados
// (igualdad de strings, el core no interpreta los nombres).
func (p *Principal) HasAnyRole(roles ...string) bool {
	if p == nil {
		return false
	}
	for _, want := range roles {
		for _, have := range p.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

type ctxKey string

const (
	ctxPrincipalKey ctxKey = "principal"
	ctxRequestIDKey ctxKey = "request_id"
)

// WithPrincipal inyecta el principal autenticado en el contexto.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipalKey, p)
}

// GetPrincipal obtiene el principal del contexto.
// Retorna nil si el request pasó sin autenticar (fail-open del gate).
func GetPrincipal(ctx context.Context) *Principal {
	if v := ctx.Value(ctxPrincipalKey); v != nil {
		if p, ok := v.(*Principal); ok {
			return p
		}
	}
	return nil
}

// setRequestID inyecta el request ID en el contexto (interno).
func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// GetRequestID obtiene el request ID del contexto.
// Retorna cadena vacía si no hay.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
