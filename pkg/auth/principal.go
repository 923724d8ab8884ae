package auth

import "context"

type principalKey struct{}

// Principal is the authenticated caller attached to a request context.
type Principal struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

func (p *Principal) Can(c Capability) bool {
	if p == nil {
		return false
	}
	return p.Role.Can(c)
}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns nil when the request is anonymous.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
