package auth

import (
	"context"

	"github.com/rogerio-castellano/furniture-storefront/internal/models"
)

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

type contextKey string

const identityKey = contextKey("identity")

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the caller's identity and whether one was attached.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func IdentityFromClaims(c *Claims) Identity {
	return Identity{UserID: c.Subject, Email: c.Email, Role: c.Role}
}
