package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller, produced by the auth middleware and
// passed explicitly into service calls.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

// Authenticated reports whether the identity carries a user.
func (i Identity) Authenticated() bool {
	return i.UserID != uuid.Nil
}

func SetIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity returns the zero Identity when the request was not authenticated.
func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	if !ok || !identity.Authenticated() {
		return Identity{}, false
	}
	return identity, true
}
