package auth

import (
	"context"

	"github.com/huddlehq/huddle/internal/domain"
)

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	User *domain.User
}

type identityKey struct{}

func FromContext(ctx context.Context) *Identity {
	identity, ok := ctx.Value(identityKey{}).(*Identity)
	if !ok {
		return nil
	}
	return identity
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}
