package session

import "context"

// IdentityResolver defines the interface for session token resolution.
// The production implementation is Resolver (database-backed).
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}
