// Package session resolves opaque session tokens to user identities and
// guards protected routes. A token is issued once at registration, stored on
// the user row, and never rotated or expired.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/daily-diet-api/internal/database"
)

// ErrNotAuthenticated means no token was supplied or the token matches no
// user. A persistence failure is never folded into this error; it propagates
// as-is so callers surface it as a server-side failure.
var ErrNotAuthenticated = errors.New("not authenticated")

// Identity is the resolved representation of the requesting user. It carries
// just enough to drive ownership checks and the /users/me endpoint.
type Identity struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Resolver looks up identities by session token
type Resolver struct {
	db *bun.DB
}

func NewResolver(db *bun.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve maps a session token to the owning identity. It is a read-only
// lookup with no side effects.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	// Tokens are UUIDs; anything else cannot match a user, so skip the lookup.
	sessionToken, err := uuid.Parse(token)
	if err != nil {
		return nil, ErrNotAuthenticated
	}

	dbUser := new(database.User)
	err = r.db.NewSelect().
		Model(dbUser).
		Where("session_token = ?", sessionToken).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	return &Identity{
		ID:        dbUser.ID,
		Name:      dbUser.Name,
		Email:     dbUser.Email,
		CreatedAt: dbUser.CreatedAt,
	}, nil
}
