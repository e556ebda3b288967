package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/daily-diet-api/internal/database"
)

var ErrDuplicateEmail = errors.New("email already exists")

// Repository handles user data persistence
type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. The session token is written here once and never
// touched again; re-registration with the same email fails on the unique
// constraint instead of merging.
func (r *Repository) Create(ctx context.Context, name, email string, sessionToken uuid.UUID) (*User, error) {
	dbUser := &database.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		SessionToken: sessionToken,
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:           dbu.ID,
		Name:         dbu.Name,
		Email:        dbu.Email,
		SessionToken: dbu.SessionToken,
		CreatedAt:    dbu.CreatedAt,
	}
}
