package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/redmonkez12/daily-diet-api/internal/logging"
)

var (
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
)

// Store defines the persistence interface the service needs
type Store interface {
	Create(ctx context.Context, name, email string, sessionToken uuid.UUID) (*User, error)
}

// Service handles user registration business logic
type Service struct {
	repo   Store
	logger *logging.Logger
}

func NewService(repo Store, logger *logging.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Register creates a new user account and issues its session token. The token
// is the sole credential and is generated exactly once, here.
func (s *Service) Register(ctx context.Context, name, email string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	// Validate input
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(email) > 254 {
		return nil, ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmailFormat
	}

	sessionToken := uuid.New()

	newUser, err := s.repo.Create(ctx, name, email, sessionToken)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}
