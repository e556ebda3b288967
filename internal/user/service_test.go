package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/daily-diet-api/internal/logging"
)

// fakeUserStore enforces email uniqueness like the real table does.
type fakeUserStore struct {
	users []User
	err   error
}

func (f *fakeUserStore) Create(ctx context.Context, name, email string, sessionToken uuid.UUID) (*User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}
	u := User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		SessionToken: sessionToken,
		CreatedAt:    time.Now(),
	}
	f.users = append(f.users, u)
	return &u, nil
}

func newTestService(store Store) *Service {
	return NewService(store, logging.NewLogger(true))
}

func TestRegister(t *testing.T) {
	store := &fakeUserStore{}
	svc := newTestService(store)

	u, err := svc.Register(context.Background(), "Jane", "jane@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Jane", u.Name)
	assert.Equal(t, "jane@example.com", u.Email)
	assert.NotEqual(t, uuid.Nil, u.SessionToken)
}

func TestRegister_TrimsInput(t *testing.T) {
	svc := newTestService(&fakeUserStore{})

	u, err := svc.Register(context.Background(), "  Jane  ", "  jane@example.com  ")
	require.NoError(t, err)

	assert.Equal(t, "Jane", u.Name)
	assert.Equal(t, "jane@example.com", u.Email)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		email   string
		wantErr error
	}{
		{"empty name", "", "jane@example.com", ErrNameRequired},
		{"whitespace name", "   ", "jane@example.com", ErrNameRequired},
		{"empty email", "Jane", "", ErrEmailRequired},
		{"malformed email", "Jane", "not-an-email", ErrInvalidEmailFormat},
		{"overlong email", "Jane", strings.Repeat("a", 250) + "@example.com", ErrInvalidEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeUserStore{})

			_, err := svc.Register(context.Background(), tt.user, tt.email)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegister_DuplicateEmailKeepsFirstToken(t *testing.T) {
	store := &fakeUserStore{}
	svc := newTestService(store)

	first, err := svc.Register(context.Background(), "Jane", "jane@example.com")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Impostor", "jane@example.com")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	require.Len(t, store.users, 1)
	assert.Equal(t, first.SessionToken, store.users[0].SessionToken)
}

func TestRegister_DistinctTokensPerUser(t *testing.T) {
	svc := newTestService(&fakeUserStore{})

	a, err := svc.Register(context.Background(), "A", "a@example.com")
	require.NoError(t, err)
	b, err := svc.Register(context.Background(), "B", "b@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, a.SessionToken, b.SessionToken)
}

func TestRegister_StoreFailure(t *testing.T) {
	svc := newTestService(&fakeUserStore{err: errors.New("connection refused")})

	_, err := svc.Register(context.Background(), "Jane", "jane@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}
