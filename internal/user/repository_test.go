package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/daily-diet-api/internal/database"
)

func newRepoWithMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(database.NewBunDB(sqlDB)), mock
}

func TestRepositoryCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	token := uuid.New()
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO "users" (.+) RETURNING \*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "session_token", "created_at"}).
			AddRow(uuid.New().String(), "Jane", "jane@example.com", token.String(), now))

	created, err := repo.Create(context.Background(), "Jane", "jane@example.com", token)
	require.NoError(t, err)

	assert.Equal(t, "Jane", created.Name)
	assert.Equal(t, token, created.SessionToken)
	assert.False(t, created.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

	_, err := repo.Create(context.Background(), "Jane", "jane@example.com", uuid.New())
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRepositoryCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnError(errors.New("connection refused"))

	_, err := repo.Create(context.Background(), "Jane", "jane@example.com", uuid.New())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrDuplicateEmail)
}
