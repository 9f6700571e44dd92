package repository

import (
	"context"
	"testing"
	"time"

	"course_catalog/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepoMock(t *testing.T) (pgxmock.PgxPoolIface, UserRepository) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewUserRepository(mock)
}

func TestUserRepository_Create(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	user := &model.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		IsAdmin:      false,
		CreatedAt:    time.Now(),
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))

	err := repo.Create(context.Background(), user)

	assert.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	user := &model.User{
		Username:     "alice2",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.Email, user.PasswordHash, user.IsAdmin, user.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), user)

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	created := time.Now()
	mock.ExpectQuery("SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE email").
		WithArgs("bob@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "email", "password_hash", "is_admin", "created_at"}).
			AddRow(2, "bob", "bob@example.com", "hash", true, created))

	user, err := repo.FindByEmail(context.Background(), "bob@example.com")

	assert.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 2, user.ID)
	assert.True(t, user.IsAdmin)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	mock, repo := newUserRepoMock(t)

	mock.ExpectQuery("SELECT id, username, email, password_hash, is_admin, created_at FROM users WHERE email").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	user, err := repo.FindByEmail(context.Background(), "nobody@example.com")

	assert.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}
