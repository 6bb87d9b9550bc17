package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/admin-dashboard/internal/model"
)

func newMockRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewUserRepo(db), mock, func() { db.Close() }
}

func TestCreate_HashesAndNormalizes(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users (name, email, password_hash, status) VALUES (?,?,?,?)")).
		WithArgs("Alice", "alice@example.com", sqlmock.AnyArg(), model.StatusActive).
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Create(context.Background(), "Alice", "  ALICE@Example.COM ", "s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'alice@example.com' for key 'users.email'"))

	_, err := repo.Create(context.Background(), "Alice", "alice@example.com", "s3cret", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,name,email,password_hash,status,last_login,created_at,updated_at FROM users WHERE email=? LIMIT 1")).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByEmail_ScansRow(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "status", "last_login", "created_at", "updated_at"}).
		AddRow(3, "Bob", "bob@example.com", "$2a$04$hash", model.StatusBlocked, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email=?")).
		WithArgs("bob@example.com").
		WillReturnRows(rows)

	u, err := repo.GetByEmail(context.Background(), "Bob@Example.com")
	require.NoError(t, err)
	assert.Equal(t, uint64(3), u.ID)
	assert.Equal(t, model.StatusBlocked, u.Status)
	assert.Nil(t, u.LastLogin)
}

func TestList_NeverSelectsPasswordHash(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	now := time.Now().UTC()
	last := now.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"id", "name", "email", "status", "last_login", "created_at", "updated_at"}).
		AddRow(1, "Alice", "alice@example.com", model.StatusActive, &last, now, now).
		AddRow(2, "Bob", "bob@example.com", model.StatusBlocked, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,name,email,status,last_login,created_at,updated_at FROM users ORDER BY created_at")).
		WillReturnRows(rows)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	// The query never reads password_hash, so the struct field stays zero.
	assert.Empty(t, users[0].PasswordHash)
	assert.Empty(t, users[1].PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusByEmails_BulkStatement(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET status=? WHERE email IN (?,?)")).
		WithArgs(model.StatusBlocked, "a@example.com", "b@example.com").
		WillReturnResult(sqlmock.NewResult(0, 2))

	n, err := repo.UpdateStatusByEmails(context.Background(), []string{"A@example.com", "b@example.com"}, model.StatusBlocked)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusByEmails_AlreadyInStatus(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	// MySQL reports zero affected rows when every matched row already
	// holds the target value.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET status=? WHERE email IN (?)")).
		WithArgs(model.StatusBlocked, "a@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.UpdateStatusByEmails(context.Background(), []string{"a@example.com"}, model.StatusBlocked)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestUpdateStatusByEmails_EmptySet(t *testing.T) {
	repo, _, done := newMockRepo(t)
	defer done()

	n, err := repo.UpdateStatusByEmails(context.Background(), nil, model.StatusBlocked)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteByEmails_BulkStatement(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE email IN (?,?,?)")).
		WithArgs("a@example.com", "b@example.com", "c@example.com").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteByEmails(context.Background(), []string{"a@example.com", "b@example.com", "c@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestDeleteByEmails_NoMatch(t *testing.T) {
	repo, mock, done := newMockRepo(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE email IN (?)")).
		WithArgs("ghost@example.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.DeleteByEmails(context.Background(), []string{"ghost@example.com"})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", placeholders(0))
	assert.Equal(t, "?", placeholders(1))
	assert.Equal(t, "?,?,?", placeholders(3))
}
