package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/admin-dashboard/internal/model"
	"github.com/iliyamo/admin-dashboard/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a freshly hashed password and returns its ID.
// New users always start with status Active.
func (r *UserRepo) Create(ctx context.Context, name, email, password string, cost int) (uint64, error) {
	email = normalizeEmail(email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, status) VALUES (?,?,?,?)",
		name, email, hash, model.StatusActive)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = normalizeEmail(email)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,status,last_login,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Status, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,status,last_login,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Status, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// TouchLastLogin records a successful authentication time.
func (r *UserRepo) TouchLastLogin(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET last_login=UTC_TIMESTAMP() WHERE id=?", id)
	return err
}

// List returns every user ordered by creation time. The password_hash
// column is deliberately not selected so it cannot leak into responses.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email,status,last_login,created_at,updated_at FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Status, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateStatusByEmails sets status on every user whose email is in the
// given set, in a single statement. The returned count is the number of
// rows whose value actually changed, so re-applying the same status to
// already-transitioned users reports zero.
func (r *UserRepo) UpdateStatusByEmails(ctx context.Context, emails []string, status string) (int64, error) {
	if len(emails) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(emails)+1)
	args = append(args, status)
	for _, e := range emails {
		args = append(args, normalizeEmail(e))
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET status=? WHERE email IN ("+placeholders(len(emails))+")", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteByEmails removes every user whose email is in the given set, in a
// single statement, and returns the number of deleted rows.
func (r *UserRepo) DeleteByEmails(ctx context.Context, emails []string) (int64, error) {
	if len(emails) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(emails))
	for _, e := range emails {
		args = append(args, normalizeEmail(e))
	}
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM users WHERE email IN ("+placeholders(len(emails))+")", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// placeholders returns "?,?,...,?" with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
