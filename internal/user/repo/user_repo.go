package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/user/entity"
)

// UserRepo provides data access for the users table using sqlx.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// EnsureTable creates the users table if not exists (idempotent).
func (r *UserRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS users (
  id BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL,
  login TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Create inserts a new user row and returns its ID.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (int64, error) {
	const q = `INSERT INTO users (name, login, email, password_hash) VALUES ($1, $2, $3, $4) RETURNING id`
	var id int64
	if err := r.db.GetContext(ctx, &id, q, u.Name, u.Login, u.Email, u.PasswordHash); err != nil {
		return 0, err
	}
	u.ID = id
	return id, nil
}

// GetByLogin returns the user with the given login, or nil when absent.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (*entity.User, error) {
	const q = `SELECT id, name, login, email, password_hash, created_at, updated_at FROM users WHERE login=$1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, login); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetByID returns the user with the given ID, or nil when absent.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	const q = `SELECT id, name, login, email, password_hash, created_at, updated_at FROM users WHERE id=$1`
	var row entity.User
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ExistsByLoginOrEmail reports whether a user already holds the login or email.
func (r *UserRepo) ExistsByLoginOrEmail(ctx context.Context, login, email string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM users WHERE login=$1 OR email=$2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, login, email); err != nil {
		return false, err
	}
	return exists, nil
}
