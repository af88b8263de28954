package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/category/entity"
)

// CategoryRepo provides data access for the categories table using sqlx.
type CategoryRepo struct {
	db *sqlx.DB
}

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// EnsureTable creates the categories table if not exists (idempotent).
func (r *CategoryRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS categories (
  id varchar(32) PRIMARY KEY,
  user_id BIGINT NOT NULL,
  name TEXT NOT NULL,
  kind TEXT NOT NULL DEFAULT 'general',
  description TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_categories_user ON categories (user_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	const q = `INSERT INTO categories (id, user_id, name, kind, description, created_at, updated_at)
	  VALUES ($1, $2, $3, $4, $5, $6, $6)`
	_, err := r.db.ExecContext(ctx, q, c.ID, c.UserID, c.Name, c.Kind, c.Description, c.CreatedAt)
	return err
}

// GetForUser fetches one category owned by the user, or nil when absent.
func (r *CategoryRepo) GetForUser(ctx context.Context, id string, userID int64) (*entity.Category, error) {
	const q = `SELECT id, user_id, name, kind, description, created_at, updated_at
	  FROM categories WHERE id=$1 AND user_id=$2`
	var row entity.Category
	if err := r.db.GetContext(ctx, &row, q, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *CategoryRepo) ListByUser(ctx context.Context, userID int64) ([]entity.Category, error) {
	const q = `SELECT id, user_id, name, kind, description, created_at, updated_at
	  FROM categories WHERE user_id=$1 ORDER BY name ASC`
	var rows []entity.Category
	if err := r.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

// Update rewrites the mutable fields and reports whether a row matched.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category, now time.Time) (bool, error) {
	const q = `UPDATE categories SET name=$3, kind=$4, description=$5, updated_at=$6
	  WHERE id=$1 AND user_id=$2`
	res, err := r.db.ExecContext(ctx, q, c.ID, c.UserID, c.Name, c.Kind, c.Description, now)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *CategoryRepo) Delete(ctx context.Context, id string, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
