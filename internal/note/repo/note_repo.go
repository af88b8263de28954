package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/note/entity"
)

// NoteRepo provides data access for the notes table using sqlx.
type NoteRepo struct {
	db *sqlx.DB
}

func NewNoteRepo(db *sqlx.DB) *NoteRepo { return &NoteRepo{db: db} }

// EnsureTable creates the notes table if not exists (idempotent).
func (r *NoteRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS notes (
  id varchar(32) PRIMARY KEY,
  user_id BIGINT NOT NULL,
  category_id varchar(32),
  title TEXT NOT NULL,
  body TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_notes_user ON notes (user_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *NoteRepo) Create(ctx context.Context, n *entity.Note) error {
	const q = `INSERT INTO notes (id, user_id, category_id, title, body, created_at, updated_at)
	  VALUES ($1, $2, $3, $4, $5, $6, $6)`
	_, err := r.db.ExecContext(ctx, q, n.ID, n.UserID, n.CategoryID, n.Title, n.Body, n.CreatedAt)
	return err
}

func (r *NoteRepo) GetForUser(ctx context.Context, id string, userID int64) (*entity.Note, error) {
	const q = `SELECT id, user_id, category_id, title, body, created_at, updated_at
	  FROM notes WHERE id=$1 AND user_id=$2`
	var row entity.Note
	if err := r.db.GetContext(ctx, &row, q, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *NoteRepo) ListByUser(ctx context.Context, userID int64) ([]entity.Note, error) {
	const q = `SELECT id, user_id, category_id, title, body, created_at, updated_at
	  FROM notes WHERE user_id=$1 ORDER BY updated_at DESC`
	var rows []entity.Note
	if err := r.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *NoteRepo) Update(ctx context.Context, n *entity.Note, now time.Time) (bool, error) {
	const q = `UPDATE notes SET category_id=$3, title=$4, body=$5, updated_at=$6
	  WHERE id=$1 AND user_id=$2`
	res, err := r.db.ExecContext(ctx, q, n.ID, n.UserID, n.CategoryID, n.Title, n.Body, now)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	return count > 0, err
}

func (r *NoteRepo) Delete(ctx context.Context, id string, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	return count > 0, err
}
