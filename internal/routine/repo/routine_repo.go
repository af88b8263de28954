package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/routine/entity"
)

// RoutineRepo provides data access for the routines table using sqlx.
type RoutineRepo struct {
	db *sqlx.DB
}

func NewRoutineRepo(db *sqlx.DB) *RoutineRepo { return &RoutineRepo{db: db} }

// EnsureTable creates the routines table if not exists (idempotent).
func (r *RoutineRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS routines (
  id varchar(32) PRIMARY KEY,
  user_id BIGINT NOT NULL,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  weekdays INT[] NOT NULL DEFAULT '{}',
  active BOOLEAN NOT NULL DEFAULT true,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_routines_user ON routines (user_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *RoutineRepo) Create(ctx context.Context, rt *entity.Routine) error {
	const q = `INSERT INTO routines (id, user_id, title, description, weekdays, active, created_at, updated_at)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err := r.db.ExecContext(ctx, q, rt.ID, rt.UserID, rt.Title, rt.Description, rt.Weekdays, rt.Active, rt.CreatedAt)
	return err
}

func (r *RoutineRepo) GetForUser(ctx context.Context, id string, userID int64) (*entity.Routine, error) {
	const q = `SELECT id, user_id, title, description, weekdays, active, created_at, updated_at
	  FROM routines WHERE id=$1 AND user_id=$2`
	var row entity.Routine
	if err := r.db.GetContext(ctx, &row, q, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *RoutineRepo) ListByUser(ctx context.Context, userID int64) ([]entity.Routine, error) {
	const q = `SELECT id, user_id, title, description, weekdays, active, created_at, updated_at
	  FROM routines WHERE user_id=$1 ORDER BY created_at ASC`
	var rows []entity.Routine
	if err := r.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RoutineRepo) Update(ctx context.Context, rt *entity.Routine, now time.Time) (bool, error) {
	const q = `UPDATE routines SET title=$3, description=$4, weekdays=$5, active=$6, updated_at=$7
	  WHERE id=$1 AND user_id=$2`
	res, err := r.db.ExecContext(ctx, q, rt.ID, rt.UserID, rt.Title, rt.Description, rt.Weekdays, rt.Active, now)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	return count > 0, err
}

func (r *RoutineRepo) Delete(ctx context.Context, id string, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM routines WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	return count > 0, err
}
