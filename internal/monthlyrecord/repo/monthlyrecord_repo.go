package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/monthlyrecord/entity"
)

// MonthlyRecordRepo provides data access for the monthly_records table using sqlx.
type MonthlyRecordRepo struct {
	db *sqlx.DB
}

func NewMonthlyRecordRepo(db *sqlx.DB) *MonthlyRecordRepo { return &MonthlyRecordRepo{db: db} }

// EnsureTable creates the monthly_records table if not exists (idempotent).
func (r *MonthlyRecordRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS monthly_records (
  id varchar(32) PRIMARY KEY,
  user_id BIGINT NOT NULL,
  category_id varchar(32) NOT NULL,
  month INT NOT NULL,
  year INT NOT NULL,
  goal NUMERIC(14,2) NOT NULL DEFAULT 0,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  UNIQUE (user_id, category_id, month, year)
);
CREATE INDEX IF NOT EXISTS idx_monthly_records_user_period ON monthly_records (user_id, year, month);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *MonthlyRecordRepo) Create(ctx context.Context, m *entity.MonthlyRecord) error {
	const q = `INSERT INTO monthly_records (id, user_id, category_id, month, year, goal, created_at, updated_at)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err := r.db.ExecContext(ctx, q, m.ID, m.UserID, m.CategoryID, m.Month, m.Year, m.Goal, m.CreatedAt)
	return err
}

// ExistsForPeriod reports whether the user already has a record for the
// category in the given month/year.
func (r *MonthlyRecordRepo) ExistsForPeriod(ctx context.Context, userID int64, categoryID string, month, year int) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM monthly_records
	  WHERE user_id=$1 AND category_id=$2 AND month=$3 AND year=$4)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, userID, categoryID, month, year); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *MonthlyRecordRepo) GetForUser(ctx context.Context, id string, userID int64) (*entity.MonthlyRecord, error) {
	const q = `SELECT id, user_id, category_id, month, year, goal, created_at, updated_at
	  FROM monthly_records WHERE id=$1 AND user_id=$2`
	var row entity.MonthlyRecord
	if err := r.db.GetContext(ctx, &row, q, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *MonthlyRecordRepo) ListByUserPeriod(ctx context.Context, userID int64, month, year int) ([]entity.MonthlyRecord, error) {
	const q = `SELECT id, user_id, category_id, month, year, goal, created_at, updated_at
	  FROM monthly_records WHERE user_id=$1 AND month=$2 AND year=$3 ORDER BY category_id ASC`
	var rows []entity.MonthlyRecord
	if err := r.db.SelectContext(ctx, &rows, q, userID, month, year); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MonthlyRecordRepo) UpdateGoal(ctx context.Context, m *entity.MonthlyRecord, now time.Time) (bool, error) {
	const q = `UPDATE monthly_records SET goal=$3, updated_at=$4 WHERE id=$1 AND user_id=$2`
	res, err := r.db.ExecContext(ctx, q, m.ID, m.UserID, m.Goal, now)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	return count > 0, err
}

func (r *MonthlyRecordRepo) Delete(ctx context.Context, id string, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM monthly_records WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	return count > 0, err
}
