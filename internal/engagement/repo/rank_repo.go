package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/entity"
)

// RankRepo provides data access for the monthly_rank table using sqlx.
type RankRepo struct {
	db *sqlx.DB
}

func NewRankRepo(db *sqlx.DB) *RankRepo { return &RankRepo{db: db} }

// EnsureTable creates the monthly_rank table if not exists (idempotent).
// The (year, month, total_entries) index supports the ranking scan.
func (r *RankRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS monthly_rank (
  user_id BIGINT NOT NULL,
  year INT NOT NULL,
  month INT NOT NULL,
  total_entries BIGINT NOT NULL DEFAULT 0,
  last_position_loss_notified_at TIMESTAMPTZ,
  last_position_loss_notified_rank INT,
  PRIMARY KEY (user_id, year, month)
);
CREATE INDEX IF NOT EXISTS idx_monthly_rank_scan ON monthly_rank (year, month, total_entries DESC);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// GetRankedList returns the month's rows ordered by total_entries descending
// with userId ascending as the deterministic tie-break.
func (r *RankRepo) GetRankedList(ctx context.Context, year, month int) ([]entity.RankEntry, error) {
	const q = `SELECT user_id, total_entries FROM monthly_rank
	  WHERE year=$1 AND month=$2
	  ORDER BY total_entries DESC, user_id ASC`
	var rows []entity.RankEntry
	if err := r.db.SelectContext(ctx, &rows, q, year, month); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertIncrement adds 1 to the user's monthly total in a single statement,
// so concurrent logins by the same user cannot lose updates.
func (r *RankRepo) UpsertIncrement(ctx context.Context, userID int64, year, month int) error {
	const q = `INSERT INTO monthly_rank (user_id, year, month, total_entries)
	  VALUES ($1, $2, $3, 1)
	  ON CONFLICT (user_id, year, month)
	  DO UPDATE SET total_entries = monthly_rank.total_entries + 1`
	_, err := r.db.ExecContext(ctx, q, userID, year, month)
	return err
}

// GetOne fetches a user's monthly record, or nil when the user has no
// record for that month.
func (r *RankRepo) GetOne(ctx context.Context, userID int64, year, month int) (*entity.MonthlyRank, error) {
	const q = `SELECT user_id, year, month, total_entries,
	    last_position_loss_notified_at, last_position_loss_notified_rank
	  FROM monthly_rank WHERE user_id=$1 AND year=$2 AND month=$3`
	var row entity.MonthlyRank
	if err := r.db.GetContext(ctx, &row, q, userID, year, month); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// RecordPositionLossNotification stores the dedup bookkeeping after a
// position-loss event was delivered.
func (r *RankRepo) RecordPositionLossNotification(ctx context.Context, userID int64, year, month, rank int, notifiedAt time.Time) error {
	const q = `UPDATE monthly_rank
	  SET last_position_loss_notified_at=$4, last_position_loss_notified_rank=$5
	  WHERE user_id=$1 AND year=$2 AND month=$3`
	_, err := r.db.ExecContext(ctx, q, userID, year, month, notifiedAt, rank)
	return err
}
