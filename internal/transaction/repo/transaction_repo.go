package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/transaction/entity"
)

// TransactionRepo provides data access for the transactions table using sqlx.
type TransactionRepo struct {
	db *sqlx.DB
}

func NewTransactionRepo(db *sqlx.DB) *TransactionRepo { return &TransactionRepo{db: db} }

// EnsureTable creates the transactions table if not exists (idempotent).
func (r *TransactionRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS transactions (
  id varchar(32) PRIMARY KEY,
  user_id BIGINT NOT NULL,
  monthly_record_id varchar(32) NOT NULL,
  kind varchar(16) NOT NULL,
  title varchar(120) NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  amount NUMERIC(14,2) NOT NULL,
  occurred_at TIMESTAMPTZ NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_transactions_record ON transactions (monthly_record_id, occurred_at);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// RecordBelongsToUser reports whether the monthly record exists and is owned
// by the user. Transactions may only be attached to the owner's records.
func (r *TransactionRepo) RecordBelongsToUser(ctx context.Context, recordID string, userID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM monthly_records WHERE id=$1 AND user_id=$2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, recordID, userID); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	const q = `INSERT INTO transactions
	  (id, user_id, monthly_record_id, kind, title, description, amount, occurred_at, created_at, updated_at)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.UserID, t.MonthlyRecordID, t.Kind, t.Title, t.Description, t.Amount, t.OccurredAt, t.CreatedAt)
	return err
}

func (r *TransactionRepo) GetForUser(ctx context.Context, id string, userID int64) (*entity.Transaction, error) {
	const q = `SELECT id, user_id, monthly_record_id, kind, title, description, amount, occurred_at, created_at, updated_at
	  FROM transactions WHERE id=$1 AND user_id=$2`
	var row entity.Transaction
	if err := r.db.GetContext(ctx, &row, q, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *TransactionRepo) ListByRecord(ctx context.Context, recordID string, userID int64) ([]entity.Transaction, error) {
	const q = `SELECT id, user_id, monthly_record_id, kind, title, description, amount, occurred_at, created_at, updated_at
	  FROM transactions WHERE monthly_record_id=$1 AND user_id=$2 ORDER BY occurred_at DESC, id ASC`
	var rows []entity.Transaction
	if err := r.db.SelectContext(ctx, &rows, q, recordID, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

// SummarizeRecord totals income and expense for one monthly record.
func (r *TransactionRepo) SummarizeRecord(ctx context.Context, recordID string, userID int64) (*entity.Summary, error) {
	const q = `SELECT
	  COALESCE(SUM(amount) FILTER (WHERE kind='income'), 0) AS income,
	  COALESCE(SUM(amount) FILTER (WHERE kind='expense'), 0) AS expense
	  FROM transactions WHERE monthly_record_id=$1 AND user_id=$2`
	var s entity.Summary
	if err := r.db.GetContext(ctx, &s, q, recordID, userID); err != nil {
		return nil, err
	}
	s.Balance = s.Income.Sub(s.Expense)
	return &s, nil
}

func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction, now time.Time) (bool, error) {
	const q = `UPDATE transactions SET kind=$3, title=$4, description=$5, amount=$6, occurred_at=$7, updated_at=$8
	  WHERE id=$1 AND user_id=$2`
	res, err := r.db.ExecContext(ctx, q, t.ID, t.UserID, t.Kind, t.Title, t.Description, t.Amount, t.OccurredAt, now)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	return count > 0, err
}

func (r *TransactionRepo) Delete(ctx context.Context, id string, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	return count > 0, err
}
