package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/customfield/entity"
)

// CustomFieldRepo provides data access for the custom_fields table using sqlx.
type CustomFieldRepo struct {
	db *sqlx.DB
}

func NewCustomFieldRepo(db *sqlx.DB) *CustomFieldRepo { return &CustomFieldRepo{db: db} }

// EnsureTable creates the custom_fields table if not exists (idempotent).
func (r *CustomFieldRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS custom_fields (
  id varchar(32) PRIMARY KEY,
  user_id BIGINT NOT NULL,
  name TEXT NOT NULL,
  data_type TEXT NOT NULL DEFAULT 'text',
  required BOOLEAN NOT NULL DEFAULT false,
  version BIGINT NOT NULL DEFAULT 1,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_custom_fields_user ON custom_fields (user_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *CustomFieldRepo) Create(ctx context.Context, f *entity.CustomField) error {
	const q = `INSERT INTO custom_fields (id, user_id, name, data_type, required, version, created_at, updated_at)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`
	_, err := r.db.ExecContext(ctx, q, f.ID, f.UserID, f.Name, f.DataType, f.Required, f.Version, f.CreatedAt)
	return err
}

func (r *CustomFieldRepo) GetForUser(ctx context.Context, id string, userID int64) (*entity.CustomField, error) {
	const q = `SELECT id, user_id, name, data_type, required, version, created_at, updated_at
	  FROM custom_fields WHERE id=$1 AND user_id=$2`
	var row entity.CustomField
	if err := r.db.GetContext(ctx, &row, q, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *CustomFieldRepo) ListByUser(ctx context.Context, userID int64) ([]entity.CustomField, error) {
	const q = `SELECT id, user_id, name, data_type, required, version, created_at, updated_at
	  FROM custom_fields WHERE user_id=$1 ORDER BY name ASC`
	var rows []entity.CustomField
	if err := r.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, err
	}
	return rows, nil
}

// Update writes the field only when the stored version still matches
// expectedVersion, returning the number of rows affected.
func (r *CustomFieldRepo) Update(ctx context.Context, f *entity.CustomField, expectedVersion int64, now time.Time) (int64, error) {
	const q = `UPDATE custom_fields SET name=$3, data_type=$4, required=$5, version=$6, updated_at=$7
	  WHERE id=$1 AND user_id=$2 AND version=$8`
	res, err := r.db.ExecContext(ctx, q, f.ID, f.UserID, f.Name, f.DataType, f.Required, f.Version, now, expectedVersion)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *CustomFieldRepo) Delete(ctx context.Context, id string, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM custom_fields WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, err
	}
	count, err := res.RowsAffected()
	return count > 0, err
}
