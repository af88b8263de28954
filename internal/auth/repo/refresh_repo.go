package repo

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// RefreshRepo stores opaque refresh tokens bound to a user and the
// engagement session identifier issued alongside them.
type RefreshRepo struct {
	db *sqlx.DB
}

func NewRefreshRepo(db *sqlx.DB) *RefreshRepo {
	return &RefreshRepo{db: db}
}

// EnsureTable creates the refresh-session table if not exists (idempotent).
func (r *RefreshRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS auth_refresh_sessions (
  token TEXT PRIMARY KEY,
  user_id BIGINT NOT NULL,
  session_id TEXT NOT NULL DEFAULT '',
  expires_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_auth_refresh_sessions_user ON auth_refresh_sessions (user_id);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

func (r *RefreshRepo) Save(ctx context.Context, token string, userID int64, sessionID string, expiresAt time.Time) error {
	const q = `INSERT INTO auth_refresh_sessions (token, user_id, session_id, expires_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, q, token, userID, sessionID, expiresAt)
	return err
}

func (r *RefreshRepo) Get(ctx context.Context, token string) (int64, string, time.Time, error) {
	const q = `SELECT user_id, session_id, expires_at FROM auth_refresh_sessions WHERE token = $1`
	var (
		userID    int64
		sessionID string
		expiresAt time.Time
	)
	row := r.db.QueryRowxContext(ctx, q, token)
	if err := row.Scan(&userID, &sessionID, &expiresAt); err != nil {
		return 0, "", time.Time{}, err
	}
	return userID, sessionID, expiresAt, nil
}

func (r *RefreshRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_refresh_sessions WHERE token = $1`, token)
	return err
}
