package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/engagement/entity"
)

// SessionRepo provides data access for the sessions table using sqlx.
type SessionRepo struct {
	db *sqlx.DB
}

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{db: db} }

// EnsureTable creates the sessions table if not exists (idempotent).
// Rows are indexed by (user_id, login_at) to serve day lookups and range scans.
func (r *SessionRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id varchar(32) PRIMARY KEY,
  user_id BIGINT NOT NULL,
  session_id TEXT NOT NULL,
  login_at TIMESTAMPTZ NOT NULL,
  last_entry_at TIMESTAMPTZ NOT NULL,
  entry_count INT NOT NULL DEFAULT 1,
  is_offensive BOOLEAN NOT NULL DEFAULT false
);
CREATE INDEX IF NOT EXISTS idx_sessions_user_login_at ON sessions (user_id, login_at);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// FindActiveSessionForDay returns the session row whose login_at falls on the
// calendar day of `day`, or nil when there is none. A non-empty sessionID
// narrows the match; otherwise the most recent same-day row is returned.
func (r *SessionRepo) FindActiveSessionForDay(ctx context.Context, userID int64, day time.Time, sessionID string) (*entity.Session, error) {
	const q = `SELECT id, user_id, session_id, login_at, last_entry_at, entry_count, is_offensive
	  FROM sessions
	  WHERE user_id=$1 AND login_at >= $2 AND login_at < $2::timestamptz + INTERVAL '1 day'
	    AND ($3 = '' OR session_id = $3)
	  ORDER BY login_at DESC
	  LIMIT 1`
	var row entity.Session
	if err := r.db.GetContext(ctx, &row, q, userID, day, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// Create inserts a new calendar-day session row.
func (r *SessionRepo) Create(ctx context.Context, s *entity.Session) error {
	const q = `INSERT INTO sessions (id, user_id, session_id, login_at, last_entry_at, entry_count, is_offensive)
	  VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, q, s.ID, s.UserID, s.SessionID, s.LoginAt, s.LastEntryAt, s.EntryCount, s.IsOffensive)
	return err
}

// IncrementEntryCount bumps entry_count and moves last_entry_at forward for
// one day-row. Keyed on the row id: the same session identifier may span
// several calendar days, and only today's row must change.
func (r *SessionRepo) IncrementEntryCount(ctx context.Context, id string, now time.Time) error {
	const q = `UPDATE sessions SET entry_count = entry_count + 1, last_entry_at = $2
	  WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, now)
	return err
}

// HasOffensiveLoginOnDate reports whether the user has at least one
// offensive (pre-noon) login on the calendar day of `day`.
func (r *SessionRepo) HasOffensiveLoginOnDate(ctx context.Context, userID int64, day time.Time) (bool, error) {
	const q = `SELECT EXISTS (
	  SELECT 1 FROM sessions
	  WHERE user_id=$1 AND is_offensive
	    AND login_at >= $2 AND login_at < $2::timestamptz + INTERVAL '1 day')`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, q, userID, day); err != nil {
		return false, err
	}
	return exists, nil
}

// FindSessionsInRange returns the user's sessions with login_at in
// [start, end), oldest first.
func (r *SessionRepo) FindSessionsInRange(ctx context.Context, userID int64, start, end time.Time) ([]entity.Session, error) {
	const q = `SELECT id, user_id, session_id, login_at, last_entry_at, entry_count, is_offensive
	  FROM sessions
	  WHERE user_id=$1 AND login_at >= $2 AND login_at < $3
	  ORDER BY login_at ASC`
	var rows []entity.Session
	if err := r.db.SelectContext(ctx, &rows, q, userID, start, end); err != nil {
		return nil, err
	}
	return rows, nil
}
