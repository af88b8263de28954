package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ProjetosBerg/Projeto-X-Backend-sub001/internal/notification/entity"
)

// NotificationRepo provides data access for notification rows using sqlx.
type NotificationRepo struct {
	db *sqlx.DB
}

func NewNotificationRepo(db *sqlx.DB) *NotificationRepo { return &NotificationRepo{db: db} }

// EnsureTable creates the notifications table if it does not already exist.
func (r *NotificationRepo) EnsureTable(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS notifications (
  id varchar(64) PRIMARY KEY,
  user_id BIGINT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  entity TEXT NOT NULL DEFAULT '',
  id_entity TEXT NOT NULL DEFAULT '',
  path TEXT NOT NULL DEFAULT '',
  type_of_action TEXT NOT NULL DEFAULT '',
  payload JSONB NOT NULL DEFAULT '{}'::jsonb,
  read BOOLEAN NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications (user_id, read);
`
	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// Save inserts a notification row.
func (r *NotificationRepo) Save(ctx context.Context, n *entity.Notification) error {
	const q = `INSERT INTO notifications (id, user_id, title, entity, id_entity, path, type_of_action, payload, read, created_at)
	  VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, '{}'::jsonb), $9, $10)`
	_, err := r.db.ExecContext(ctx, q,
		n.ID, n.UserID, n.Title, n.Entity, n.IDEntity, n.Path, n.TypeOfAction, n.Payload, n.Read, n.CreatedAt)
	return err
}

// CountUnread returns how many unread notifications the user has.
func (r *NotificationRepo) CountUnread(ctx context.Context, userID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM notifications WHERE user_id=$1 AND NOT read`
	var count int64
	if err := r.db.GetContext(ctx, &count, q, userID); err != nil {
		return 0, err
	}
	return count, nil
}

// ListByUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]entity.Notification, error) {
	const q = `SELECT id, user_id, title, entity, id_entity, path, type_of_action, payload, read, created_at
	  FROM notifications WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`
	var rows []entity.Notification
	if err := r.db.SelectContext(ctx, &rows, q, userID, limit); err != nil {
		return nil, err
	}
	return rows, nil
}

// MarkRead flags one of the user's notifications as read and reports
// whether a row was updated.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string, userID int64) (bool, error) {
	const q = `UPDATE notifications SET read=true WHERE id=$1 AND user_id=$2`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
