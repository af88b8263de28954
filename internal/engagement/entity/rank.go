package entity

import "time"

// MonthlyRank is the persisted per-user activity total for one month,
// exactly one row per (user, year, month).
type MonthlyRank struct {
	UserID                       int64      `db:"user_id" json:"userId"`
	Year                         int        `db:"year" json:"year"`
	Month                        int        `db:"month" json:"month"`
	TotalEntries                 int64      `db:"total_entries" json:"totalEntries"`
	LastPositionLossNotifiedAt   *time.Time `db:"last_position_loss_notified_at" json:"lastPositionLossNotifiedAt,omitempty"`
	LastPositionLossNotifiedRank *int       `db:"last_position_loss_notified_rank" json:"lastPositionLossNotifiedRank,omitempty"`
}

// RankEntry is one row of the monthly ordering as the store returns it:
// total entries descending, userId ascending on ties.
type RankEntry struct {
	UserID       int64 `db:"user_id" json:"userId"`
	TotalEntries int64 `db:"total_entries" json:"totalEntries"`
}

// RankedEntry is a RankEntry with its 1-based position in the full ordering.
type RankedEntry struct {
	UserID       int64 `json:"userId"`
	TotalEntries int64 `json:"totalEntries"`
	Rank         int   `json:"rank"`
}

// LostPosition describes a user whose rank worsened after another user's login.
type LostPosition struct {
	UserID          int64 `json:"userId"`
	PositionsLost   int   `json:"positionsLost"`
	CurrentPosition int   `json:"currentPosition"`
}

// NotificationPayload is the plain payload handed to the Notifier; the
// Notifier owns persistence, unread counts and live delivery.
type NotificationPayload struct {
	ID                   string         `json:"id"`
	Title                string         `json:"title"`
	Entity               string         `json:"entity"`
	IDEntity             string         `json:"idEntity"`
	Path                 string         `json:"path"`
	TypeOfAction         string         `json:"typeOfAction"`
	Payload              map[string]any `json:"payload"`
	CreatedAt            time.Time      `json:"createdAt"`
	CountNewNotification int64          `json:"countNewNotification"`
}
