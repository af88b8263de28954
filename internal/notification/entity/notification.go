package entity

import "time"

// Notification is a persisted engagement notification row.
type Notification struct {
	ID           string    `db:"id" json:"id"`
	UserID       int64     `db:"user_id" json:"userId"`
	Title        string    `db:"title" json:"title"`
	Entity       string    `db:"entity" json:"entity"`
	IDEntity     string    `db:"id_entity" json:"idEntity"`
	Path         string    `db:"path" json:"path"`
	TypeOfAction string    `db:"type_of_action" json:"typeOfAction"`
	Payload      []byte    `db:"payload" json:"-"`
	Read         bool      `db:"read" json:"read"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
