package entity

import "time"

// Category groups notes, monthly records and transactions for one user.
type Category struct {
	ID          string    `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	Name        string    `db:"name" json:"name"`
	Kind        string    `db:"kind" json:"kind"` // income / expense / general
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
