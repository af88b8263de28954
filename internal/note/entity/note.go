package entity

import "time"

// Note is a free-form note, optionally attached to a category.
type Note struct {
	ID         string    `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"userId"`
	CategoryID *string   `db:"category_id" json:"categoryId,omitempty"`
	Title      string    `db:"title" json:"title"`
	Body       string    `db:"body" json:"body"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}
