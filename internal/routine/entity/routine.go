package entity

import (
	"time"

	"github.com/lib/pq"
)

// Routine is a recurring habit scheduled on specific weekdays
// (0 = Sunday .. 6 = Saturday).
type Routine struct {
	ID          string        `db:"id" json:"id"`
	UserID      int64         `db:"user_id" json:"userId"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	Weekdays    pq.Int64Array `db:"weekdays" json:"weekdays"`
	Active      bool          `db:"active" json:"active"`
	CreatedAt   time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}
