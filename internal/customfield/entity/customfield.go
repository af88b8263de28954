package entity

import "time"

// CustomField is a user-defined attribute attached to transactions.
// Version supports optimistic locking on updates.
type CustomField struct {
	ID        string    `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Name      string    `db:"name" json:"name"`
	DataType  string    `db:"data_type" json:"dataType"` // text / number / date / bool
	Required  bool      `db:"required" json:"required"`
	Version   int64     `db:"version" json:"version"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
