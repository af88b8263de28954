package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyRecord is one category's financial month for a user,
// unique per (user, category, month, year).
type MonthlyRecord struct {
	ID         string          `db:"id" json:"id"`
	UserID     int64           `db:"user_id" json:"userId"`
	CategoryID string          `db:"category_id" json:"categoryId"`
	Month      int             `db:"month" json:"month"`
	Year       int             `db:"year" json:"year"`
	Goal       decimal.Decimal `db:"goal" json:"goal"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updatedAt"`
}
