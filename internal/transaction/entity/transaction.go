package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindIncome  = "income"
	KindExpense = "expense"
)

// Transaction is a single money movement inside a monthly record.
type Transaction struct {
	ID              string          `db:"id" json:"id"`
	UserID          int64           `db:"user_id" json:"userId"`
	MonthlyRecordID string          `db:"monthly_record_id" json:"monthlyRecordId"`
	Kind            string          `db:"kind" json:"kind"`
	Title           string          `db:"title" json:"title"`
	Description     string          `db:"description" json:"description,omitempty"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	OccurredAt      time.Time       `db:"occurred_at" json:"occurredAt"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updatedAt"`
}

// Summary aggregates the transactions of one monthly record.
type Summary struct {
	Income  decimal.Decimal `db:"income" json:"income"`
	Expense decimal.Decimal `db:"expense" json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}
