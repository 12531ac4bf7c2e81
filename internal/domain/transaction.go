package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents one executed buy or sell. Rows are append-only:
// once recorded they are never mutated or deleted, and the full account
// history can be rebuilt by replaying them in order.
type Transaction struct {
	ID     uuid.UUID       `json:"id"`
	UserID uuid.UUID       `json:"user_id"`
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Shares int64           `json:"shares"` // positive = buy, negative = sell, never zero
	Price  decimal.Decimal `json:"price"`  // price per share at execution time
	Time   time.Time       `json:"time"`
}

// Cost returns the absolute cash value of the transaction (|shares| * price).
func (t *Transaction) Cost() decimal.Decimal {
	shares := t.Shares
	if shares < 0 {
		shares = -shares
	}
	return t.Price.Mul(decimal.NewFromInt(shares))
}

// IsBuy reports whether the transaction is a purchase.
func (t *Transaction) IsBuy() bool {
	return t.Shares > 0
}
