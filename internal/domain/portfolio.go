package domain

import (
	"github.com/shopspring/decimal"
)

// Holding is the derived position in one symbol: the aggregate signed share
// count over the transaction log plus a live valuation. Only symbols with a
// positive aggregate are holdings; a symbol sold down to zero disappears.
type Holding struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	TotalShares  int64           `json:"total_shares"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Total        decimal.Decimal `json:"total"` // CurrentPrice * TotalShares
}

// Portfolio is the derived view of an account: live holdings, cash, and
// total value (cash + sum of holding totals). Never stored.
type Portfolio struct {
	Holdings   []*Holding      `json:"holdings"`
	Cash       decimal.Decimal `json:"cash"`
	TotalValue decimal.Decimal `json:"total_value"`
}
