package domain

import (
	"github.com/shopspring/decimal"
)

// Quote is the current market data for one symbol as returned by the
// external quote provider.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}
