package dto

import (
	"time"

	"github.com/zhixin-lin/finance/internal/domain"
)

// TradeRequest carries the raw buy/sell form fields. Validation happens
// in the trading engine, not here.
type TradeRequest struct {
	Symbol string `json:"symbol"`
	Shares string `json:"shares"`
}

// DepositRequest carries the raw top-up amount
type DepositRequest struct {
	Amount string `json:"amount"`
}

// DepositResponse returns the balance after a top-up
type DepositResponse struct {
	Cash string `json:"cash"`
}

// TransactionOutput represents one executed trade in API responses
type TransactionOutput struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Shares int64  `json:"shares"`
	Price  string `json:"price"`
	Time   string `json:"time"`
}

// QuoteOutput represents a quote lookup result
type QuoteOutput struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Price  string `json:"price"`
}

// NewTransactionOutput converts a domain transaction for the wire
func NewTransactionOutput(txn *domain.Transaction) *TransactionOutput {
	return &TransactionOutput{
		ID:     txn.ID.String(),
		Symbol: txn.Symbol,
		Name:   txn.Name,
		Shares: txn.Shares,
		Price:  txn.Price.String(),
		Time:   txn.Time.UTC().Format(time.RFC3339),
	}
}
