package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user. Returns ErrUsernameTaken if the username
	// already exists.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if unknown.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username. Returns ErrUserNotFound
	// if unknown.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// UpdateCash overwrites the stored cash balance. The caller has already
	// validated the new balance.
	UpdateCash(ctx context.Context, userID uuid.UUID, cash decimal.Decimal) error
}

// TransactionRepository defines the interface for the append-only
// transaction log and its aggregations
type TransactionRepository interface {
	// RecordTrade inserts one transaction row and overwrites the user's cash
	// balance as a single atomic unit. On failure neither change persists.
	RecordTrade(ctx context.Context, userID uuid.UUID, txn *Transaction, newCash decimal.Decimal) error

	// SumShares returns the aggregate signed share count for a user and
	// symbol, 0 if the user never traded it.
	SumShares(ctx context.Context, userID uuid.UUID, symbol string) (int64, error)

	// ListHoldings returns one entry per symbol with a positive aggregate
	// share count. CurrentPrice and Total are left for the caller to fill.
	ListHoldings(ctx context.Context, userID uuid.UUID) ([]*Holding, error)

	// ListHistory returns all transactions for the user, oldest first.
	ListHistory(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)

	// ListActiveSymbols returns every symbol currently held by any user.
	ListActiveSymbols(ctx context.Context) ([]string, error)
}
