package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zhixin-lin/finance/internal/domain"
)

// TransactionRepositoryImpl implements the TransactionRepository interface
type TransactionRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(db *pgxpool.Pool) domain.TransactionRepository {
	return &TransactionRepositoryImpl{db: db}
}

// RecordTrade inserts the transaction row and overwrites the user's cash
// balance inside one database transaction. On any failure the whole unit
// rolls back and neither change is visible.
func (r *TransactionRepositoryImpl) RecordTrade(ctx context.Context, userID uuid.UUID, txn *domain.Transaction, newCash decimal.Decimal) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin trade transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insert := `
		INSERT INTO transactions (
			id, user_id, symbol, name, shares, price, time
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW()
		)
		RETURNING time
	`

	err = tx.QueryRow(ctx, insert,
		txn.ID,
		userID,
		txn.Symbol,
		txn.Name,
		txn.Shares,
		txn.Price,
	).Scan(&txn.Time)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	update := `
		UPDATE users
		SET cash = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := tx.Exec(ctx, update, newCash, userID)
	if err != nil {
		return fmt.Errorf("failed to update cash balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit trade: %w", err)
	}

	return nil
}

// SumShares returns the aggregate signed share count for a user and symbol
func (r *TransactionRepositoryImpl) SumShares(ctx context.Context, userID uuid.UUID, symbol string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(shares), 0)
		FROM transactions
		WHERE user_id = $1 AND symbol = $2
	`

	var total int64
	if err := r.db.QueryRow(ctx, query, userID, symbol).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum shares: %w", err)
	}

	return total, nil
}

// ListHoldings returns one entry per symbol with a positive aggregate
// share count, aggregated server-side
func (r *TransactionRepositoryImpl) ListHoldings(ctx context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	query := `
		SELECT symbol, MAX(name) AS name, SUM(shares) AS total_shares
		FROM transactions
		WHERE user_id = $1
		GROUP BY symbol
		HAVING SUM(shares) > 0
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*domain.Holding
	for rows.Next() {
		holding := &domain.Holding{}
		if err := rows.Scan(&holding.Symbol, &holding.Name, &holding.TotalShares); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, holding)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// ListHistory returns all transactions for the user in execution order
func (r *TransactionRepositoryImpl) ListHistory(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, symbol, name, shares, price, time
		FROM transactions
		WHERE user_id = $1
		ORDER BY time ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var history []*domain.Transaction
	for rows.Next() {
		txn := &domain.Transaction{}
		err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.Symbol,
			&txn.Name,
			&txn.Shares,
			&txn.Price,
			&txn.Time,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		history = append(history, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return history, nil
}

// ListActiveSymbols returns every symbol currently held by any user
func (r *TransactionRepositoryImpl) ListActiveSymbols(ctx context.Context) ([]string, error) {
	query := `
		SELECT symbol
		FROM transactions
		GROUP BY symbol
		HAVING SUM(shares) > 0
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query active symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}

	return symbols, nil
}
