package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zhixin-lin/finance/internal/domain"
)

// minDeposit is the minimum cash top-up accepted.
var minDeposit = decimal.NewFromInt(100)

// TradingService validates and executes trades over the ledger, and
// computes the derived portfolio and history views.
//
// Each user's read-validate-write sequence is serialized by a per-user
// lock, so two concurrent requests for the same account can never
// overspend cash or oversell shares. Requests for different users never
// contend with each other.
type TradingService struct {
	userRepo domain.UserRepository
	txRepo   domain.TransactionRepository
	quotes   domain.QuoteProvider

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

// NewTradingService creates a new TradingService
func NewTradingService(
	userRepo domain.UserRepository,
	txRepo domain.TransactionRepository,
	quotes domain.QuoteProvider,
) *TradingService {
	return &TradingService{
		userRepo: userRepo,
		txRepo:   txRepo,
		quotes:   quotes,
		locks:    make(map[uuid.UUID]*sync.Mutex),
	}
}

// userLock returns the mutex serializing operations for one user.
func (s *TradingService) userLock(userID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// normalizeSymbol uppercases the raw symbol and rejects an empty one.
func normalizeSymbol(raw string) (string, error) {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if symbol == "" {
		return "", fmt.Errorf("%w: missing symbol", domain.ErrInvalidInput)
	}
	return symbol, nil
}

// parseShares parses a raw share count. Only unsigned decimal digits are
// accepted, and the result must be positive.
func parseShares(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing shares", domain.ErrInvalidInput)
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: shares not a positive integer", domain.ErrInvalidInput)
		}
	}
	shares, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || shares <= 0 {
		return 0, fmt.Errorf("%w: shares not a positive integer", domain.ErrInvalidInput)
	}
	return shares, nil
}

// Buy executes a purchase of sharesRaw shares of symbolRaw for the user.
// The quote lookup happens before the user lock is taken; the cash read,
// funds check, and atomic commit happen under it.
func (s *TradingService) Buy(ctx context.Context, userID uuid.UUID, symbolRaw, sharesRaw string) (*domain.Transaction, error) {
	symbol, err := normalizeSymbol(symbolRaw)
	if err != nil {
		return nil, err
	}
	shares, err := parseShares(sharesRaw)
	if err != nil {
		return nil, err
	}

	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cost := quote.Price.Mul(decimal.NewFromInt(shares))
	if user.Cash.LessThan(cost) {
		return nil, domain.ErrInsufficientFunds
	}

	// The stored symbol is the normalized one, not the provider's echo:
	// SumShares and ListHoldings key on it.
	txn := &domain.Transaction{
		ID:     uuid.New(),
		UserID: userID,
		Symbol: symbol,
		Name:   quote.Name,
		Shares: shares,
		Price:  quote.Price,
		Time:   time.Now(),
	}

	if err := s.txRepo.RecordTrade(ctx, userID, txn, user.Cash.Sub(cost)); err != nil {
		return nil, err
	}

	return txn, nil
}

// Sell executes a sale of sharesRaw shares of symbolRaw for the user.
// The held share count is read and validated under the user lock, before
// the quote lookup, so a concurrent sell cannot slip past the check.
func (s *TradingService) Sell(ctx context.Context, userID uuid.UUID, symbolRaw, sharesRaw string) (*domain.Transaction, error) {
	symbol, err := normalizeSymbol(symbolRaw)
	if err != nil {
		return nil, err
	}
	shares, err := parseShares(sharesRaw)
	if err != nil {
		return nil, err
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	held, err := s.txRepo.SumShares(ctx, userID, symbol)
	if err != nil {
		return nil, err
	}
	if held <= 0 {
		return nil, domain.ErrStockNotOwned
	}
	if shares > held {
		return nil, domain.ErrInsufficientShares
	}

	quote, err := s.quotes.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	proceeds := quote.Price.Mul(decimal.NewFromInt(shares))
	txn := &domain.Transaction{
		ID:     uuid.New(),
		UserID: userID,
		Symbol: symbol,
		Name:   quote.Name,
		Shares: -shares,
		Price:  quote.Price,
		Time:   time.Now(),
	}

	if err := s.txRepo.RecordTrade(ctx, userID, txn, user.Cash.Add(proceeds)); err != nil {
		return nil, err
	}

	return txn, nil
}

// Deposit adds cash to the user's balance. The raw amount must be a whole
// number of at least 100. Returns the new balance.
func (s *TradingService) Deposit(ctx context.Context, userID uuid.UUID, amountRaw string) (decimal.Decimal, error) {
	amountRaw = strings.TrimSpace(amountRaw)
	if amountRaw == "" {
		return decimal.Zero, fmt.Errorf("%w: missing cash amount", domain.ErrInvalidInput)
	}
	for _, r := range amountRaw {
		if r < '0' || r > '9' {
			return decimal.Zero, fmt.Errorf("%w: invalid cash amount", domain.ErrInvalidInput)
		}
	}
	amount, err := decimal.NewFromString(amountRaw)
	if err != nil || amount.LessThan(minDeposit) {
		return decimal.Zero, fmt.Errorf("%w: invalid cash amount", domain.ErrInvalidInput)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	newCash := user.Cash.Add(amount)
	if err := s.userRepo.UpdateCash(ctx, userID, newCash); err != nil {
		return decimal.Zero, err
	}

	return newCash, nil
}

// GetPortfolio computes the live portfolio view: every held symbol priced
// at its current quote, plus cash. The view is all-or-nothing: if any
// quote lookup fails the whole call fails rather than returning a
// partially priced portfolio.
func (s *TradingService) GetPortfolio(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	holdings, err := s.txRepo.ListHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := user.Cash
	for _, holding := range holdings {
		// A non-positive aggregate here means the ledger itself is
		// inconsistent, not that the request was bad.
		if holding.TotalShares <= 0 {
			return nil, fmt.Errorf("corrupt ledger: non-positive holding %d for %s", holding.TotalShares, holding.Symbol)
		}

		quote, err := s.quotes.Lookup(ctx, holding.Symbol)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrQuoteUnavailable, holding.Symbol)
		}

		holding.CurrentPrice = quote.Price
		holding.Total = quote.Price.Mul(decimal.NewFromInt(holding.TotalShares))
		total = total.Add(holding.Total)
	}

	return &domain.Portfolio{
		Holdings:   holdings,
		Cash:       user.Cash,
		TotalValue: total,
	}, nil
}

// GetHistory returns the user's full transaction log, oldest first.
func (s *TradingService) GetHistory(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	return s.txRepo.ListHistory(ctx, userID)
}

// GetQuote looks up the current quote for a raw symbol.
func (s *TradingService) GetQuote(ctx context.Context, symbolRaw string) (*domain.Quote, error) {
	symbol, err := normalizeSymbol(symbolRaw)
	if err != nil {
		return nil, err
	}
	return s.quotes.Lookup(ctx, symbol)
}
