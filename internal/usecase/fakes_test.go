package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zhixin-lin/finance/internal/domain"
)

// fakeLedger is an in-memory stand-in for both repositories. RecordTrade
// is atomic: with failTrade set it fails without touching any state.
type fakeLedger struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*domain.User
	byName    map[string]uuid.UUID
	log       []*domain.Transaction
	failTrade bool
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		users:  make(map[uuid.UUID]*domain.User),
		byName: make(map[string]uuid.UUID),
	}
}

func (f *fakeLedger) addUser(username string, cash decimal.Decimal) uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	f.users[id] = &domain.User{
		ID:        id,
		Username:  username,
		Cash:      cash,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.byName[username] = id
	return id
}

func (f *fakeLedger) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byName[user.Username]; ok {
		return domain.ErrUsernameTaken
	}
	clone := *user
	f.users[user.ID] = &clone
	f.byName[user.Username] = user.ID
	return nil
}

func (f *fakeLedger) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeLedger) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *f.users[id]
	return &clone, nil
}

func (f *fakeLedger) UpdateCash(_ context.Context, userID uuid.UUID, cash decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Cash = cash
	return nil
}

func (f *fakeLedger) RecordTrade(_ context.Context, userID uuid.UUID, txn *domain.Transaction, newCash decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTrade {
		return errors.New("injected storage failure")
	}
	user, ok := f.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	clone := *txn
	clone.Time = time.Now()
	f.log = append(f.log, &clone)
	user.Cash = newCash
	txn.Time = clone.Time
	return nil
}

func (f *fakeLedger) SumShares(_ context.Context, userID uuid.UUID, symbol string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, txn := range f.log {
		if txn.UserID == userID && txn.Symbol == symbol {
			total += txn.Shares
		}
	}
	return total, nil
}

func (f *fakeLedger) ListHoldings(_ context.Context, userID uuid.UUID) ([]*domain.Holding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := make(map[string]int64)
	names := make(map[string]string)
	var order []string
	for _, txn := range f.log {
		if txn.UserID != userID {
			continue
		}
		if _, seen := totals[txn.Symbol]; !seen {
			order = append(order, txn.Symbol)
		}
		totals[txn.Symbol] += txn.Shares
		names[txn.Symbol] = txn.Name
	}
	var holdings []*domain.Holding
	for _, symbol := range order {
		if totals[symbol] > 0 {
			holdings = append(holdings, &domain.Holding{
				Symbol:      symbol,
				Name:        names[symbol],
				TotalShares: totals[symbol],
			})
		}
	}
	return holdings, nil
}

func (f *fakeLedger) ListHistory(_ context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var history []*domain.Transaction
	for _, txn := range f.log {
		if txn.UserID == userID {
			clone := *txn
			history = append(history, &clone)
		}
	}
	return history, nil
}

func (f *fakeLedger) ListActiveSymbols(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	totals := make(map[string]int64)
	var order []string
	for _, txn := range f.log {
		if _, seen := totals[txn.Symbol]; !seen {
			order = append(order, txn.Symbol)
		}
		totals[txn.Symbol] += txn.Shares
	}
	var symbols []string
	for _, symbol := range order {
		if totals[symbol] > 0 {
			symbols = append(symbols, symbol)
		}
	}
	return symbols, nil
}

// fakeQuotes serves quotes from a map. Symbols in failing return
// ErrQuoteUnavailable, everything else unknown returns ErrSymbolNotFound.
// With lowercaseEcho set it reports symbols back in lowercase, like a
// provider with its own casing conventions.
type fakeQuotes struct {
	mu            sync.Mutex
	prices        map[string]decimal.Decimal
	failing       map[string]bool
	lowercaseEcho bool
}

func newFakeQuotes() *fakeQuotes {
	return &fakeQuotes{
		prices:  make(map[string]decimal.Decimal),
		failing: make(map[string]bool),
	}
}

func (q *fakeQuotes) set(symbol string, price string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.prices[symbol] = decimal.RequireFromString(price)
}

func (q *fakeQuotes) fail(symbol string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.failing[symbol] = true
}

func (q *fakeQuotes) Lookup(_ context.Context, symbol string) (*domain.Quote, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failing[symbol] {
		return nil, domain.ErrQuoteUnavailable
	}
	price, ok := q.prices[symbol]
	if !ok {
		return nil, domain.ErrSymbolNotFound
	}
	echo := symbol
	if q.lowercaseEcho {
		echo = strings.ToLower(symbol)
	}
	return &domain.Quote{
		Symbol: echo,
		Name:   fmt.Sprintf("%s Inc", symbol),
		Price:  price,
	}, nil
}

// fakeHasher avoids bcrypt cost in tests
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(hash, password string) bool    { return hash == "hashed:"+password }
