package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/zhixin-lin/finance/internal/domain"
)

// fakeTrader returns canned results per operation
type fakeTrader struct {
	txn  *domain.Transaction
	cash decimal.Decimal
	err  error
}

func (f *fakeTrader) Buy(_ context.Context, _ uuid.UUID, _, _ string) (*domain.Transaction, error) {
	return f.txn, f.err
}

func (f *fakeTrader) Sell(_ context.Context, _ uuid.UUID, _, _ string) (*domain.Transaction, error) {
	return f.txn, f.err
}

func (f *fakeTrader) Deposit(_ context.Context, _ uuid.UUID, _ string) (decimal.Decimal, error) {
	return f.cash, f.err
}

func (f *fakeTrader) GetQuote(_ context.Context, _ string) (*domain.Quote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Quote{Symbol: "AAPL", Name: "Apple Inc", Price: decimal.RequireFromString("150.00")}, nil
}

func newTradeContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uuid.New())
	return c, rec
}

func TestBuyHandlerSuccess(t *testing.T) {
	txn := &domain.Transaction{
		ID:     uuid.New(),
		Symbol: "AAPL",
		Name:   "Apple Inc",
		Shares: 10,
		Price:  decimal.RequireFromString("150.00"),
		Time:   time.Now(),
	}
	handler := NewTradeHandler(&fakeTrader{txn: txn})

	c, rec := newTradeContext(t, `{"symbol":"AAPL","shares":"10"}`)
	if err := handler.Buy(c); err != nil {
		t.Fatalf("Buy handler: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status field = %q, want success", resp.Status)
	}
}

func TestBuyHandlerUnauthenticated(t *testing.T) {
	handler := NewTradeHandler(&fakeTrader{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no user_id set

	if err := handler.Buy(c); err != nil {
		t.Fatalf("Buy handler: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestTradeHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest},
		{"symbol not found", domain.ErrSymbolNotFound, http.StatusBadRequest},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusBadRequest},
		{"insufficient shares", domain.ErrInsufficientShares, http.StatusBadRequest},
		{"not owned", domain.ErrStockNotOwned, http.StatusBadRequest},
		{"quote unavailable", domain.ErrQuoteUnavailable, http.StatusServiceUnavailable},
		{"storage failure", context.DeadlineExceeded, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewTradeHandler(&fakeTrader{err: tc.err})
			c, rec := newTradeContext(t, `{"symbol":"AAPL","shares":"10"}`)
			if err := handler.Buy(c); err != nil {
				t.Fatalf("Buy handler: %v", err)
			}
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestDepositHandler(t *testing.T) {
	handler := NewTradeHandler(&fakeTrader{cash: decimal.RequireFromString("1100")})

	c, rec := newTradeContext(t, `{"amount":"100"}`)
	if err := handler.Deposit(c); err != nil {
		t.Fatalf("Deposit handler: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"1100"`) {
		t.Errorf("body missing new balance: %s", rec.Body.String())
	}
}

func TestInternalErrorsAreNotLeaked(t *testing.T) {
	handler := NewTradeHandler(&fakeTrader{err: context.DeadlineExceeded})

	c, rec := newTradeContext(t, `{"symbol":"AAPL","shares":"1"}`)
	if err := handler.Buy(c); err != nil {
		t.Fatalf("Buy handler: %v", err)
	}
	if strings.Contains(rec.Body.String(), "deadline") {
		t.Errorf("internal error detail leaked to client: %s", rec.Body.String())
	}
}
