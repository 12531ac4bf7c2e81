package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/zhixin-lin/finance/internal/delivery/http/dto"
	"github.com/zhixin-lin/finance/internal/domain"
	"github.com/zhixin-lin/finance/internal/middleware"
)

// Trader is the slice of the trading engine the handler needs
type Trader interface {
	Buy(ctx context.Context, userID uuid.UUID, symbolRaw, sharesRaw string) (*domain.Transaction, error)
	Sell(ctx context.Context, userID uuid.UUID, symbolRaw, sharesRaw string) (*domain.Transaction, error)
	Deposit(ctx context.Context, userID uuid.UUID, amountRaw string) (decimal.Decimal, error)
	GetQuote(ctx context.Context, symbolRaw string) (*domain.Quote, error)
}

// TradeHandler handles buy, sell, deposit and quote requests
type TradeHandler struct {
	trader Trader
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(trader Trader) *TradeHandler {
	return &TradeHandler{trader: trader}
}

// Buy executes a purchase for the authenticated user
// POST /api/buy
func (h *TradeHandler) Buy(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	txn, err := h.trader.Buy(ctx, userID, req.Symbol, req.Shares)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, dto.NewTransactionOutput(txn))
}

// Sell executes a sale for the authenticated user
// POST /api/sell
func (h *TradeHandler) Sell(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	txn, err := h.trader.Sell(ctx, userID, req.Symbol, req.Shares)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, dto.NewTransactionOutput(txn))
}

// Deposit adds cash to the authenticated user's balance
// POST /api/deposit
func (h *TradeHandler) Deposit(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.DepositRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cash, err := h.trader.Deposit(ctx, userID, req.Amount)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.DepositResponse{Cash: cash.String()})
}

// GetQuote looks up a quote for the authenticated user
// GET /api/quote/:symbol
func (h *TradeHandler) GetQuote(c echo.Context) error {
	if _, err := middleware.GetUserID(c); err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	quote, err := h.trader.GetQuote(ctx, c.Param("symbol"))
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.QuoteOutput{
		Symbol: quote.Symbol,
		Name:   quote.Name,
		Price:  quote.Price.String(),
	})
}
