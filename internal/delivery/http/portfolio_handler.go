package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zhixin-lin/finance/internal/delivery/http/dto"
	"github.com/zhixin-lin/finance/internal/domain"
	"github.com/zhixin-lin/finance/internal/middleware"
)

// PortfolioViewer is the slice of the trading engine serving read views
type PortfolioViewer interface {
	GetPortfolio(ctx context.Context, userID uuid.UUID) (*domain.Portfolio, error)
	GetHistory(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error)
}

// PortfolioHandler handles portfolio and history requests
type PortfolioHandler struct {
	viewer PortfolioViewer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(viewer PortfolioViewer) *PortfolioHandler {
	return &PortfolioHandler{viewer: viewer}
}

// GetPortfolio returns the authenticated user's priced holdings and cash
// GET /api/portfolio
func (h *PortfolioHandler) GetPortfolio(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	portfolio, err := h.viewer.GetPortfolio(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.NewPortfolioOutput(portfolio))
}

// GetHistory returns the authenticated user's transaction log
// GET /api/history
func (h *PortfolioHandler) GetHistory(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	history, err := h.viewer.GetHistory(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	out := make([]*dto.TransactionOutput, 0, len(history))
	for _, txn := range history {
		out = append(out, dto.NewTransactionOutput(txn))
	}

	return SuccessResponse(c, out)
}
