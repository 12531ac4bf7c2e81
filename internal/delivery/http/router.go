package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "github.com/zhixin-lin/finance/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler      *AuthHandler
	TradeHandler     *TradeHandler
	PortfolioHandler *PortfolioHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// API group
	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
		auth.POST("/register", config.AuthHandler.Register)
	}

	// Trading routes (protected with AuthMiddleware)
	protected := api.Group("", custommiddleware.AuthMiddleware)
	{
		protected.GET("/portfolio", config.PortfolioHandler.GetPortfolio)
		protected.GET("/history", config.PortfolioHandler.GetHistory)
		protected.GET("/quote/:symbol", config.TradeHandler.GetQuote)
		protected.POST("/buy", config.TradeHandler.Buy)
		protected.POST("/sell", config.TradeHandler.Sell)
		protected.POST("/deposit", config.TradeHandler.Deposit)
	}
}
