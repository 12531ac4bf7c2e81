package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/zhixin-lin/finance/configs"
	"github.com/zhixin-lin/finance/internal/database"
	delivery "github.com/zhixin-lin/finance/internal/delivery/http"
	"github.com/zhixin-lin/finance/internal/domain"
	"github.com/zhixin-lin/finance/internal/infra"
	"github.com/zhixin-lin/finance/internal/repository"
	"github.com/zhixin-lin/finance/internal/service"
	"github.com/zhixin-lin/finance/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	if cfg.Quote.APIKey == "" {
		log.Fatal("API_KEY not set")
	}

	startingCash, err := decimal.NewFromString(cfg.Trading.StartingCash)
	if err != nil || startingCash.IsNegative() {
		log.Fatalf("Invalid STARTING_CASH %q", cfg.Trading.StartingCash)
	}

	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	txRepo := repository.NewTransactionRepository(db)

	// Initialize quote provider, with Redis caching when configured.
	// The cache warmer only runs when there is a cache to warm.
	var quotes domain.QuoteProvider = service.NewQuoteService(cfg.Quote.BaseURL, cfg.Quote.APIKey)
	if cfg.Redis.URL != "" {
		rdb, err := infra.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
		quotes = service.NewCachedQuoteProvider(quotes, rdb)

		scheduler := infra.NewScheduler(txRepo, quotes)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer scheduler.Stop()
	} else {
		log.Println("Warning: REDIS_URL not set, quote caching disabled")
	}

	// Initialize services
	tradingService := usecase.NewTradingService(userRepo, txRepo, quotes)
	authService := usecase.NewAuthService(userRepo, service.NewBcryptHasher(), startingCash)

	// Initialize HTTP router
	e := echo.New()
	e.HideBanner = true
	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:      delivery.NewAuthHandler(authService),
		TradeHandler:     delivery.NewTradeHandler(tradingService),
		PortfolioHandler: delivery.NewPortfolioHandler(tradingService),
	})

	// Internal ops listener on a separate port
	ops := newOpsRouter(db)
	opsSrv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.OpsPort),
		Handler:      ops,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("Ops endpoints listening on :%s", cfg.Server.OpsPort)
		if err := opsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start ops server: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Finance API starting on %s", addr)
	log.Printf("Environment: %s", cfg.Server.Env)
	log.Printf("Starting cash for new accounts: %s", startingCash)

	srv := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run server in goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	if err := opsSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Ops server forced to shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}

// newOpsRouter builds the internal health/readiness router.
func newOpsRouter(db interface{ Ping(context.Context) error }) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(5 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "healthy"
		status := http.StatusOK
		if err := db.Ping(ctx); err != nil {
			dbStatus = "unhealthy"
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"status":"%s","service":"finance-api","timestamp":"%s"}`,
			dbStatus, time.Now().Format(time.RFC3339))
	})

	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
