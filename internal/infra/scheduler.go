package infra

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/zhixin-lin/finance/internal/domain"
)

// Scheduler periodically warms the quote cache for every symbol currently
// held by any user, so portfolio views mostly hit the cache instead of the
// upstream quote API.
type Scheduler struct {
	cron   *cron.Cron
	txRepo domain.TransactionRepository
	quotes domain.QuoteProvider
}

// NewScheduler creates a new scheduler
func NewScheduler(txRepo domain.TransactionRepository, quotes domain.QuoteProvider) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		txRepo: txRepo,
		quotes: quotes,
	}
}

// Start registers the warm-up job and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		if err := s.RefreshQuotes(ctx); err != nil {
			log.Printf("ERROR: Quote refresh failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("[OK] Quote refresh scheduler started (every 5 minutes)")
	return nil
}

// Stop stops the cron loop.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// RefreshQuotes looks up every actively held symbol once. Individual
// lookup failures are logged and skipped; the next run retries.
func (s *Scheduler) RefreshQuotes(ctx context.Context) error {
	symbols, err := s.txRepo.ListActiveSymbols(ctx)
	if err != nil {
		return err
	}

	refreshed := 0
	for _, symbol := range symbols {
		if _, err := s.quotes.Lookup(ctx, symbol); err != nil {
			log.Printf("WARNING: Failed to refresh quote for %s: %v", symbol, err)
			continue
		}
		refreshed++
	}

	if len(symbols) > 0 {
		log.Printf("Quote refresh: %d/%d symbols updated", refreshed, len(symbols))
	}
	return nil
}
