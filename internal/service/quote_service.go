package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zhixin-lin/finance/internal/domain"
)

// QuoteService fetches real-time quotes from an IEX-style market data API
type QuoteService struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewQuoteService creates a new QuoteService
func NewQuoteService(baseURL, apiKey string) *QuoteService {
	return &QuoteService{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// quoteResponse mirrors the upstream quote payload
type quoteResponse struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	LatestPrice decimal.Decimal `json:"latestPrice"`
}

// Lookup fetches the current quote for a symbol. An unknown symbol returns
// ErrSymbolNotFound; any transport or parse failure returns
// ErrQuoteUnavailable so the caller never sees a defaulted price.
func (s *QuoteService) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	endpoint := fmt.Sprintf("%s/stable/stock/%s/quote?token=%s",
		s.baseURL, url.PathEscape(symbol), url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrQuoteUnavailable, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch quote: %v", domain.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrSymbolNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: quote API error: status=%d, body=%s",
			domain.ErrQuoteUnavailable, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", domain.ErrQuoteUnavailable, err)
	}

	var quote quoteResponse
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal quote: %v", domain.ErrQuoteUnavailable, err)
	}

	if quote.Symbol == "" || !quote.LatestPrice.IsPositive() {
		return nil, domain.ErrSymbolNotFound
	}

	return &domain.Quote{
		Symbol: quote.Symbol,
		Name:   quote.CompanyName,
		Price:  quote.LatestPrice,
	}, nil
}
