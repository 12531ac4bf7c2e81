package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/zhixin-lin/finance/internal/domain"
)

func TestLookupReturnsQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stable/stock/AAPL/quote" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("token") != "test-key" {
			t.Errorf("missing token query param")
		}
		fmt.Fprint(w, `{"symbol":"AAPL","companyName":"Apple Inc","latestPrice":150.25}`)
	}))
	defer srv.Close()

	quotes := NewQuoteService(srv.URL, "test-key")
	quote, err := quotes.Lookup(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	if quote.Symbol != "AAPL" || quote.Name != "Apple Inc" {
		t.Errorf("unexpected quote: %+v", quote)
	}
	if !quote.Price.Equal(decimal.RequireFromString("150.25")) {
		t.Errorf("price = %s, want 150.25", quote.Price)
	}
}

func TestLookupUnknownSymbol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unknown symbol", http.StatusNotFound)
	}))
	defer srv.Close()

	quotes := NewQuoteService(srv.URL, "test-key")
	if _, err := quotes.Lookup(context.Background(), "NOPE"); !errors.Is(err, domain.ErrSymbolNotFound) {
		t.Fatalf("err = %v, want ErrSymbolNotFound", err)
	}
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	quotes := NewQuoteService(srv.URL, "test-key")
	if _, err := quotes.Lookup(context.Background(), "AAPL"); !errors.Is(err, domain.ErrQuoteUnavailable) {
		t.Fatalf("err = %v, want ErrQuoteUnavailable", err)
	}
}

func TestLookupUnreachableProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	quotes := NewQuoteService(srv.URL, "test-key")
	if _, err := quotes.Lookup(context.Background(), "AAPL"); !errors.Is(err, domain.ErrQuoteUnavailable) {
		t.Fatalf("err = %v, want ErrQuoteUnavailable", err)
	}
}

func TestLookupMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol":`)
	}))
	defer srv.Close()

	quotes := NewQuoteService(srv.URL, "test-key")
	if _, err := quotes.Lookup(context.Background(), "AAPL"); !errors.Is(err, domain.ErrQuoteUnavailable) {
		t.Fatalf("err = %v, want ErrQuoteUnavailable", err)
	}
}

func TestLookupRejectsNonPositivePrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"symbol":"AAPL","companyName":"Apple Inc","latestPrice":0}`)
	}))
	defer srv.Close()

	quotes := NewQuoteService(srv.URL, "test-key")
	if _, err := quotes.Lookup(context.Background(), "AAPL"); !errors.Is(err, domain.ErrSymbolNotFound) {
		t.Fatalf("err = %v, want ErrSymbolNotFound", err)
	}
}
