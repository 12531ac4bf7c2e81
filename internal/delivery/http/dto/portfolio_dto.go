package dto

import "github.com/zhixin-lin/finance/internal/domain"

// HoldingOutput represents one priced holding in API responses
type HoldingOutput struct {
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	TotalShares  int64  `json:"total_shares"`
	CurrentPrice string `json:"current_price"`
	Total        string `json:"total"`
}

// PortfolioOutput represents the full portfolio view
type PortfolioOutput struct {
	Holdings   []*HoldingOutput `json:"holdings"`
	Cash       string           `json:"cash"`
	TotalValue string           `json:"total_value"`
}

// NewPortfolioOutput converts a domain portfolio for the wire
func NewPortfolioOutput(p *domain.Portfolio) *PortfolioOutput {
	holdings := make([]*HoldingOutput, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		holdings = append(holdings, &HoldingOutput{
			Symbol:       h.Symbol,
			Name:         h.Name,
			TotalShares:  h.TotalShares,
			CurrentPrice: h.CurrentPrice.String(),
			Total:        h.Total.String(),
		})
	}
	return &PortfolioOutput{
		Holdings:   holdings,
		Cash:       p.Cash.String(),
		TotalValue: p.TotalValue.String(),
	}
}
