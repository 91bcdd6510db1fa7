package executor

import (
	"context"
	"sort"

	"github.com/propchain/propchain-api/internal/api/shared/dto"
	"github.com/propchain/propchain-api/internal/domain"
)

// GetRates returns the active crypto to USD rate table
func (e *executor) GetRates(ctx context.Context) (*dto.RatesResponse, error) {
	rates := e.rates.Current(ctx)

	responses := make([]dto.RateResponse, 0, len(rates.Table))
	for currency, usdPrice := range rates.Table {
		response := dto.RateResponse{
			Currency: currency,
			USDPrice: usdPrice,
		}
		if !rates.FetchedAt.IsZero() {
			fetchedAt := rates.FetchedAt
			response.FetchedAt = &fetchedAt
		}
		responses = append(responses, response)
	}
	sort.Slice(responses, func(i, j int) bool {
		return responses[i].Currency < responses[j].Currency
	})

	return &dto.RatesResponse{
		Rates:     responses,
		Reference: domain.REFERENCE_CURRENCY,
		Source:    string(rates.Source),
	}, nil
}
