package services

import (
	"context"

	"github.com/payflowhq/payflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateFetcher fetches a live USD rate for a currency from an external source.
// Implementations live in internal/adapters/ratesource.
type RateFetcher interface {
	FetchUSDRate(ctx context.Context, currencyCode string) (decimal.Decimal, error)
}

// RateSvcFacade resolves exchange rates to USD with caching and fallback.
// Resolution never hard-fails: when the live source and cache are both
// unavailable the static fallback table is used and the quote is tagged as a
// fallback. An error is returned only for currencies with no fallback entry.
type RateSvcFacade interface {
	ResolveUSDRate(ctx context.Context, currencyCode string) (domain.RateQuote, error)
}
