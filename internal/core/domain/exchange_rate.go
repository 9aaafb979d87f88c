package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateQuote is a resolved exchange rate from some currency to USD, tagged
// with where it came from so downstream consumers can tell real quotes from
// fallbacks.
type RateQuote struct {
	CurrencyCode string          `json:"currencyCode"`
	RateToUSD    decimal.Decimal `json:"rateToUSD"`
	Source       RateSource      `json:"source"`
	FetchedAt    time.Time       `json:"fetchedAt"`
}

// IsFallback reports whether the quote came from the static fallback table.
func (q RateQuote) IsFallback() bool {
	return q.Source == RateSourceFallback
}
