package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/payflowhq/payflow_backend/internal/apperrors"
	"github.com/payflowhq/payflow_backend/internal/core/domain"
	portssvc "github.com/payflowhq/payflow_backend/internal/core/ports/services"
	"github.com/payflowhq/payflow_backend/internal/middleware"
)

// rateCacheTTL is how long a live quote stays usable before the source is
// consulted again.
const rateCacheTTL = 60 * time.Second

// fallbackRates is the static table used when the live source is unreachable
// and nothing fresh is cached. Quotes served from it are tagged
// RateSourceFallback so downstream consumers can tell them apart.
var fallbackRates = map[string]decimal.Decimal{
	"USD":  decimal.NewFromInt(1),
	"USDC": decimal.NewFromInt(1),
	"USDT": decimal.NewFromInt(1),
	"EUR":  decimal.RequireFromString("1.08"),
	"GBP":  decimal.RequireFromString("1.27"),
	"CNY":  decimal.RequireFromString("0.14"),
	"ETH":  decimal.RequireFromString("2400"),
	"BTC":  decimal.RequireFromString("64000"),
}

// exchangeRateService resolves currency-to-USD rates with a TTL cache and a
// static fallback. Resolution is best-effort: a fetch failure falls back, it
// never fails the calling flow unless the currency is completely unknown.
type exchangeRateService struct {
	fetcher portssvc.RateFetcher
	cache   *rateCache
	now     func() time.Time
}

// NewExchangeRateService creates a new rate resolver.
func NewExchangeRateService(fetcher portssvc.RateFetcher) portssvc.RateSvcFacade {
	return newExchangeRateServiceWithClock(fetcher, func() time.Time { return time.Now().UTC() })
}

// newExchangeRateServiceWithClock injects the clock used both by the cache
// and for quote timestamps.
func newExchangeRateServiceWithClock(fetcher portssvc.RateFetcher, now func() time.Time) portssvc.RateSvcFacade {
	return &exchangeRateService{
		fetcher: fetcher,
		cache:   newRateCache(rateCacheTTL, now),
		now:     now,
	}
}

var _ portssvc.RateSvcFacade = (*exchangeRateService)(nil)

// ResolveUSDRate returns the USD rate for a currency: a fresh cache hit
// first, then the live source, then the static fallback table.
func (s *exchangeRateService) ResolveUSDRate(ctx context.Context, currencyCode string) (domain.RateQuote, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	code := strings.ToUpper(currencyCode)
	if code == "" {
		return domain.RateQuote{}, fmt.Errorf("%w: currency code is required", apperrors.ErrValidation)
	}

	if rate, fetchedAt, ok := s.cache.Get(code); ok {
		return domain.RateQuote{
			CurrencyCode: code,
			RateToUSD:    rate,
			Source:       domain.RateSourceCache,
			FetchedAt:    fetchedAt,
		}, nil
	}

	rate, err := s.fetcher.FetchUSDRate(ctx, code)
	if err == nil && rate.IsPositive() {
		s.cache.Set(code, rate)
		return domain.RateQuote{
			CurrencyCode: code,
			RateToUSD:    rate,
			Source:       domain.RateSourceLive,
			FetchedAt:    s.now(),
		}, nil
	}
	if err != nil {
		logger.Warn("Live rate fetch failed, using fallback",
			slog.String("currency", code), slog.String("error", err.Error()))
	}

	fallback, ok := fallbackRates[code]
	if !ok {
		return domain.RateQuote{}, fmt.Errorf("%w: no rate available for currency %s", apperrors.ErrNotFound, code)
	}
	return domain.RateQuote{
		CurrencyCode: code,
		RateToUSD:    fallback,
		Source:       domain.RateSourceFallback,
		FetchedAt:    s.now(),
	}, nil
}
