package collector

import "MarketScreener/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyBars returns up to `days` daily bars for the
	// provider-qualified symbol, ordered by date ascending.
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
