package collector

import (
	"strings"
	"time"

	"MarketScreener/internal/calculator"
	"MarketScreener/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars map[string][]model.OHLCV // keyed by provider-qualified symbol
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	bars := m.Bars[symbol]
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return bars, nil
}

// GenerateBars builds `count` ascending daily bars hovering around basePrice,
// with the final close forced to lastClose.
func GenerateBars(basePrice, lastClose float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.0001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	if count > 0 {
		bars[count-1].Close = lastClose
	}
	return bars
}

// Collector fetches one symbol's history and reduces it to the snapshot the
// shortlist rule needs. Failures become skip reasons, never errors: a bad
// symbol must not abort the batch.
type Collector struct {
	Fetcher  Fetcher
	Suffix   string // provider region suffix, e.g. ".NS"
	Days     int    // history window to request
	MAPeriod int    // trailing window for the moving average
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, suffix string, days, maPeriod int) *Collector {
	return &Collector{Fetcher: fetcher, Suffix: suffix, Days: days, MAPeriod: maPeriod}
}

// Collect fetches daily history for the symbol and derives its snapshot.
// The raw bars are returned alongside the outcome even when the snapshot is
// skipped, so callers can still persist partial history.
func (c *Collector) Collect(symbol string) *model.FetchOutcome {
	symbol = strings.TrimSpace(symbol)
	out := &model.FetchOutcome{Symbol: symbol}

	bars, err := c.Fetcher.FetchDailyBars(symbol+c.Suffix, c.Days)
	if err != nil {
		out.Skip = model.SkipFetchError
		out.Err = err
		return out
	}
	out.Bars = bars

	if len(bars) == 0 {
		out.Skip = model.SkipNoData
		return out
	}
	if len(bars) < c.MAPeriod {
		out.Skip = model.SkipShortHistory
		return out
	}

	closes := calculator.ExtractCloses(bars)
	mean, err := calculator.CalculateSMA(closes, c.MAPeriod)
	if err != nil {
		out.Skip = model.SkipShortHistory
		out.Err = err
		return out
	}
	if mean <= 0 {
		// Not expected for real equity prices; skipped rather than fed to
		// the threshold comparison.
		out.Skip = model.SkipNonPositiveMean
		return out
	}

	out.Snapshot = &model.Snapshot{
		Symbol:    symbol,
		LastClose: closes[len(closes)-1],
		Mean200:   mean,
	}
	return out
}
