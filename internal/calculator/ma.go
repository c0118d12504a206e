package calculator

import (
	"errors"
	"math"

	"github.com/montanaflynn/stats"

	"MarketScreener/internal/model"
)

// CalculateSMA computes the simple moving average over the most recent
// `period` prices. Exactly the trailing window is used, never the full slice.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	mean, err := stats.Mean(prices[len(prices)-period:])
	if err != nil {
		return 0, err
	}
	return mean, nil
}

// EMASeries computes an exponential moving average per index, seeded with the
// SMA of the first `period` valid values. Entries before the seed completes
// are NaN, as are leading NaN inputs (an RSI series starts with a NaN run).
func EMASeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 {
		return out
	}

	start := 0
	for start < len(values) && math.IsNaN(values[start]) {
		start++
	}
	if len(values)-start < period {
		return out
	}

	sum := 0.0
	for i := start; i < start+period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)
	out[start+period-1] = ema

	k := 2.0 / float64(period+1)
	for i := start + period; i < len(values); i++ {
		ema = (values[i]-ema)*k + ema
		out[i] = ema
	}
	return out
}

// ExtractCloses pulls the close prices out of a bar series.
func ExtractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
