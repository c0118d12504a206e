package analyzer

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"MarketScreener/internal/calculator"
	"MarketScreener/internal/model"
	"MarketScreener/internal/recorder"
)

const (
	knoxvilleRSIPeriod = 14
	knoxvilleEMAPeriod = 200
)

// KnoxvilleAnalyzer detects bullish Knoxville divergences in stored daily
// history: momentum is the daily RSI minus its long EMA, and a divergence
// fires on the day momentum crosses from negative to positive.
type KnoxvilleAnalyzer struct {
	Recorder recorder.Recorder
}

// Run analyzes every stored symbol and returns the detected divergences.
func (a *KnoxvilleAnalyzer) Run() ([]model.Divergence, error) {
	symbols, err := a.Recorder.ListSymbols()
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}

	var results []model.Divergence
	for _, symbol := range symbols {
		bars, err := a.Recorder.LoadDailyBars(symbol)
		if err != nil {
			log.Errorf("load bars for %s: %v", symbol, err)
			continue
		}
		results = append(results, DetectDivergences(symbol, bars)...)
	}
	return results, nil
}

// DetectDivergences finds the negative-to-positive momentum crossings in one
// symbol's daily bars.
func DetectDivergences(symbol string, bars []model.OHLCV) []model.Divergence {
	closes := calculator.ExtractCloses(bars)
	rsi, err := calculator.RSISeries(closes, knoxvilleRSIPeriod)
	if err != nil {
		return nil
	}
	rsiEMA := calculator.EMASeries(rsi, knoxvilleEMAPeriod)

	var out []model.Divergence
	prevMomentum := math.NaN()
	for i := range closes {
		if math.IsNaN(rsi[i]) || math.IsNaN(rsiEMA[i]) {
			continue
		}
		momentum := rsi[i] - rsiEMA[i]
		if !math.IsNaN(prevMomentum) && prevMomentum < 0 && momentum > 0 {
			out = append(out, model.Divergence{
				Symbol: symbol,
				Date:   bars[i].Time,
				Close:  closes[i],
			})
		}
		prevMomentum = momentum
	}
	return out
}
