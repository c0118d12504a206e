package analyzer

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"MarketScreener/internal/calculator"
	"MarketScreener/internal/model"
	"MarketScreener/internal/recorder"
)

// Weekly breakout screen thresholds.
const (
	volumeWindow    = 6 // trailing weeks for the average-volume baseline
	minVolumeRatio  = 3.0
	maxVolumeRatio  = 15.0
	minWeeklyVolume = 500000.0
	weeklyRSIPeriod = 14
	minWeeklyRSI    = 40.0
	maxWeeklyRSI    = 95.0
	// Near-marubozu tolerances: open close to the low, close close to the high.
	marubozuOpenTolerance  = 1.03
	marubozuCloseTolerance = 0.97
	maxPrevVolumeRatio     = 0.5
)

// HighVolumeAnalyzer screens stored daily history for weekly volume
// breakouts: a near-marubozu green week on a volume spike, following a quiet
// green week, with weekly RSI in a tradable band.
type HighVolumeAnalyzer struct {
	Recorder recorder.Recorder
}

// Run analyzes every stored symbol and returns the qualifying weeks.
func (a *HighVolumeAnalyzer) Run() ([]model.HighVolumeWeek, error) {
	symbols, err := a.Recorder.ListSymbols()
	if err != nil {
		return nil, fmt.Errorf("list symbols: %w", err)
	}

	var results []model.HighVolumeWeek
	for _, symbol := range symbols {
		bars, err := a.Recorder.LoadDailyBars(symbol)
		if err != nil {
			log.Errorf("load bars for %s: %v", symbol, err)
			continue
		}
		results = append(results, ScreenWeeks(symbol, calculator.ResampleWeekly(bars))...)
	}
	return results, nil
}

// ScreenWeeks applies the breakout conditions to one symbol's weekly bars.
func ScreenWeeks(symbol string, weeks []model.WeeklyBar) []model.HighVolumeWeek {
	if len(weeks) <= volumeWindow {
		return nil
	}

	closes := make([]float64, len(weeks))
	for i, w := range weeks {
		closes[i] = w.Close
	}
	rsi, err := calculator.RSISeries(closes, weeklyRSIPeriod)
	if err != nil {
		return nil
	}

	var out []model.HighVolumeWeek
	for i := volumeWindow; i < len(weeks); i++ {
		w := weeks[i]
		prev := weeks[i-1]

		var sum float64
		for j := i - volumeWindow; j < i; j++ {
			sum += weeks[j].Volume
		}
		avg := sum / volumeWindow
		if avg <= 0 {
			continue
		}
		multiple := w.Volume / avg

		if multiple < minVolumeRatio || multiple > maxVolumeRatio {
			continue
		}
		if w.Volume <= minWeeklyVolume {
			continue
		}
		if !isMarubozu(w) {
			continue
		}
		if math.IsNaN(rsi[i]) || rsi[i] < minWeeklyRSI || rsi[i] > maxWeeklyRSI {
			continue
		}
		if prev.Close <= prev.Open {
			continue // previous week must be green
		}
		if prev.Volume >= w.Volume*maxPrevVolumeRatio {
			continue // previous week must be quiet
		}

		out = append(out, model.HighVolumeWeek{
			Symbol:         symbol,
			WeekStart:      w.WeekStart,
			WeekEnd:        w.WeekEnd,
			Volume:         w.Volume,
			VolumeMultiple: multiple,
			RSI:            rsi[i],
		})
	}
	return out
}

func isMarubozu(w model.WeeklyBar) bool {
	return w.Open <= w.Low*marubozuOpenTolerance && w.Close >= w.High*marubozuCloseTolerance
}
